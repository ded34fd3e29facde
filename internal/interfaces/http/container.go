package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	"github.com/rafflehub/rafflehub/internal/domain/shared/events"
	"github.com/rafflehub/rafflehub/internal/infrastructure/auth"
	"github.com/rafflehub/rafflehub/internal/infrastructure/cache"
	"github.com/rafflehub/rafflehub/internal/infrastructure/config"
	"github.com/rafflehub/rafflehub/internal/infrastructure/lock"
	"github.com/rafflehub/rafflehub/internal/infrastructure/permission"
	"github.com/rafflehub/rafflehub/internal/infrastructure/ratelimit"
	"github.com/rafflehub/rafflehub/internal/infrastructure/scheduler"
	"github.com/rafflehub/rafflehub/internal/interfaces/http/middleware"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

// Container holds infrastructure components, repositories, use cases,
// handlers and background services, and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	// redis is nil when Redis is unreachable and nothing requires it.
	redis *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware      *middleware.AuthMiddleware
	availabilityLimiter *middleware.RateLimiter

	// Cross-cutting services
	jwtSvc            *auth.JWTService
	locker            lock.RaffleLocker
	enforcer          *permission.Enforcer
	dispatcher        *events.InMemoryEventDispatcher
	availabilityCache cache.AvailabilityCache

	schedulerManager *scheduler.SchedulerManager
}

// NewContainer wires every component. Nothing is started; see StartBackground.
func NewContainer(cfg *config.Config, db *gorm.DB, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.repos = newRepositories(db, c.locker, cfg, log)
	c.initUseCases()
	c.initHandlers()
	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	client, err := connectRedis(cfg, log)
	if err != nil {
		if cfg.Raffle.Lock.Backend == "redis" {
			return fmt.Errorf("redis lock backend requires redis: %w", err)
		}
		log.Warnw("redis unavailable, running without availability cache and rate limiting", "error", err)
	}
	c.redis = client

	if cfg.Raffle.Lock.Backend == "redis" {
		c.locker = lock.NewRedisLocker(c.redis, cfg.Raffle.Lock.TTL, cfg.Raffle.Lock.TTL, log)
	} else {
		c.locker = lock.NewKeyedLocker(cfg.Raffle.Lock.TTL)
	}

	c.enforcer, err = permission.NewEnforcer(c.db, log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.InitRafflePermissions(c.enforcer, log); err != nil {
		return err
	}

	c.dispatcher = events.NewInMemoryEventDispatcher(256, log)
	if c.redis != nil {
		c.availabilityCache = cache.NewRedisAvailabilityCache(c.redis, cfg.Raffle.AvailabilityTTL, log)
		handler := cache.NewAvailabilityEventHandler(c.availabilityCache, log)
		for _, eventType := range []string{raffle.EventTypeTicketsReserved, raffle.EventTypeStatusChanged} {
			if err := c.dispatcher.Subscribe(eventType, handler); err != nil {
				return fmt.Errorf("failed to subscribe availability cache: %w", err)
			}
		}
		if cfg.Server.RateLimitPerMinute > 0 {
			limiter := ratelimit.NewRedisRateLimiter(c.redis, cfg.Server.RateLimitPerMinute, time.Minute)
			c.availabilityLimiter = middleware.NewRateLimiter(limiter, "availability", log)
		}
	}

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	return nil
}

// connectRedis creates the client and checks the connection.
func connectRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("Redis connection established successfully")
	return client, nil
}

func (c *Container) initScheduler() error {
	if !c.cfg.Raffle.Recovery.Enabled {
		return nil
	}
	manager, err := scheduler.NewSchedulerManager(c.log)
	if err != nil {
		return err
	}
	if err := manager.RegisterDrawRecoveryJob(c.ucs.recoverDraws, c.cfg.Raffle.Recovery.Interval); err != nil {
		return err
	}
	c.schedulerManager = manager
	return nil
}

// StartBackground starts the event dispatcher and the recovery scheduler.
func (c *Container) StartBackground() error {
	if err := c.dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	if c.schedulerManager != nil {
		c.schedulerManager.Start()
	}
	return nil
}

// RecoverDraws runs one recovery sweep and reports how many raffles were drawn.
func (c *Container) RecoverDraws(ctx context.Context) (int, error) {
	return c.ucs.recoverDraws.Execute(ctx)
}

// Shutdown stops background work before the database handle is closed.
func (c *Container) Shutdown() {
	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Warnw("failed to stop scheduler", "error", err)
		}
	}
	if err := c.dispatcher.Stop(); err != nil {
		c.log.Debugw("event dispatcher stop", "error", err)
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
