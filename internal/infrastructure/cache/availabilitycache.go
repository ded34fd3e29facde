package cache

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	"github.com/rafflehub/rafflehub/internal/domain/shared/events"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

// Availability is the cached read view of a raffle's remaining supply.
type Availability struct {
	Remaining int
	Status    string
}

// AvailabilityCache serves remaining-ticket reads without touching the
// raffle row. The database stays authoritative; entries are hints.
type AvailabilityCache interface {
	Get(ctx context.Context, raffleID uint) (*Availability, error)
	Set(ctx context.Context, raffleID uint, a Availability) error
	Invalidate(ctx context.Context, raffleID uint) error
}

const (
	availabilityKeyPrefix = "raffle:availability:"
	availabilityTTLJitter = 2 * time.Minute
	fieldRemaining        = "remaining"
	fieldStatus           = "status"
)

type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisAvailabilityCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisAvailabilityCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisAvailabilityCache) key(raffleID uint) string {
	return fmt.Sprintf("%s%d", availabilityKeyPrefix, raffleID)
}

// Get returns nil, nil on a cache miss.
func (c *RedisAvailabilityCache) Get(ctx context.Context, raffleID uint) (*Availability, error) {
	result, err := c.client.HGetAll(ctx, c.key(raffleID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get availability from cache: %w", err)
	}
	if len(result) == 0 {
		return nil, nil
	}

	remaining, err := strconv.Atoi(result[fieldRemaining])
	if err != nil {
		c.logger.Warnw("corrupt availability entry, dropping",
			"raffle_id", raffleID,
			"value", result[fieldRemaining])
		_ = c.Invalidate(ctx, raffleID)
		return nil, nil
	}
	return &Availability{Remaining: remaining, Status: result[fieldStatus]}, nil
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, raffleID uint, a Availability) error {
	key := c.key(raffleID)
	// jitter spreads expiry of raffles created together
	ttl := c.ttl + time.Duration(rand.Int64N(int64(availabilityTTLJitter)))

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, fieldRemaining, a.Remaining, fieldStatus, a.Status)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set availability in cache: %w", err)
	}
	return nil
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, raffleID uint) error {
	if err := c.client.Del(ctx, c.key(raffleID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate availability: %w", err)
	}
	return nil
}

// AvailabilityEventHandler keeps the cache in step with committed raffle events.
type AvailabilityEventHandler struct {
	cache  AvailabilityCache
	logger logger.Interface
}

func NewAvailabilityEventHandler(cache AvailabilityCache, logger logger.Interface) *AvailabilityEventHandler {
	return &AvailabilityEventHandler{cache: cache, logger: logger}
}

func (h *AvailabilityEventHandler) CanHandle(eventType string) bool {
	return eventType == raffle.EventTypeTicketsReserved || eventType == raffle.EventTypeStatusChanged
}

func (h *AvailabilityEventHandler) Handle(event events.DomainEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	switch e := event.(type) {
	case raffle.TicketsReservedEvent:
		// status is unknown here; drop the entry so the next read refills it
		return h.cache.Invalidate(ctx, e.RaffleID)
	case raffle.StatusChangedEvent:
		return h.cache.Set(ctx, e.RaffleID, Availability{Remaining: e.Remaining, Status: e.To.String()})
	default:
		h.logger.Debugw("ignoring event", "event_type", event.GetEventType())
		return nil
	}
}
