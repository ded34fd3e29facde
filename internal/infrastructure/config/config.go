package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/rafflehub/rafflehub/internal/shared/config"
)

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Database sharedConfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Auth     sharedConfig.AuthConfig     `mapstructure:"auth"`
	Redis    sharedConfig.RedisConfig    `mapstructure:"redis"`
	Raffle   sharedConfig.RaffleConfig   `mapstructure:"raffle"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (searched from the working directory upward)
// and overlays RAFFLEHUB_* environment variables.
func Load(env string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	return load(v, env)
}

// LoadFile reads an explicit config file path.
func LoadFile(path, env string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v, env)
}

func load(v *viper.Viper, env string) (*Config, error) {
	v.SetEnvPrefix("RAFFLEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &cfg
	appConfigMu.Unlock()

	return &cfg, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate rejects settings the raffle engine cannot run with.
func (c *Config) Validate() error {
	r := c.Raffle
	if r.MaxDimensionCM <= 0 {
		return fmt.Errorf("raffle.max_dimension_cm must be positive")
	}
	if r.MaxEntryDimensionCM < r.MaxDimensionCM {
		return fmt.Errorf("raffle.max_entry_dimension_cm (%d) must be >= raffle.max_dimension_cm (%d)",
			r.MaxEntryDimensionCM, r.MaxDimensionCM)
	}
	if r.TicketsPerUnit <= 0 {
		return fmt.Errorf("raffle.tickets_per_unit must be positive")
	}
	if r.Tx.MaxAttempts <= 0 {
		return fmt.Errorf("raffle.tx.max_attempts must be positive")
	}
	switch r.Lock.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("raffle.lock.backend must be memory or redis, got %q", r.Lock.Backend)
	}
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("database.driver must be mysql or sqlite, got %q", c.Database.Driver)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.rate_limit_per_minute", 120)

	// Database defaults
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "rafflehub_dev")
	v.SetDefault("database.sqlite_path", "rafflehub.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Auth defaults
	v.SetDefault("auth.jwt.secret", "change-me-in-production")
	v.SetDefault("auth.jwt.issuer", "rafflehub")
	v.SetDefault("auth.jwt.access_exp_minutes", 60)
	v.SetDefault("auth.webhook_secret", "change-me-in-production")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Raffle engine defaults
	v.SetDefault("raffle.max_dimension_cm", 15)
	v.SetDefault("raffle.max_entry_dimension_cm", 300)
	v.SetDefault("raffle.tickets_per_unit", 2)
	v.SetDefault("raffle.availability_ttl", "10m")
	v.SetDefault("raffle.tx.max_attempts", 5)
	v.SetDefault("raffle.tx.base_backoff", "10ms")
	v.SetDefault("raffle.tx.max_backoff", "200ms")
	v.SetDefault("raffle.lock.backend", "memory")
	v.SetDefault("raffle.lock.ttl", "5s")
	v.SetDefault("raffle.recovery.enabled", true)
	v.SetDefault("raffle.recovery.interval", "1m")
	v.SetDefault("raffle.recovery.batch_size", 50)
}
