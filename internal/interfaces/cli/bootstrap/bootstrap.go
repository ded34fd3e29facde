// Package bootstrap loads configuration, logging and the database for CLI commands.
package bootstrap

import (
	"fmt"

	"github.com/rafflehub/rafflehub/internal/infrastructure/config"
	"github.com/rafflehub/rafflehub/internal/infrastructure/database"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

// Env holds the command-line selectors shared by every command.
type Env struct {
	Name       string
	ConfigPath string
}

// Load reads the configuration and initializes the process logger.
func Load(env Env) (*config.Config, logger.Interface, error) {
	var (
		cfg *config.Config
		err error
	)
	if env.ConfigPath != "" {
		cfg, err = config.LoadFile(env.ConfigPath, MapEnvToGinMode(env.Name))
	} else {
		cfg, err = config.Load(MapEnvToGinMode(env.Name))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger.NewLogger(), nil
}

// LoadWithDatabase additionally opens the configured database. Callers close
// it with database.Close.
func LoadWithDatabase(env Env) (*config.Config, logger.Interface, error) {
	cfg, log, err := Load(env)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, log, nil
}

// MapEnvToGinMode translates a deployment environment name into a gin mode.
func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
