package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/rafflehub/rafflehub/internal/infrastructure/config"
	"github.com/rafflehub/rafflehub/internal/infrastructure/database"
	"github.com/rafflehub/rafflehub/internal/infrastructure/migration"
	"github.com/rafflehub/rafflehub/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/rafflehub/rafflehub/internal/interfaces/http"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

var (
	env         string
	configPath  string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the raffle HTTP API together with the event dispatcher and the draw recovery scheduler.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply database migrations on startup (always on for sqlite)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, log, err := bootstrap.LoadWithDatabase(bootstrap.Env{Name: env, ConfigPath: configPath})
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("starting server",
		"environment", env,
		"mode", cfg.Server.Mode,
		"database_driver", cfg.Database.Driver,
		"lock_backend", cfg.Raffle.Lock.Backend)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := handleMigrations(cfg, log); err != nil {
		return err
	}

	container, err := httpRouter.NewContainer(cfg, database.Get(), log)
	if err != nil {
		return fmt.Errorf("failed to build application container: %w", err)
	}
	defer container.Shutdown()

	if err := container.SetupRoutes(); err != nil {
		return fmt.Errorf("failed to set up routes: %w", err)
	}
	if err := container.StartBackground(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      container.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		if err != nil {
			log.Errorw("failed to start server", "error", err)
			return err
		}
	}

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(cfg *config.Config, log logger.Interface) error {
	if !autoMigrate && !cfg.Database.IsSQLite() {
		log.Infow("skipping auto-migration, run 'rafflehub migrate up' to apply schema changes")
		return nil
	}
	if cfg.Server.Mode == "release" && !cfg.Database.IsSQLite() {
		log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
	}

	manager := migration.NewManager(cfg.Database.Driver, log)
	if err := manager.Migrate(database.Get()); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
