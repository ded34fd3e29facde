package draw

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rafflehub/rafflehub/internal/infrastructure/database"
	"github.com/rafflehub/rafflehub/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/rafflehub/rafflehub/internal/interfaces/http"
)

var (
	env        string
	configPath string
	timeout    time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Winner draw maintenance",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	recoverCmd := &cobra.Command{
		Use:   "recover",
		Short: "Draw winners for sold out raffles that have none",
		Long:  `Run one recovery sweep over SOLD_OUT raffles whose draw did not complete, then exit.`,
		RunE:  runRecover,
	}
	recoverCmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Maximum time for the sweep")
	cmd.AddCommand(recoverCmd)

	return cmd
}

func runRecover(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.LoadWithDatabase(bootstrap.Env{Name: env, ConfigPath: configPath})
	if err != nil {
		return err
	}
	defer database.Close()

	// The sweep runs in-process; the periodic scheduler is not needed.
	cfg.Raffle.Recovery.Enabled = false

	container, err := httpRouter.NewContainer(cfg, database.Get(), log)
	if err != nil {
		return fmt.Errorf("failed to build application container: %w", err)
	}
	defer container.Shutdown()
	if err := container.StartBackground(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	drawn, err := container.RecoverDraws(ctx)
	if err != nil {
		log.Errorw("draw recovery failed", "drawn", drawn, "error", err)
		return err
	}

	log.Infow("draw recovery completed", "drawn", drawn)
	fmt.Fprintf(cmd.OutOrStdout(), "Recovered %d raffle draw(s)\n", drawn)
	return nil
}
