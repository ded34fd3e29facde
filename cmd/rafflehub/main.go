package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rafflehub/rafflehub/internal/interfaces/cli/draw"
	"github.com/rafflehub/rafflehub/internal/interfaces/cli/migrate"
	"github.com/rafflehub/rafflehub/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rafflehub",
		Short: "RaffleHub - raffle lifecycle and ticket allocation service",
		Long:  `RaffleHub runs the raffle HTTP API, applies database migrations and recovers unfinished winner draws.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		draw.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
