// Package cli is the command line of the POS backend.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/barberoil/fuelpos/internal/app"
	"github.com/barberoil/fuelpos/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fuelpos",
	Short: "Barber Oil delivery point of sale",
	Long: `fuelpos runs the offline point of sale used on the fuel truck.

It serves the tablet UI's API from a local database, prints delivery
tickets and exports invoices for bookkeeping. Configuration is read from
the environment and an optional .env file.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openApp(ctx context.Context) (*app.App, error) {
	cfg := config.Load()
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return a, nil
}
