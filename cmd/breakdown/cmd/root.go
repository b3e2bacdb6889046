// Package cmd provides CLI commands for breakdown.
package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"booking-breakdown/internal/config"
	"booking-breakdown/internal/gateway"
	"booking-breakdown/internal/usecase"
)

var (
	envFile string
	debug   bool

	cfg         *config.Config
	breakdownUC *usecase.BreakdownUseCase
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Compute booking price breakdowns from transaction snapshots",
	Long: `breakdown reduces a booking transaction snapshot (line items, totals and
transition history) into the summary a booking breakdown is rendered from.

Example:
  breakdown compute examples/bookings/provider_sale.yaml --role provider
  breakdown validate examples/bookings`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}

		logLevel := slog.LevelInfo
		if debug || cfg.Debug {
			logLevel = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)

		// Wiring: repository first, then the usecase that depends on it.
		repo := gateway.NewFixtureRepository()
		breakdownUC = usecase.NewBreakdownUseCase(repo, usecase.Defaults{
			Role:     cfg.DefaultRole,
			UnitType: cfg.UnitType,
		}, logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(computeCmd)
	rootCmd.AddCommand(validateCmd)
}

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON report: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
