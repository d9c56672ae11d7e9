// Package cli provides the command-line interface for homicide-etl.
// Commands are thin: they resolve settings, call a driving port and
// render the result.
package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/homicide-etl/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Persistent flag values.
var (
	flagDir     string
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "homicide-etl",
	Short: "Consolidate and normalise homicide incident extracts",
	Long: `homicide-etl merges the multi-year historical homicide extract with the
latest periodic extract, normalises the result into one canonical table,
and verifies the output against a fresh recount of the raw spreadsheets.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "d", "",
		"working directory holding the extracts (default from config, else .)")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "",
		"config file (default <dir>/homicide-etl.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging")
}

// Execute runs the root command. Interrupts cancel the run context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer logger.Sync()

	return rootCmd.ExecuteContext(ctx)
}
