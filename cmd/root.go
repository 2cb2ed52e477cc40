package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"invoicer/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoicer",
	Short: "Invoicer - lay out and render invoice documents",
	Long: `Invoicer turns invoice data into paginated, print-ready PDF documents.

Invoices are read from JSON files, XLSX workbooks or a Google Sheet, laid
out on A4 pages with a repeating line-item table, and delivered to a local
directory or a Cloud Storage bucket.`,
	Version:           version,
	SilenceErrors:     true,
	PersistentPreRunE: applyLogLevel,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Debug().Err(err).Msg("Command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// applyLogLevel lets --log-level override LOG_LEVEL for a single run.
func applyLogLevel(cmd *cobra.Command, _ []string) error {
	raw, _ := cmd.Flags().GetString("log-level")
	if raw == "" {
		return nil
	}

	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", raw, err)
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Override LOG_LEVEL (trace, debug, info, warn, error)")
}
