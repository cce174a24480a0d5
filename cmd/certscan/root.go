package main

import (
	"github.com/spf13/cobra"

	"github.com/marintec/certscan/internal/cliout"
	"github.com/marintec/certscan/version"
)

var (
	cfgFile      string
	outputFormat string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "certscan",
	Short: "Maritime document field extraction and multi-source merge",
	Long: `Certscan analyzes maritime certificates and survey reports (PDF),
extracting structured fields from multiple sources and reconciling them
into a single reviewed record.

The pipeline includes:
  - PDF text layer extraction with fast/slow path routing
  - Targeted OCR over page header and footer bands
  - LLM-based field extraction from a composed document summary
  - Per-field source merging with confidence tiers`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.certscan/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "log level: debug, info, warn, error",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cliout.SetFormat(outputFormat)
		setupLogging(logLevel)
	}

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
