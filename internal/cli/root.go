package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leadradar/internal/config"
	"github.com/vijay-prabhu/leadradar/internal/logging"
)

var (
	// Version info set from main
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"

	// Global flags
	configPath string
	outputFmt  string
	logLevel   string
	logFormat  string
)

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, c, b string) {
	version = v
	commit = c
	buildTime = b
}

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "leadradar",
	Short: "Rank early market-entry signals into sales leads",
	Long: `leadradar scores batches of organizational signal records (funding rounds,
trade register entries, leadership hires, ...) and ranks them into leads.

It provides:
  - Weighted scoring with recency, location and confidence factors
  - Keyword theme matching over title, snippet, organization and sector
  - Filtering, deduplication and a minimum score cut
  - CSV/JSON export, an HTTP API and an MCP server for AI assistants

Record batches are JSON, YAML or CSV files produced by external collectors.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath,
		"config file")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table",
		"output format (table, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error; default from config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format (console, json; default from config)")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the config file, falling back to defaults when it does
// not exist, and builds the logger from the log settings
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, logging.Nop(), err
	}

	logCfg := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	if logFormat != "" {
		logCfg.Format = logFormat
	}
	logger := logging.New(logCfg)

	for _, o := range cfg.WeightOverrides() {
		logger.Debug().Str("weight", o).Msg("weight override")
	}
	for _, w := range cfg.Warnings() {
		logger.Warn().Msg(w)
	}

	return cfg, logger, nil
}

// versionCmd shows version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "leadradar %s\n", version)
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", commit)
		fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", buildTime)
	},
}
