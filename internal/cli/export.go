package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leadradar/internal/output"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export ranked leads to CSV or JSON",
	Long: `Rank a batch of signal records and export the shown leads to a file.

Supported formats:
  - csv: Comma-separated values (spreadsheet-compatible)
  - json: JSON array of the same flat rows

The file name defaults to [export] file_name from the config; use --out - for stdout.

Examples:
  leadradar export --input signals.json
  leadradar export --input signals.json --format=json --out leads.json
  leadradar export --input signals.csv --region Berlin --out - > berlin.csv`,
	RunE: runExport,
}

var (
	exportOpts   rankOptions
	exportFormat string
	exportOut    string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportOpts.bind(exportCmd, true)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file, - for stdout (default from config)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "json" {
		return fmt.Errorf("unknown format: %s (use csv or json)", exportFormat)
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := exportOpts.run(cmd, cfg, logger)
	if err != nil {
		return err
	}
	results := res.Top(exportOpts.limit)

	opts := output.ExportOptions{
		SnippetMaxLength: cfg.Export.SnippetMaxLength,
		KeywordDelimiter: cfg.Export.KeywordDelimiter,
	}

	path := exportPath(exportOut, cfg.Export.FileName, exportFormat)
	var w io.Writer = cmd.OutOrStdout()
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch exportFormat {
	case "json":
		err = output.WriteExportJSON(w, results, opts)
	default:
		err = output.WriteCSV(w, results, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	if path != "-" {
		logger.Info().Str("file", path).Int("leads", len(results)).Msg("exported")
	}
	return nil
}

// exportPath picks the target file; the configured name gets the
// extension of the chosen format
func exportPath(out, configured, format string) string {
	if out != "" {
		return out
	}
	if configured == "" {
		configured = "leads.csv"
	}
	return strings.TrimSuffix(configured, filepath.Ext(configured)) + "." + format
}
