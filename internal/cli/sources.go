package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leadradar/internal/config"
	"github.com/vijay-prabhu/leadradar/internal/output"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage registered source connectors",
	Long: `Manage the registry of source connectors (feeds, registers, APIs) that
external collectors read from. leadradar only keeps the list; it does not
fetch from the sources itself.`,
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered sources",
	RunE:  runSourcesList,
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Register a source",
	Long: `Register a source connector. The id is generated.

Examples:
  leadradar sources add https://example.com/feed.xml --kind RSS --label "Startup news"
  leadradar sources add https://www.bundesanzeiger.de/ --kind API`,
	Args: cobra.ExactArgs(1),
	RunE: runSourcesAdd,
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a registered source",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesRemove,
}

var (
	sourceKind  string
	sourceLabel string
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesRemoveCmd)

	sourcesAddCmd.Flags().StringVar(&sourceKind, "kind", "RSS", "Source kind ("+strings.Join(config.SourceKinds, ", ")+")")
	sourcesAddCmd.Flags().StringVar(&sourceLabel, "label", "", "Display label (default: the URL)")
}

func runSourcesList(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	return output.OutputTo(cmd.OutOrStdout(), outputFmt, cfg.Sources)
}

func runSourcesAdd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	src, err := newSource(args[0], sourceKind, sourceLabel)
	if err != nil {
		return err
	}
	cfg.Sources = append(cfg.Sources, src)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid source: %w", err)
	}
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	logger.Info().Str("id", src.ID).Str("kind", src.Kind).Msg("source added")
	fmt.Fprintln(cmd.OutOrStdout(), src.ID)
	return nil
}

func runSourcesRemove(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	id := args[0]
	i := slices.IndexFunc(cfg.Sources, func(s config.SourceConfig) bool { return s.ID == id })
	if i < 0 {
		return fmt.Errorf("source not found: %s", id)
	}
	cfg.Sources = slices.Delete(cfg.Sources, i, i+1)

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	logger.Info().Str("id", id).Msg("source removed")
	return nil
}

func newSource(url, kind, label string) (config.SourceConfig, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return config.SourceConfig{}, fmt.Errorf("url is required")
	}
	if !config.ValidSourceKind(kind) {
		return config.SourceConfig{}, fmt.Errorf("unknown source kind %q (use one of %s)", kind, strings.Join(config.SourceKinds, ", "))
	}
	if strings.TrimSpace(label) == "" {
		label = url
	}
	return config.SourceConfig{
		ID:    uuid.NewString(),
		Kind:  kind,
		Label: strings.TrimSpace(label),
		URL:   url,
	}, nil
}
