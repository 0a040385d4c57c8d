package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leadradar/internal/lead"
	"github.com/vijay-prabhu/leadradar/internal/output"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "Manage keyword themes",
	Long: `Manage the keyword themes matched against record titles, snippets,
organizations and sectors. Changes are written to the config file.`,
}

var themesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List keyword themes and their terms",
	RunE:  runThemesList,
}

var themesAddCmd = &cobra.Command{
	Use:   "add <label> <term>...",
	Short: "Add terms to a theme, creating it if needed",
	Long: `Add terms to a theme, creating it if needed. Terms may also be given
comma-separated.

Examples:
  leadradar themes add "Market Entry" "DACH launch"
  leadradar themes add Hardware "robotics, embedded, IoT"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runThemesAdd,
}

var themesRemoveCmd = &cobra.Command{
	Use:   "remove <label> [term]...",
	Short: "Remove a theme, or only some of its terms",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runThemesRemove,
}

func init() {
	rootCmd.AddCommand(themesCmd)
	themesCmd.AddCommand(themesListCmd)
	themesCmd.AddCommand(themesAddCmd)
	themesCmd.AddCommand(themesRemoveCmd)
}

func runThemesList(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	return output.OutputTo(cmd.OutOrStdout(), outputFmt, cfg.KeywordGraph())
}

func runThemesAdd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	label := strings.TrimSpace(args[0])
	var terms []string
	for _, a := range args[1:] {
		terms = append(terms, lead.ParseTerms(a)...)
	}
	if label == "" || len(terms) == 0 {
		return fmt.Errorf("a theme needs a label and at least one term")
	}

	graph, added := addTerms(cfg.KeywordGraph(), label, terms)
	cfg.SetKeywordGraph(graph)
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	logger.Info().Str("theme", label).Int("added", added).Msg("theme updated")
	return nil
}

func runThemesRemove(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	label := strings.TrimSpace(args[0])
	graph, ok := removeTerms(cfg.KeywordGraph(), label, args[1:])
	if !ok {
		return fmt.Errorf("theme not found: %s", label)
	}
	cfg.SetKeywordGraph(graph)
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	logger.Info().Str("theme", label).Msg("theme updated")
	return nil
}

// addTerms appends the terms not yet in the theme (case-insensitive) and
// returns how many were added. Labels match case-insensitively.
func addTerms(g lead.KeywordGraph, label string, terms []string) (lead.KeywordGraph, int) {
	i := themeIndex(g, label)
	if i < 0 {
		g.Themes = append(g.Themes, lead.Theme{Label: label})
		i = len(g.Themes) - 1
	}

	theme := &g.Themes[i]
	added := 0
	for _, term := range terms {
		if slices.ContainsFunc(theme.Terms, func(t string) bool { return strings.EqualFold(t, term) }) {
			continue
		}
		theme.Terms = append(theme.Terms, term)
		added++
	}
	return g, added
}

// removeTerms drops the whole theme when no terms are given
func removeTerms(g lead.KeywordGraph, label string, terms []string) (lead.KeywordGraph, bool) {
	i := themeIndex(g, label)
	if i < 0 {
		return g, false
	}

	if len(terms) == 0 {
		g.Themes = slices.Delete(g.Themes, i, i+1)
		return g, true
	}

	g.Themes[i].Terms = slices.DeleteFunc(g.Themes[i].Terms, func(t string) bool {
		return slices.ContainsFunc(terms, func(r string) bool { return strings.EqualFold(strings.TrimSpace(r), t) })
	})
	return g, true
}

func themeIndex(g lead.KeywordGraph, label string) int {
	return slices.IndexFunc(g.Themes, func(t lead.Theme) bool { return strings.EqualFold(t.Label, label) })
}
