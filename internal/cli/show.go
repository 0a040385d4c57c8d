package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leadradar/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a lead's score breakdown",
	Long: `Show how a lead's score was composed and where its keywords matched.

The lead is looked up in an unfiltered ranking, so the rank shown is its
position among all deduplicated records.

Examples:
  leadradar show L-001 --input signals.json
  leadradar show L-001 --input signals.json --now 2025-10-24`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var showOpts rankOptions

func init() {
	rootCmd.AddCommand(showCmd)
	showOpts.bind(showCmd, false)
}

func runShow(cmd *cobra.Command, args []string) error {
	id := args[0]

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := showOpts.run(cmd, cfg, logger)
	if err != nil {
		return err
	}

	for i, r := range res.Results {
		if r.ID == id {
			return output.OutputTo(cmd.OutOrStdout(), outputFmt, output.NewLeadDetail(i+1, r))
		}
	}

	return fmt.Errorf("lead not found: %s", id)
}
