package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leadradar/internal/output"
	"github.com/vijay-prabhu/leadradar/internal/ranking"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lead statistics",
	Long: `Rank a batch and count the shown leads by signal flag, keyword theme and score tone.

Examples:
  leadradar stats --input signals.json
  leadradar stats --input signals.json --min-score 0
  leadradar stats --input signals.json -o json`,
	RunE: runStats,
}

var statsOpts rankOptions

func init() {
	rootCmd.AddCommand(statsCmd)
	statsOpts.bind(statsCmd, true)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := statsOpts.run(cmd, cfg, logger)
	if err != nil {
		return err
	}
	res.Results = res.Top(statsOpts.limit)

	return output.OutputTo(cmd.OutOrStdout(), outputFmt, ranking.Summarize(res, cfg.KeywordGraph()))
}
