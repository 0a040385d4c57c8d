package cli

import (
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leadradar/internal/output"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Inspect scoring weights",
}

var weightsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective scoring weights",
	Long: `Show one weight per signal flag plus the keyword fit bonus, location bias
and recency boost. Weights in the config file override the defaults.`,
	RunE: runWeightsShow,
}

func init() {
	rootCmd.AddCommand(weightsCmd)
	weightsCmd.AddCommand(weightsShowCmd)
}

func runWeightsShow(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	weights, err := cfg.ParsedWeights()
	if err != nil {
		return err
	}
	for _, o := range cfg.WeightOverrides() {
		logger.Info().Str("weight", o).Msg("overridden")
	}

	if outputFmt == "json" {
		return output.JSONTo(cmd.OutOrStdout(), weights.Map())
	}
	return output.TableTo(cmd.OutOrStdout(), weights)
}
