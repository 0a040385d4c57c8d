package cli

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leadradar/internal/config"
	"github.com/vijay-prabhu/leadradar/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	Long: `Display the effective configuration: the config file merged over the
defaults, or the defaults alone when no file exists.`,
	RunE: runConfigShow,
}

var configForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.ExpandPath(configPath)
	if err != nil {
		return fmt.Errorf("failed to expand config path: %w", err)
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !configForce {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file already exists at %s\n", path)
		fmt.Fprintln(cmd.OutOrStdout(), "Use 'leadradar config show' to view current configuration")
		return nil
	}

	if err := config.Default().Save(path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", path)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Adjust [weights], [[keywords.themes]] and [geography] to your market")
	fmt.Fprintln(out, "  2. Run 'leadradar rank --input signals.json'")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	if outputFmt == "json" {
		return output.JSONTo(cmd.OutOrStdout(), cfg)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "# Config file: %s\n\n", configPath)
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
