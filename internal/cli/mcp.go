package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leadradar/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio transport)",
	Long: `Start the MCP (Model Context Protocol) server using stdio transport.

This allows AI assistants like Claude Desktop to rank and inspect leads from a
record batch. Logs go to stderr; stdout carries the protocol.

Add to Claude Desktop config (~/Library/Application Support/Claude/claude_desktop_config.json):

{
  "mcpServers": {
    "leadradar": {
      "command": "/path/to/leadradar",
      "args": ["mcp", "--input", "/path/to/signals.json"]
    }
  }
}`,
	RunE: runMCP,
}

var mcpInput string

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVarP(&mcpInput, "input", "i", "", "signal record batch (.json, .yaml, .csv)")
	_ = mcpCmd.MarkFlagRequired("input")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	// Check if MCP is enabled
	if !cfg.MCP.Enabled {
		return fmt.Errorf("MCP server is disabled in config")
	}

	records, err := loadRecords(mcpInput, logger)
	if err != nil {
		return err
	}

	server, err := mcp.New(mcp.Options{
		Records: records,
		Config:  cfg,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	mcp.Version = version

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	return server.Serve(ctx, os.Stdin, os.Stdout)
}
