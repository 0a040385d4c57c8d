package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/leadradar/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve ranked leads over HTTP",
	Long: `Load a batch of signal records and serve it over a read-only HTTP API.
Every request re-ranks the batch with the configured filters overlaid by the
query parameters.

Endpoints:
  GET /api/leads?q=&region=&min_score=&high_confidence=&now=&limit=
  GET /api/leads/:id
  GET /api/themes, /api/weights, /api/sources
  GET /healthz, /metrics`,
	RunE: runServe,
}

var (
	serveInput string
	serveAddr  string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveInput, "input", "i", "", "signal record batch (.json, .yaml, .csv)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	_ = serveCmd.MarkFlagRequired("input")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := loadRecords(serveInput, logger)
	if err != nil {
		return err
	}

	server, err := api.New(api.Options{
		Records: records,
		Config:  cfg,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, addr)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
