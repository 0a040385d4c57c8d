package main

import (
	"os"

	"github.com/vijay-prabhu/leadradar/internal/cli"
)

// Set with -ldflags "-X main.Version=..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, Commit, BuildTime)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
