// Package main provides the entry point for the job discovery MCP server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/honeycarbs/job-discovery/internal/config"
	"github.com/honeycarbs/job-discovery/internal/mcp"
	"github.com/honeycarbs/job-discovery/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:          "job-discovery",
	Short:        "Job offer discovery over the TheirStack API",
	Long:         "job-discovery searches recent job offers, normalizes them into a stable shape and serves them to MCP clients with load-more pagination.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and wires every runtime dependency
func bootstrap() (config.Config, *logging.Logger, *mcp.Resources, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(cfg.LogLevel)

	res, err := mcp.InitializeResources(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return cfg, nil, nil, fmt.Errorf("failed to initialize resources: %w", err)
	}

	return cfg, logger, res, nil
}
