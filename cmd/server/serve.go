package main

import (
	"context"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/job-discovery/internal/mcp"
	"github.com/honeycarbs/job-discovery/pkg/shutdown"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP HTTP server",
	Long:  "Run the MCP server exposing discover_jobs, next_page, probe_health and export_offers over streamable HTTP at /mcp/stream.",
	RunE:  runServe,
}

var serveShutdownTimeout time.Duration

func init() {
	serveCmd.Flags().DurationVar(&serveShutdownTimeout, "shutdown-timeout", 10*time.Second, "Time allowed for in-flight requests to finish on shutdown")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, logger, res, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	srv, err := mcp.NewServer(logger, cfg, res)
	if err != nil {
		_ = res.Close(context.Background())
		return err
	}

	go shutdown.Graceful(
		context.Background(),
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		serveShutdownTimeout,
		logger,
		srv,
	)

	logger.Info("MCP server initialized and starting", "addr", net.JoinHostPort(cfg.Host, cfg.Port))

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
		return err
	}

	logger.Info("MCP server stopped")
	return nil
}
