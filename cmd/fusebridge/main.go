// Package main provides the CLI entry point for the fusebridge MCP server.
//
// fusebridge exposes a single-threaded parametric modeling document as MCP
// tools over HTTP/SSE. Tool calls arrive on HTTP handler goroutines and are
// marshaled onto the host execution goroutine through the call bridge, so
// the document is only ever touched from one thread.
//
// # Basic Usage
//
// Start the server:
//
//	fusebridge serve --config fusebridge.yaml
//
// List the bundled tools:
//
//	fusebridge tools
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/haasonsaas/fusebridge/internal/bridge"
	"github.com/haasonsaas/fusebridge/internal/config"
	"github.com/haasonsaas/fusebridge/internal/host"
	"github.com/haasonsaas/fusebridge/internal/mcp"
	"github.com/haasonsaas/fusebridge/internal/observability"
	"github.com/haasonsaas/fusebridge/internal/tools"
)

// Build information - populated by ldflags during build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := buildRootCmd()
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fusebridge",
		Short: "fusebridge - MCP server for single-threaded CAD modeling",
		Long: `fusebridge serves a parametric modeling document over the Model Context
Protocol. Clients connect with SSE, list the bundled sketch, feature and
JIS fastener tools, and call them; every call is marshaled onto the host
execution goroutine so the document never sees concurrent access.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		buildServeCmd(),
		buildToolsCmd(),
	)
	return rootCmd
}

func buildServeCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the MCP server with the bundled modeling tools.

The server will:
1. Load configuration from the specified file (built-in defaults when omitted)
2. Start the host execution goroutine that owns the design document
3. Register the call bridge with the host
4. Serve MCP over HTTP/SSE until SIGINT/SIGTERM`,
		Example: `  # Start with defaults (127.0.0.1:8765)
  fusebridge serve

  # Start with a config file
  fusebridge serve --config /etc/fusebridge/fusebridge.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath, debug)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML configuration file")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	return cmd
}

func runServe(ctx context.Context, configPath string, debug bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger := buildLogger(cfg.Logging, debug)
	slog.SetDefault(logger)

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(prometheus.DefaultRegisterer)
	}

	// The document and its host goroutine. Every tool handler runs here.
	doc := host.NewDocument(cfg.Design.DocumentName)
	loopHost := host.NewLoopHost(cfg.Bridge.QueueSize, logger)
	loopHost.Start()
	defer loopHost.Close()

	registry := tools.NewRegistry(doc, logger)
	if err := tools.RegisterAll(registry); err != nil {
		return fmt.Errorf("register tools: %w", err)
	}
	logger.Info("tools registered", "count", registry.Len())

	callBridge := bridge.NewCallBridge(cfg.Bridge.CallTimeout, metrics, logger)
	if err := callBridge.Register(loopHost); err != nil {
		return fmt.Errorf("register bridge: %w", err)
	}
	defer callBridge.Unregister()

	executor := bridge.NewExecutor(registry, callBridge, metrics, logger)
	callBridge.SetExecutor(executor.Invoke)

	protocol := mcp.NewProtocol(cfg.Server.Name, cfg.Server.Version, executor, logger)
	server := mcp.NewServer(mcp.ServerConfig{
		Host:          cfg.Server.Host,
		Port:          cfg.Server.Port,
		PingInterval:  cfg.Server.PingInterval,
		EnableMetrics: cfg.Metrics.Enabled,
	}, protocol, metrics, logger)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	// Unregister before the host stops so waiters see a clean shutdown
	// error instead of a timeout.
	callBridge.Unregister()
	loopHost.Close()
	return nil
}

func buildToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the bundled modeling tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := tools.NewRegistry(host.NewDocument(""), slog.New(slog.NewTextHandler(io.Discard, nil)))
			if err := tools.RegisterAll(registry); err != nil {
				return err
			}
			for _, tool := range registry.ListTools() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %s\n", tool.Name, tool.Description)
			}
			return nil
		},
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat("fusebridge.yaml"); err == nil {
			path = "fusebridge.yaml"
		} else {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

func buildLogger(cfg config.LoggingConfig, debug bool) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
