package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/openproject-tools/openproject-mcp/internal/apispec"
	"github.com/openproject-tools/openproject-mcp/internal/common"
	"github.com/openproject-tools/openproject-mcp/internal/config"
	"github.com/openproject-tools/openproject-mcp/internal/openproject"
	httpserver "github.com/openproject-tools/openproject-mcp/internal/server"
	"github.com/openproject-tools/openproject-mcp/internal/tools"
)

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for desktop MCP clients)")
	configFile := flag.String("config", "openproject-mcp.toml", "Path to config file")
	specFile := flag.String("spec", "", "Path to the OpenAPI spec (default: spec.yml above the binary)")
	port := flag.Int("port", 0, "Listen port (overrides config and PORT)")
	showVersion := flag.Bool("version", false, "Print version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("openproject-mcp version %s\n", config.GetFullVersion())
		os.Exit(0)
	}

	config.LoadVersionFromFile()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyFlagOverrides(cfg, *port, "")

	logger := common.NewLoggerFromConfig(cfg.Logging)

	logger.Info().
		Str("base_url", cfg.OpenProject.BaseURL).
		Int("timeout_seconds", cfg.OpenProject.TimeoutSeconds).
		Int("port", cfg.Server.Port).
		Msg("configuration loaded")

	client := openproject.NewClient(cfg.OpenProject, logger)

	doc, pathCount, err := apispec.Load(*specFile)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load OpenAPI spec")
		fmt.Fprintf(os.Stderr, "spec error: %v\n", err)
		os.Exit(1)
	}
	logger.Info().Int("paths", pathCount).Msg("OpenAPI spec loaded")

	surface := tools.Select(doc, client, logger)
	logger.Info().
		Str("mode", string(surface.Mode)).
		Int("tools", len(surface.Tools)).
		Msg("tool surface ready")

	srv := mcpserver.NewMCPServer(
		cfg.Server.Name,
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)
	surface.Register(srv)

	if *stdio {
		// Stdio transport — reads stdin, writes stdout
		if err := mcpserver.ServeStdio(srv); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	mcpHandler := mcpserver.NewStreamableHTTPServer(srv,
		mcpserver.WithStateLess(true),
	)

	web := httpserver.New(cfg.Server, mcpHandler, logger)

	go func() {
		if err := web.Start(); err != nil {
			logger.Error().Err(err).Msg("server failed to start")
			os.Exit(1)
		}
	}()

	logger.Info().
		Str("url", fmt.Sprintf("http://%s:%d/mcp", cfg.Server.Host, cfg.Server.Port)).
		Msg("server ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), httpserver.ShutdownGracePeriod)
	defer cancel()

	if err := web.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
