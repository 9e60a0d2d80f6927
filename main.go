package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/codec"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/config"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/httpapi"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/logger"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/server"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/session"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	transport := flag.String("transport", "", "Transport mode: stdio or http")
	port := flag.String("port", "", "HTTP port (only used with --transport http)")
	dataDir := flag.String("data-dir", "", "Directory for the SQLite database")
	logMode := flag.String("log-mode", "", "Log mode: dev or prod")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *transport != "" {
		cfg.Transport = *transport
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *logMode != "" {
		cfg.LogMode = *logMode
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// The store opens lazily on the first tool call.
	handle := session.New(storage.Options{
		Path:           cfg.DBPath(),
		Clock:          codec.NewClock(cfg.TimezoneOffsetHours),
		DefaultPrivacy: cfg.DefaultPrivacy,
		Logger:         log,
	})
	defer handle.Close()

	srv := server.New(handle, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch cfg.Transport {
	case "stdio":
		log.Info("profile MCP server starting", "transport", "stdio", "db", cfg.DBPath())
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
			log.Error("server error", "error", err)
		}
	case "http":
		log.Info("profile MCP server starting", "transport", "http", "db", cfg.DBPath())
		if err := httpapi.New(cfg, srv, log).Run(ctx, ":"+cfg.Port); err != nil {
			log.Error("http server error", "error", err)
		}
	}
}
