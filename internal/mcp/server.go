// Package mcp exposes the analysis engine over the Model Context Protocol
// so coding agents can inspect source structure through tool calls.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/treescope/internal/analyzer"
	"github.com/mvp-joe/treescope/internal/config"
	"github.com/mvp-joe/treescope/internal/watcher"
)

// Server manages the MCP server lifecycle around one analysis engine.
type Server struct {
	cfg     *config.Config
	log     *slog.Logger
	engine  *analyzer.Engine
	watcher *watcher.Watcher
	mcp     *server.MCPServer
}

// NewServer wires the engine's tools into an MCP server. When cache watching
// is enabled a filesystem watcher keeps cached parse trees honest while the
// server runs.
func NewServer(cfg *config.Config, engine *analyzer.Engine, version string, log *slog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = slog.Default()
	}

	mcpServer := server.NewMCPServer(
		"treescope-mcp",
		version,
		server.WithToolCapabilities(true),
	)
	AddAnalyzeFileTool(mcpServer, engine)
	AddAnalyzeCodeTool(mcpServer, engine)
	AddQueryCodeTool(mcpServer, engine)
	AddListLanguagesTool(mcpServer, engine)

	s := &Server{
		cfg:    cfg,
		log:    log,
		engine: engine,
		mcp:    mcpServer,
	}

	if cfg.Cache.Watch {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve working directory: %w", err)
		}
		var exts []string
		for _, info := range engine.Languages() {
			exts = append(exts, info.Extensions...)
		}
		w, err := watcher.New([]string{wd}, exts, engine, log)
		if err != nil {
			return nil, fmt.Errorf("create watcher: %w", err)
		}
		s.watcher = w
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.watcher != nil {
		s.watcher.Start(ctx)
		defer s.watcher.Stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("serving MCP on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("mcp server: %w", err)
		}
	}()

	select {
	case <-sigCh:
		s.log.Info("shutdown signal received")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases server resources.
func (s *Server) Close() error {
	if s.watcher != nil {
		return s.watcher.Stop()
	}
	return nil
}
