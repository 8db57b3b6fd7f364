package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/treescope/internal/analyzer"
	"github.com/mvp-joe/treescope/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for structural code analysis",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered
coding assistants analyze source structure through tool calls.

The MCP server:
- Exposes analyze_file, analyze_code, query_code and list_languages tools
- Caches parse trees between calls, invalidating on file changes when
  cache watching is enabled
- Communicates via stdio (standard MCP transport)

Example:
  treescope mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	engine, err := analyzer.NewEngine(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer engine.Close()

	server, err := mcp.NewServer(cfg, engine, Version, slog.Default())
	if err != nil {
		return fmt.Errorf("create MCP server: %w", err)
	}
	defer server.Close()

	if err := server.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("MCP server: %w", err)
	}
	return nil
}
