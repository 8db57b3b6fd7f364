package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/treescope/internal/analyzer"
	mcputils "github.com/mvp-joe/treescope/internal/mcp-utils"
)

// AddAnalyzeFileTool registers analyze_file. Tool registration functions are
// composable so embedders can pick a subset.
func AddAnalyzeFileTool(s *server.MCPServer, engine *analyzer.Engine) {
	tool := mcp.NewTool(
		"analyze_file",
		mcp.WithDescription("Analyze a source file and return its structural elements: functions, classes, types, imports and more, with positions, signatures and cyclomatic complexity."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the source file to analyze")),
		mcp.WithString("query",
			mcp.Description("Optional structural queries to run alongside extraction, comma-separated (e.g. 'functions,classes')")),
		mcp.WithBoolean("include_complexity",
			mcp.Description("Override the configured cyclomatic complexity computation for this call")),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args AnalyzeFileRequest
		if err := mcputils.BindArguments(&request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}
		req := analyzer.FileRequest(args.Path)
		req.Queries = args.Queries
		req.IncludeComplexity = args.IncludeComplexity
		return runAnalysis(ctx, engine, req)
	})
}

// AddAnalyzeCodeTool registers analyze_code for inline snippets.
func AddAnalyzeCodeTool(s *server.MCPServer, engine *analyzer.Engine) {
	tool := mcp.NewTool(
		"analyze_code",
		mcp.WithDescription("Analyze an inline code snippet in a named language and return its structural elements."),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Source code to analyze")),
		mcp.WithString("language",
			mcp.Required(),
			mcp.Description("Language ID of the snippet (e.g. 'python', 'go', 'typescript')")),
		mcp.WithString("query",
			mcp.Description("Optional structural queries to run alongside extraction, comma-separated")),
		mcp.WithBoolean("include_complexity",
			mcp.Description("Override the configured cyclomatic complexity computation for this call")),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args AnalyzeCodeRequest
		if err := mcputils.BindArguments(&request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Code == "" || args.Language == "" {
			return mcp.NewToolResultError("code and language parameters are required"), nil
		}
		req := analyzer.CodeRequest(args.Code, args.Language)
		req.Queries = args.Queries
		req.IncludeComplexity = args.IncludeComplexity
		return runAnalysis(ctx, engine, req)
	})
}

// AddQueryCodeTool registers query_code, which runs a single named query
// against a file or snippet.
func AddQueryCodeTool(s *server.MCPServer, engine *analyzer.Engine) {
	tool := mcp.NewTool(
		"query_code",
		mcp.WithDescription("Run a structural query (e.g. 'functions', 'classes', 'headers') against a file or inline snippet and return the matches."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Query names to run, comma-separated")),
		mcp.WithString("path",
			mcp.Description("Path to a source file; omit when passing code")),
		mcp.WithString("code",
			mcp.Description("Inline source code; requires language")),
		mcp.WithString("language",
			mcp.Description("Language ID for inline code")),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args QueryCodeRequest
		if err := mcputils.BindArguments(&request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if len(args.Queries) == 0 {
			return mcp.NewToolResultError("query parameter is required"), nil
		}
		var req analyzer.AnalysisRequest
		switch {
		case args.Path != "":
			req = analyzer.FileRequest(args.Path)
		case args.Code != "" && args.Language != "":
			req = analyzer.CodeRequest(args.Code, args.Language)
		default:
			return mcp.NewToolResultError("either path or code with language is required"), nil
		}
		req.Queries = args.Queries
		off := false
		req.IncludeElements = &off
		return runAnalysis(ctx, engine, req)
	})
}

// AddListLanguagesTool registers list_languages.
func AddListLanguagesTool(s *server.MCPServer, engine *analyzer.Engine) {
	tool := mcp.NewTool(
		"list_languages",
		mcp.WithDescription("List every language the analyzer recognizes, with extensions and whether a grammar is available."),
	)
	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(LanguagesResponse{Languages: engine.Languages()})
	})
}

func runAnalysis(ctx context.Context, engine *analyzer.Engine, req analyzer.AnalysisRequest) (*mcp.CallToolResult, error) {
	result, err := engine.Analyze(ctx, req)
	if err != nil {
		payload, merr := json.Marshal(ToolError{Kind: analyzer.KindOf(err), Message: err.Error()})
		if merr != nil {
			return nil, merr
		}
		return mcp.NewToolResultError(string(payload)), nil
	}
	return jsonResult(result)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}
