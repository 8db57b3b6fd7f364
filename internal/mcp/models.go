package mcp

import "github.com/mvp-joe/treescope/internal/analyzer"

// AnalyzeFileRequest are the arguments of the analyze_file tool. Query
// accepts a single name, a comma-separated list or a JSON array.
type AnalyzeFileRequest struct {
	Path              string   `json:"path"`
	Queries           []string `json:"query,omitempty"`
	IncludeComplexity *bool    `json:"include_complexity,omitempty"`
}

// AnalyzeCodeRequest are the arguments of the analyze_code tool.
type AnalyzeCodeRequest struct {
	Code              string   `json:"code"`
	Language          string   `json:"language"`
	Queries           []string `json:"query,omitempty"`
	IncludeComplexity *bool    `json:"include_complexity,omitempty"`
}

// QueryCodeRequest are the arguments of the query_code tool. Either Path or
// Code+Language selects the input.
type QueryCodeRequest struct {
	Path     string   `json:"path,omitempty"`
	Code     string   `json:"code,omitempty"`
	Language string   `json:"language,omitempty"`
	Queries  []string `json:"query"`
}

// ToolError is the JSON shape of a failed tool call.
type ToolError struct {
	Kind    analyzer.ErrorKind `json:"kind"`
	Message string             `json:"message"`
}

// LanguagesResponse is the list_languages tool result.
type LanguagesResponse struct {
	Languages []analyzer.LanguageInfo `json:"languages"`
}
