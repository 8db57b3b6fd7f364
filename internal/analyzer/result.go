package analyzer

import (
	"time"

	"github.com/google/uuid"

	"github.com/mvp-joe/treescope/internal/extract"
	"github.com/mvp-joe/treescope/internal/query"
)

// AnalysisRequest describes one unit of work for the engine. Exactly one of
// Path or Code must be set; Code additionally requires LanguageID.
type AnalysisRequest struct {
	ID         string `json:"id"`
	Path       string `json:"path,omitempty"`
	Code       string `json:"code,omitempty"`
	LanguageID string `json:"language,omitempty"`

	// Queries names structural queries to run alongside extraction. Empty
	// means extraction only.
	Queries []string `json:"queries,omitempty"`

	// Per-request toggles; nil falls back to the defaults (elements and
	// queries on, complexity per configuration).
	IncludeElements   *bool `json:"include_elements,omitempty"`
	IncludeQueries    *bool `json:"include_queries,omitempty"`
	IncludeComplexity *bool `json:"include_complexity,omitempty"`
}

// NewRequest returns an AnalysisRequest with a fresh ID.
func NewRequest() AnalysisRequest {
	return AnalysisRequest{ID: uuid.NewString()}
}

// FileRequest builds a request to analyze the file at path.
func FileRequest(path string) AnalysisRequest {
	r := NewRequest()
	r.Path = path
	return r
}

// CodeRequest builds a request to analyze an inline snippet.
func CodeRequest(code, languageID string) AnalysisRequest {
	r := NewRequest()
	r.Code = code
	r.LanguageID = languageID
	return r
}

// LanguageInfo describes how the engine classified the input.
type LanguageInfo struct {
	ID         string   `json:"id"`
	Supported  bool     `json:"supported"`
	Extensions []string `json:"extensions,omitempty"`
}

// FileInfo describes the analyzed source after loading.
type FileInfo struct {
	Path      string `json:"path"`
	Encoding  string `json:"encoding"`
	Size      int64  `json:"size"`
	Lines     int    `json:"lines"`
	FromCache bool   `json:"from_cache"`
}

// Diagnostic is a non-fatal problem observed during analysis, such as an
// element whose name could not be resolved.
type Diagnostic struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// AnalysisResult is the full outcome of one request.
type AnalysisResult struct {
	RequestID    string                `json:"request_id"`
	File         FileInfo              `json:"file"`
	Language     LanguageInfo          `json:"language"`
	Elements     []extract.CodeElement `json:"elements"`
	QueryResults []query.Result        `json:"query_results,omitempty"`
	Diagnostics  []Diagnostic          `json:"diagnostics,omitempty"`
	Duration     time.Duration         `json:"duration_ns"`
}
