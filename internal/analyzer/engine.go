// Package analyzer wires language detection, loading, parsing, caching,
// extraction and queries into one engine behind a single request/result API.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mvp-joe/treescope/internal/config"
	"github.com/mvp-joe/treescope/internal/extract"
	"github.com/mvp-joe/treescope/internal/lang"
	"github.com/mvp-joe/treescope/internal/loader"
	"github.com/mvp-joe/treescope/internal/parser"
	"github.com/mvp-joe/treescope/internal/query"
)

// Engine is the analysis entry point. It owns the plugin registry, the parse
// cache and the query service; a single Engine is safe for concurrent use.
type Engine struct {
	cfg      *config.Config
	log      *slog.Logger
	registry *lang.Registry
	loader   *loader.Loader
	parser   *parser.Parser
	cache    *parser.Cache
	queries  *query.Service
}

// NewEngine builds an engine from configuration. A nil config uses defaults,
// a nil logger logs through slog.Default.
func NewEngine(cfg *config.Config, log *slog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = slog.Default()
	}
	cache, err := parser.NewCache(cfg.Cache.Capacity)
	if err != nil {
		return nil, fmt.Errorf("create parse cache: %w", err)
	}
	return &Engine{
		cfg:      cfg,
		log:      log,
		registry: lang.NewRegistry(),
		loader:   loader.New(cfg.Analysis.Encodings),
		parser:   parser.New(),
		cache:    cache,
		queries:  query.New(cfg.Analysis.MaxDepth),
	}, nil
}

// Registry exposes the engine's language registry.
func (e *Engine) Registry() *lang.Registry { return e.registry }

// AnalyzeFile extracts every element from the file at path.
func (e *Engine) AnalyzeFile(ctx context.Context, path string) (*AnalysisResult, error) {
	return e.Analyze(ctx, FileRequest(path))
}

// AnalyzeSource extracts every element from an inline snippet.
func (e *Engine) AnalyzeSource(ctx context.Context, code, languageID string) (*AnalysisResult, error) {
	return e.Analyze(ctx, CodeRequest(code, languageID))
}

// Analyze runs the full pipeline for one request. Fatal failures come back
// as typed errors (UnsupportedLanguageError, FileLoadError, ParseError);
// per-element problems surface as diagnostics on the result instead.
func (e *Engine) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	start := time.Now()
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pl, src, err := e.resolve(req)
	if err != nil {
		e.log.Debug("analysis rejected", "request", req.ID, "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, fromCache, err := e.parse(ctx, pl, src, req.Path != "")
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := extract.NewSource()
	text.InitializeSource(tree.Source.Text, tree.Source.Encoding)

	var elements []extract.CodeElement
	var warnings []string
	if boolOr(req.IncludeElements, true) {
		strategy := pl.Strategy(e.cfg.Analysis.MaxDepth, boolOr(req.IncludeComplexity, e.cfg.Analysis.Complexity))
		elements, warnings = strategy.Extract(tree.Root(), pl.Nodes(), text, pl.Build)
	}

	result := &AnalysisResult{
		RequestID: req.ID,
		File: FileInfo{
			Path:      src.Path,
			Encoding:  src.Encoding,
			Size:      src.Size,
			Lines:     text.LineCount(),
			FromCache: fromCache,
		},
		Language: LanguageInfo{
			ID:         pl.ID,
			Supported:  true,
			Extensions: pl.Extensions,
		},
		Elements: elements,
	}
	for _, w := range warnings {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{Severity: "warning", Message: w})
	}

	if boolOr(req.IncludeQueries, true) {
		for _, key := range req.Queries {
			if key == "" {
				continue
			}
			qres, err := e.queries.Execute(ctx, tree, pl, key, text)
			if err != nil {
				return nil, err
			}
			result.QueryResults = append(result.QueryResults, qres...)
		}
	}

	result.Duration = time.Since(start)
	e.log.Debug("analysis complete",
		"request", req.ID,
		"path", src.Path,
		"language", pl.ID,
		"elements", len(result.Elements),
		"cached", fromCache,
		"duration", result.Duration)
	return result, nil
}

// Query runs only the named queries against the file at path, without
// element extraction.
func (e *Engine) Query(ctx context.Context, path string, keys ...string) (*AnalysisResult, error) {
	req := FileRequest(path)
	req.Queries = keys
	off := false
	req.IncludeElements = &off
	return e.Analyze(ctx, req)
}

// boolOr resolves an optional per-request toggle against its default.
func boolOr(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}

// resolve picks the plugin and loads the source for a request.
func (e *Engine) resolve(req AnalysisRequest) (*lang.Plugin, *loader.SourceUnit, error) {
	if req.Code != "" || req.Path == "" {
		pl, ok := e.registry.ByID(req.LanguageID)
		if !ok {
			return nil, nil, &UnsupportedLanguageError{
				Path:       "<inline>",
				LanguageID: req.LanguageID,
				Known:      e.registry.RecognizedOnly(req.LanguageID),
			}
		}
		return pl, e.loader.FromString(req.Code, pl.ID), nil
	}

	id := req.LanguageID
	if id == "" {
		detected, ok := e.registry.DetectLanguage(req.Path)
		if !ok {
			return nil, nil, &UnsupportedLanguageError{Path: req.Path}
		}
		id = detected
	}
	pl, ok := e.registry.ByID(id)
	if !ok {
		return nil, nil, &UnsupportedLanguageError{
			Path:       req.Path,
			LanguageID: id,
			Known:      e.registry.RecognizedOnly(id),
		}
	}

	src, err := e.loader.Load(req.Path)
	if err != nil {
		return nil, nil, &FileLoadError{Path: req.Path, Err: err}
	}
	src.LanguageID = pl.ID
	return pl, src, nil
}

// parse returns a tree for the source, consulting the cache for file-backed
// requests. The returned tree carries one reference for the caller, which
// must be closed when the request finishes; cached trees stay alive through
// the cache's own reference.
func (e *Engine) parse(ctx context.Context, pl *lang.Plugin, src *loader.SourceUnit, cacheable bool) (*parser.Tree, bool, error) {
	var key parser.CacheKey
	if cacheable {
		key = parser.KeyFor(src)
		if tree, ok := e.cache.Get(key); ok {
			return tree, true, nil
		}
	}

	tree, err := e.parser.Parse(ctx, pl, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, false, &ParseError{Path: src.Path, Err: err}
	}
	if cacheable {
		e.cache.Put(key, tree)
	}
	return tree, false, nil
}

// Languages lists every language the engine can classify, supported or not.
func (e *Engine) Languages() []LanguageInfo {
	var infos []LanguageInfo
	for _, id := range e.registry.IDs() {
		pl, _ := e.registry.ByID(id)
		infos = append(infos, LanguageInfo{
			ID:         id,
			Supported:  true,
			Extensions: pl.Extensions,
		})
	}
	infos = append(infos, LanguageInfo{ID: "markdown", Supported: false, Extensions: []string{".md", ".mdx"}})
	return infos
}

// Invalidate drops any cached parse tree for path.
func (e *Engine) Invalidate(path string) {
	e.cache.Invalidate(path)
}

// CacheLen reports the number of cached parse trees.
func (e *Engine) CacheLen() int { return e.cache.Len() }

// Close releases the parse cache and every tree it holds.
func (e *Engine) Close() {
	e.cache.Close()
}
