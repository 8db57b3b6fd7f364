package analyzer

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"
)

// BatchResult collects everything a directory walk produced.
type BatchResult struct {
	Results  []*AnalysisResult
	Failures []BatchFailure
	Skipped  int // files with no recognized language
}

// BatchFailure records one file that could not be analyzed.
type BatchFailure struct {
	Path string
	Kind ErrorKind
	Err  error
}

// AnalyzeBatch walks root and analyzes every file matching the configured
// include patterns, skipping ignore patterns and unrecognized languages.
// Files are analyzed concurrently up to the configured worker count. The
// optional progress callback fires once per analyzed file.
func (e *Engine) AnalyzeBatch(ctx context.Context, root string, progress func(path string)) (*BatchResult, error) {
	include, err := compileGlobs(e.cfg.Paths.Include)
	if err != nil {
		return nil, err
	}
	ignore, err := compileGlobs(e.cfg.Paths.Ignore)
	if err != nil {
		return nil, err
	}

	var paths []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if matchAny(ignore, rel+"/") || matchAny(ignore, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if matchAny(ignore, rel) {
			return nil
		}
		if len(include) > 0 && !matchAny(include, rel) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	batch := &BatchResult{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Analysis.Workers)
	for _, path := range paths {
		g.Go(func() error {
			result, err := e.AnalyzeFile(gctx, path)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				batch.Results = append(batch.Results, result)
			case isUnrecognized(err):
				batch.Skipped++
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return err
			default:
				batch.Failures = append(batch.Failures, BatchFailure{Path: path, Kind: KindOf(err), Err: err})
			}
			if progress != nil {
				progress(path)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(batch.Results, func(i, j int) bool {
		return batch.Results[i].File.Path < batch.Results[j].File.Path
	})
	sort.Slice(batch.Failures, func(i, j int) bool {
		return batch.Failures[i].Path < batch.Failures[j].Path
	})
	return batch, nil
}

func isUnrecognized(err error) bool {
	var unsupported *UnsupportedLanguageError
	return errors.As(err, &unsupported)
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, err
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, path string) bool {
	for _, g := range globs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
