package config

import (
	"errors"
	"fmt"

	fileloader "github.com/mvp-joe/treescope/internal/loader"
)

var (
	// ErrInvalidDepth indicates an unusable traversal depth limit
	ErrInvalidDepth = errors.New("invalid max depth")

	// ErrInvalidTimeout indicates an unusable sync timeout
	ErrInvalidTimeout = errors.New("invalid sync timeout")

	// ErrInvalidWorkers indicates an unusable worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidCapacity indicates an unusable cache capacity
	ErrInvalidCapacity = errors.New("invalid cache capacity")

	// ErrUnknownEncoding indicates an encoding name the loader cannot decode
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateAnalysis(&cfg.Analysis); err != nil {
		errs = append(errs, err)
	}

	if err := validateCache(&cfg.Cache); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateAnalysis(cfg *AnalysisConfig) error {
	var errs []error

	if cfg.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_depth must be positive, got %d", ErrInvalidDepth, cfg.MaxDepth))
	}

	if cfg.SyncTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: sync_timeout must be positive, got %s", ErrInvalidTimeout, cfg.SyncTimeout))
	}

	if cfg.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	for _, name := range cfg.Encodings {
		// The loader decides which names and aliases are decodable, so
		// validation accepts exactly what Decode accepts.
		if !fileloader.KnownEncoding(name) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownEncoding, name))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateCache(cfg *CacheConfig) error {
	if cfg.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidCapacity, cfg.Capacity)
	}
	return nil
}

// joinErrors combines multiple errors into a single error.
func joinErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	return errors.Join(errs...)
}
