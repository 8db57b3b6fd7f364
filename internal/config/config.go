package config

import (
	"time"

	"github.com/mvp-joe/treescope/internal/extract"
	"github.com/mvp-joe/treescope/internal/parser"
)

// Config represents the complete treescope configuration.
// It can be loaded from .treescope/config.yml with environment variable overrides.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
}

// AnalysisConfig controls extraction behavior.
type AnalysisConfig struct {
	MaxDepth    int           `yaml:"max_depth" mapstructure:"max_depth"`       // traversal depth limit
	Complexity  bool          `yaml:"complexity" mapstructure:"complexity"`     // compute cyclomatic complexity
	SyncTimeout time.Duration `yaml:"sync_timeout" mapstructure:"sync_timeout"` // deadline for blocking analysis calls
	Workers     int           `yaml:"workers" mapstructure:"workers"`           // concurrent files during batch analysis
	Encodings   []string      `yaml:"encodings" mapstructure:"encodings"`       // decode attempt order for source files
}

// CacheConfig controls the parse-tree cache.
type CacheConfig struct {
	Capacity int  `yaml:"capacity" mapstructure:"capacity"` // max cached parse trees
	Watch    bool `yaml:"watch" mapstructure:"watch"`       // invalidate entries on filesystem changes
}

// PathsConfig defines which files batch analysis considers.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns to analyze
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			MaxDepth:    extract.DefaultMaxDepth,
			Complexity:  true,
			SyncTimeout: 60 * time.Second,
			Workers:     4,
			Encodings:   []string{"utf-8", "shift_jis", "gbk", "latin-1"},
		},
		Cache: CacheConfig{
			Capacity: parser.DefaultCacheCapacity,
			Watch:    false,
		},
		Paths: PathsConfig{
			// "**" also matches paths without a separator, so files at
			// the root of the analyzed directory are included.
			Include: []string{"**"},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
				"*.test",
				"*.pyc",
			},
		},
	}
}
