package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - LoadConfig() uses defaults when no config file exists
// - LoadConfig() loads from .treescope/config.yml when present
// - LoadConfig() merges config file with defaults
// - Environment variables override config file values
// - LoadConfig() returns error for malformed YAML
// - Validate() rejects non-positive max_depth, timeout, workers, capacity
// - Validate() rejects unknown encodings but accepts loader aliases
// - Validate() returns multiple errors for multiple invalid fields

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)

	assert.Equal(t, 100, cfg.Analysis.MaxDepth)
	assert.True(t, cfg.Analysis.Complexity)
	assert.Equal(t, 60*time.Second, cfg.Analysis.SyncTimeout)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, []string{"utf-8", "shift_jis", "gbk", "latin-1"}, cfg.Analysis.Encodings)

	assert.Equal(t, 100, cfg.Cache.Capacity)
	assert.False(t, cfg.Cache.Watch)

	// "**/*" would miss files directly under the analyzed root.
	assert.Equal(t, []string{"**"}, cfg.Paths.Include)
	assert.NotEmpty(t, cfg.Paths.Ignore)

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	tempDir := t.TempDir()

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, Default().Analysis.MaxDepth, cfg.Analysis.MaxDepth)
	assert.Equal(t, Default().Cache.Capacity, cfg.Cache.Capacity)
}

func TestLoadConfig_LoadsFromConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".treescope")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	content := `analysis:
  max_depth: 50
  workers: 2
cache:
  capacity: 10
  watch: true
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(content), 0o644))

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Analysis.MaxDepth)
	assert.Equal(t, 2, cfg.Analysis.Workers)
	assert.Equal(t, 10, cfg.Cache.Capacity)
	assert.True(t, cfg.Cache.Watch)

	// Unset values still come from defaults.
	assert.Equal(t, 60*time.Second, cfg.Analysis.SyncTimeout)
	assert.True(t, cfg.Analysis.Complexity)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".treescope")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte("analysis:\n  max_depth: 50\n"), 0o644))

	t.Setenv("TREESCOPE_ANALYSIS_MAX_DEPTH", "25")

	cfg, err := NewLoader(tempDir).Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Analysis.MaxDepth)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".treescope")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte("analysis: [unclosed"), 0o644))

	_, err := NewLoader(tempDir).Load()
	assert.Error(t, err)
}

func TestValidate_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"zero max depth", func(c *Config) { c.Analysis.MaxDepth = 0 }, ErrInvalidDepth},
		{"negative timeout", func(c *Config) { c.Analysis.SyncTimeout = -time.Second }, ErrInvalidTimeout},
		{"zero workers", func(c *Config) { c.Analysis.Workers = 0 }, ErrInvalidWorkers},
		{"zero capacity", func(c *Config) { c.Cache.Capacity = 0 }, ErrInvalidCapacity},
		{"unknown encoding", func(c *Config) { c.Analysis.Encodings = []string{"ebcdic"} }, ErrUnknownEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_AcceptsEncodingAliases(t *testing.T) {
	cfg := Default()
	cfg.Analysis.Encodings = []string{"utf-8", "sjis", "shift-jis", "gb2312", "iso-8859-1", "euc-jp"}

	assert.NoError(t, Validate(cfg))
}

func TestValidate_ReportsMultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Analysis.MaxDepth = -1
	cfg.Cache.Capacity = -1

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDepth)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}
