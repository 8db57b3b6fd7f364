package mcputils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockArgumentGetter implements ArgumentGetter for testing
type mockArgumentGetter struct {
	args map[string]interface{}
}

func (m *mockArgumentGetter) GetArguments() map[string]interface{} {
	return m.args
}

// analyzeArgs mirrors the shape of a typical tool request
type analyzeArgs struct {
	Path     string   `json:"path"`
	Language string   `json:"language,omitempty"`
	Queries  []string `json:"queries,omitempty"`
	MaxDepth int      `json:"max_depth,omitempty"`
	Verbose  bool     `json:"verbose,omitempty"`
}

func TestBindArguments(t *testing.T) {
	t.Run("JSON-encoded strings", func(t *testing.T) {
		request := &mockArgumentGetter{
			args: map[string]interface{}{
				"path":      "main.go",
				"queries":   `["functions", "types"]`,
				"max_depth": "50",
				"verbose":   "true",
			},
		}

		var result analyzeArgs
		err := BindArguments(request, &result)
		require.NoError(t, err)

		assert.Equal(t, "main.go", result.Path)
		assert.Equal(t, []string{"functions", "types"}, result.Queries)
		assert.Equal(t, 50, result.MaxDepth)
		assert.True(t, result.Verbose)
	})

	t.Run("already proper types", func(t *testing.T) {
		request := &mockArgumentGetter{
			args: map[string]interface{}{
				"path":      "main.go",
				"queries":   []string{"functions"},
				"max_depth": 50,
				"verbose":   true,
			},
		}

		var result analyzeArgs
		err := BindArguments(request, &result)
		require.NoError(t, err)

		assert.Equal(t, []string{"functions"}, result.Queries)
		assert.Equal(t, 50, result.MaxDepth)
		assert.True(t, result.Verbose)
	})

	t.Run("comma-separated fallback for slices", func(t *testing.T) {
		request := &mockArgumentGetter{
			args: map[string]interface{}{
				"path":    "main.go",
				"queries": "functions,types",
			},
		}

		var result analyzeArgs
		err := BindArguments(request, &result)
		require.NoError(t, err)

		assert.Equal(t, []string{"functions", "types"}, result.Queries)
	})

	t.Run("missing optional fields", func(t *testing.T) {
		request := &mockArgumentGetter{
			args: map[string]interface{}{"path": "main.go"},
		}

		var result analyzeArgs
		err := BindArguments(request, &result)
		require.NoError(t, err)

		assert.Equal(t, "main.go", result.Path)
		assert.Empty(t, result.Queries)
		assert.Zero(t, result.MaxDepth)
	})
}
