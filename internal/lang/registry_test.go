package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/treescope/internal/extract"
)

// Test Plan for the language registry:
// - Every registered plugin has an ID, a grammar and a node table
// - Lookup by ID and by extension, case-insensitive
// - Extension detection, including recognized-but-grammarless markdown
// - Unknown extensions are not recognized
// - Strategy selection by flavor
// - Query compilation is lazy and returns nil for unknown keys
// - Two registries do not share plugin state

func TestRegistry_AllPluginsComplete(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	ids := r.IDs()
	assert.Len(t, ids, 21)

	for _, id := range ids {
		pl, ok := r.ByID(id)
		require.True(t, ok, id)
		assert.Equal(t, id, pl.ID)
		assert.NotNil(t, pl.Language(), id)
		assert.NotEmpty(t, pl.Extensions, id)
		assert.NotEmpty(t, pl.Nodes(), id)
		if pl.Flavor == Programming {
			assert.NotEmpty(t, pl.DecisionKeywords(), id)
		}
	}
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	pl, ok := r.ByID("python")
	require.True(t, ok)
	assert.Equal(t, "python", pl.ID)

	pl, ok = r.ByID("PYTHON")
	require.True(t, ok)
	assert.Equal(t, "python", pl.ID)

	pl, ok = r.ByExtension(".Go")
	require.True(t, ok)
	assert.Equal(t, "go", pl.ID)

	_, ok = r.ByID("cobol")
	assert.False(t, ok)
}

func TestRegistry_DetectLanguage(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	tests := []struct {
		path   string
		wantID string
		wantOK bool
	}{
		{"cmd/main.go", "go", true},
		{"app/models.py", "python", true},
		{"src/App.tsx", "tsx", true},
		{"styles/site.css", "css", true},
		{"README.md", "markdown", true},
		{"notes.mdx", "markdown", true},
		{"LEGACY.cob", "", false},
		{"Makefile", "", false},
	}
	for _, tt := range tests {
		id, ok := r.DetectLanguage(tt.path)
		assert.Equal(t, tt.wantOK, ok, tt.path)
		assert.Equal(t, tt.wantID, id, tt.path)
	}
}

func TestRegistry_RecognizedOnly(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	assert.True(t, r.RecognizedOnly("markdown"))
	assert.False(t, r.RecognizedOnly("python"))
	assert.False(t, r.RecognizedOnly("cobol"))
}

func TestPlugin_StrategyByFlavor(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	python, _ := r.ByID("python")
	st := python.Strategy(50, true)
	iter, ok := st.(*extract.IterativeDepthGuarded)
	require.True(t, ok)
	assert.Equal(t, 50, iter.MaxDepth)
	assert.True(t, iter.ComputeComplexity)

	html, _ := r.ByID("html")
	_, ok = html.Strategy(50, true).(*extract.SimpleRecursive)
	assert.True(t, ok)
}

func TestPlugin_CompiledQuery(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	python, _ := r.ByID("python")
	assert.NotNil(t, python.CompiledQuery("functions"))
	assert.NotNil(t, python.CompiledQuery("classes"))
	assert.Nil(t, python.CompiledQuery("nonexistent"))

	goPlugin, _ := r.ByID("go")
	assert.NotNil(t, goPlugin.CompiledQuery("functions"))
	assert.NotNil(t, goPlugin.CompiledQuery("methods"))
	assert.NotEmpty(t, goPlugin.QueryKeys())
}

func TestRegistry_IndependentInstances(t *testing.T) {
	t.Parallel()

	a := NewRegistry()
	b := NewRegistry()

	pa, _ := a.ByID("python")
	pb, _ := b.ByID("python")
	assert.NotSame(t, pa, pb)
}
