package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tspython "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Test Plan for extraction:
// - Source line/column math and exact text slicing
// - InitializeSource resets every per-source cache
// - Iterative traversal finds elements in source order
// - Class-body functions come back as methods; defs nested in a method
//   body stay functions
// - Node-identity dedup keeps repeated walks from duplicating elements
// - Depth guard skips deep subtrees silently
// - Build errors become warnings, not failures
// - Complexity counts decision keywords deterministically
// - Markup strategy dedups by position

var pythonTable = map[string]ElementKind{
	"function_definition": KindFunction,
	"class_definition":    KindClass,
	"import_statement":    KindImport,
}

var pythonKeywords = map[string]struct{}{
	"if": {}, "for": {}, "while": {}, "and": {}, "or": {},
}

func parsePython(t *testing.T, code string) *sitter.Node {
	t.Helper()
	p := sitter.NewParser()
	t.Cleanup(func() { p.Close() })
	require.NoError(t, p.SetLanguage(sitter.NewLanguage(tspython.Language())))
	tree := p.Parse([]byte(code), nil)
	require.NotNil(t, tree)
	t.Cleanup(func() { tree.Close() })
	return tree.RootNode()
}

func newPythonSource(code string) *Source {
	src := NewSource()
	src.InitializeSource([]byte(code), "utf-8")
	return src
}

func TestSource_LineCol(t *testing.T) {
	t.Parallel()

	src := newPythonSource("ab\ncd\n\nef")

	line, col := src.LineCol(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	line, col = src.LineCol(3) // 'c'
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)

	line, col = src.LineCol(7) // 'e'
	assert.Equal(t, 4, line)
	assert.Equal(t, 1, col)

	assert.Equal(t, 4, src.LineCount())
}

func TestSource_ExtractText(t *testing.T) {
	t.Parallel()

	code := "def f():\n    return 42\n"
	root := parsePython(t, code)
	src := newPythonSource(code)

	fn := root.Child(0)
	require.NotNil(t, fn)
	require.Equal(t, "function_definition", fn.Kind())

	text := src.ExtractText(fn)
	assert.Equal(t, "def f():\n    return 42", text)

	// Cached slice comes back identical.
	assert.Equal(t, text, src.ExtractText(fn))
}

func TestSource_InitializeResetsCaches(t *testing.T) {
	t.Parallel()

	code := "x = 1\n"
	root := parsePython(t, code)
	src := newPythonSource(code)

	_ = src.ExtractText(root)
	assert.False(t, src.markProcessed(root.Id()))
	assert.True(t, src.markProcessed(root.Id()))

	src.InitializeSource([]byte(code), "utf-8")
	assert.False(t, src.markProcessed(root.Id()))
}

func TestIterative_ExtractsInSourceOrder(t *testing.T) {
	t.Parallel()

	code := "import os\n\ndef first():\n    pass\n\nclass Box:\n    def get(self):\n        return 1\n\ndef last():\n    pass\n"
	root := parsePython(t, code)
	src := newPythonSource(code)

	st := &IterativeDepthGuarded{Keywords: pythonKeywords}
	elements, warnings := st.Extract(root, pythonTable, src, BuildElement)

	require.Empty(t, warnings)
	var got []string
	for _, el := range elements {
		got = append(got, string(el.Kind)+":"+el.Name)
	}
	assert.Equal(t, []string{
		"import:import os",
		"function:first",
		"class:Box",
		"method:get",
		"function:last",
	}, got)
}

func TestIterative_ClassBodyFunctionsAreMethods(t *testing.T) {
	t.Parallel()

	code := "class Box:\n" +
		"    def get(self):\n" +
		"        def helper():\n" +
		"            pass\n" +
		"        return helper\n" +
		"\n" +
		"def free():\n" +
		"    pass\n"
	root := parsePython(t, code)
	src := newPythonSource(code)

	st := &IterativeDepthGuarded{}
	elements, warnings := st.Extract(root, pythonTable, src, BuildElement)
	require.Empty(t, warnings)

	kinds := map[string]ElementKind{}
	for _, el := range elements {
		kinds[el.Name] = el.Kind
	}
	assert.Equal(t, KindClass, kinds["Box"])
	assert.Equal(t, KindMethod, kinds["get"])
	// A def inside a method body is a local function, not a method.
	assert.Equal(t, KindFunction, kinds["helper"])
	assert.Equal(t, KindFunction, kinds["free"])
}

func TestIterative_DedupOnSecondWalk(t *testing.T) {
	t.Parallel()

	code := "def f():\n    pass\n"
	root := parsePython(t, code)
	src := newPythonSource(code)

	st := &IterativeDepthGuarded{}
	first, _ := st.Extract(root, pythonTable, src, BuildElement)
	require.Len(t, first, 1)

	// Same Source: every node is already marked processed.
	second, _ := st.Extract(root, pythonTable, src, BuildElement)
	assert.Empty(t, second)

	// Fresh Source: same elements again.
	fresh := newPythonSource(code)
	third, _ := st.Extract(root, pythonTable, fresh, BuildElement)
	assert.Equal(t, first, third)
}

func TestIterative_DepthGuardSkipsDeepNodes(t *testing.T) {
	t.Parallel()

	deep := "def shallow():\n    pass\n\nx = " +
		strings.Repeat("(", 150) + "1" + strings.Repeat(")", 150) + "\n"
	root := parsePython(t, deep)
	src := newPythonSource(deep)

	st := &IterativeDepthGuarded{MaxDepth: 10}
	elements, warnings := st.Extract(root, pythonTable, src, BuildElement)

	assert.Empty(t, warnings)
	require.Len(t, elements, 1)
	assert.Equal(t, "shallow", elements[0].Name)
}

func TestIterative_BuildErrorBecomesWarning(t *testing.T) {
	t.Parallel()

	// A pass statement has no name anywhere in its children.
	code := "def g():\n    pass\n"
	root := parsePython(t, code)
	src := newPythonSource(code)

	table := map[string]ElementKind{
		"function_definition": KindFunction,
		"pass_statement":      KindFunction,
	}
	st := &IterativeDepthGuarded{}
	elements, warnings := st.Extract(root, table, src, BuildElement)

	require.Len(t, elements, 1)
	assert.Equal(t, "g", elements[0].Name)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "line 2")
}

func TestComplexity(t *testing.T) {
	t.Parallel()

	code := "def route(n):\n    for i in n:\n        if i > 0 and i < 9:\n            return i\n    return 0\n"
	root := parsePython(t, code)
	src := newPythonSource(code)

	fn := root.Child(0)
	require.Equal(t, "function_definition", fn.Kind())

	// 1 + for + if + and
	got := Complexity(fn, src, pythonKeywords, DefaultMaxDepth)
	assert.Equal(t, 4, got)

	// Deterministic across runs.
	assert.Equal(t, got, Complexity(fn, src, pythonKeywords, DefaultMaxDepth))

	assert.Equal(t, 1, Complexity(fn, src, nil, DefaultMaxDepth))
}

func TestComplexity_WiredIntoExtraction(t *testing.T) {
	t.Parallel()

	code := "def f(n):\n    if n:\n        return 1\n    return 0\n"
	root := parsePython(t, code)
	src := newPythonSource(code)

	st := &IterativeDepthGuarded{Keywords: pythonKeywords, ComputeComplexity: true}
	elements, _ := st.Extract(root, pythonTable, src, BuildElement)

	require.Len(t, elements, 1)
	assert.Equal(t, 2, elements[0].Complexity)

	// Disabled strategies leave complexity at zero.
	off := &IterativeDepthGuarded{Keywords: pythonKeywords}
	fresh := newPythonSource(code)
	elements, _ = off.Extract(root, pythonTable, fresh, BuildElement)
	require.Len(t, elements, 1)
	assert.Zero(t, elements[0].Complexity)
}

func TestSimpleRecursive_PositionDedup(t *testing.T) {
	t.Parallel()

	code := "x = 1\ny = 2\n"
	root := parsePython(t, code)
	src := newPythonSource(code)

	table := map[string]ElementKind{"expression_statement": KindMarkupNode}
	build := func(node *sitter.Node, kind ElementKind, s *Source) (*CodeElement, error) {
		el := NewElementAt(node, kind)
		el.Name = node.Kind()
		return el, nil
	}

	st := &SimpleRecursive{}
	first, warnings := st.Extract(root, table, src, build)
	require.Empty(t, warnings)
	assert.Len(t, first, 2)

	// Same spans are not rebuilt on a second walk over the same Source.
	second, _ := st.Extract(root, table, src, build)
	assert.Empty(t, second)
}

func TestBuildElement_SignatureAndDoc(t *testing.T) {
	t.Parallel()

	code := "# adds numbers\ndef add(a, b):\n    return a + b\n"
	root := parsePython(t, code)
	src := newPythonSource(code)

	var fn *sitter.Node
	for i := uint(0); i < root.ChildCount(); i++ {
		if c := root.Child(i); c != nil && c.Kind() == "function_definition" {
			fn = c
		}
	}
	require.NotNil(t, fn)

	el, err := BuildElement(fn, KindFunction, src)
	require.NoError(t, err)

	assert.Equal(t, "add", el.Name)
	assert.Equal(t, "def add(a, b):", el.Signature)
	assert.Equal(t, "# adds numbers", el.DocComment)
	assert.Equal(t, 2, el.StartLine)
	assert.Equal(t, 3, el.EndLine)
}
