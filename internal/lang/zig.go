package lang

import (
	zig "github.com/tree-sitter-grammars/tree-sitter-zig/bindings/go"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newZig() *Plugin {
	return &Plugin{
		ID:         "zig",
		Extensions: []string{".zig"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(zig.Language()),
		nodes: map[string]extract.ElementKind{
			"function_declaration": extract.KindFunction,
			"variable_declaration": extract.KindVariable,
			"test_declaration":     extract.KindFunction,
		},
		containers: set("block"),
		keywords:   baseKeywords("switch", "orelse", "and", "or"),
	}
}
