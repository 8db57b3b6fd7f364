package lang

import (
	lua "github.com/tree-sitter-grammars/tree-sitter-lua/bindings/go"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newLua() *Plugin {
	return &Plugin{
		ID:         "lua",
		Extensions: []string{".lua"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(lua.Language()),
		nodes: map[string]extract.ElementKind{
			"function_declaration": extract.KindFunction,
			"variable_declaration": extract.KindVariable,
		},
		containers: set("block"),
		keywords:   baseKeywords("elseif", "repeat", "until", "and", "or"),
	}
}
