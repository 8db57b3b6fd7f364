package lang

import (
	kotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newKotlin() *Plugin {
	return &Plugin{
		ID:         "kotlin",
		Extensions: []string{".kt", ".kts"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(kotlin.Language()),
		nodes: map[string]extract.ElementKind{
			"function_declaration": extract.KindFunction,
			"class_declaration":    extract.KindClass,
			"object_declaration":   extract.KindClass,
			"property_declaration": extract.KindVariable,
			"import_header":        extract.KindImport,
		},
		containers: set("class_declaration", "class_body", "object_declaration"),
		keywords:   baseKeywords("when", "do", "?:"),
	}
}
