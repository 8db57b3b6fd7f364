package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newJavaScript() *Plugin {
	return &Plugin{
		ID:         "javascript",
		Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(javascript.Language()),
		nodes: map[string]extract.ElementKind{
			"function_declaration":           extract.KindFunction,
			"generator_function_declaration": extract.KindFunction,
			"method_definition":              extract.KindMethod,
			"class_declaration":              extract.KindClass,
			"import_statement":               extract.KindImport,
		},
		containers: set("class_declaration", "class_body"),
		keywords:   baseKeywords("??"),
		querySrc: map[string]string{
			"functions": `[
				(function_declaration name: (identifier) @function.name)
				(generator_function_declaration name: (identifier) @function.name)
			] @function`,
			"classes": `(class_declaration name: (identifier) @class.name) @class`,
			"imports": `(import_statement source: (string) @import.source) @import`,
		},
	}
}
