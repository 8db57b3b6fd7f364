package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newPHP() *Plugin {
	return &Plugin{
		ID:         "php",
		Extensions: []string{".php", ".phtml"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(php.LanguagePHP()),
		nodes: map[string]extract.ElementKind{
			"function_definition":       extract.KindFunction,
			"method_declaration":        extract.KindMethod,
			"class_declaration":         extract.KindClass,
			"interface_declaration":     extract.KindInterface,
			"trait_declaration":         extract.KindClass,
			"enum_declaration":          extract.KindEnum,
			"namespace_definition":      extract.KindModule,
			"namespace_use_declaration": extract.KindImport,
		},
		containers: set("class_declaration", "declaration_list", "namespace_definition"),
		keywords:   baseKeywords("elseif", "switch", "do", "??"),
		querySrc: map[string]string{
			"functions": `(function_definition name: (name) @function.name) @function`,
			"classes":   `(class_declaration name: (name) @class.name) @class`,
		},
	}
}
