package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newCpp() *Plugin {
	return &Plugin{
		ID:         "cpp",
		Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hxx"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(cpp.Language()),
		nodes: map[string]extract.ElementKind{
			"function_definition":  extract.KindFunction,
			"class_specifier":      extract.KindClass,
			"struct_specifier":     extract.KindStruct,
			"enum_specifier":       extract.KindEnum,
			"namespace_definition": extract.KindModule,
			"preproc_include":      extract.KindImport,
		},
		containers: set("class_specifier", "struct_specifier", "namespace_definition", "field_declaration_list", "declaration_list"),
		keywords:   baseKeywords("switch", "do"),
		build:      buildCElement,
		querySrc: map[string]string{
			"functions": `(function_definition declarator: (function_declarator declarator: (identifier) @function.name)) @function`,
			"classes":   `(class_specifier name: (type_identifier) @class.name) @class`,
		},
	}
}
