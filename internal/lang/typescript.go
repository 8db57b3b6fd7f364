package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

func tsNodes() map[string]extract.ElementKind {
	return map[string]extract.ElementKind{
		"function_declaration":           extract.KindFunction,
		"generator_function_declaration": extract.KindFunction,
		"method_definition":              extract.KindMethod,
		"class_declaration":              extract.KindClass,
		"interface_declaration":          extract.KindInterface,
		"enum_declaration":               extract.KindEnum,
		"type_alias_declaration":         extract.KindType,
		"import_statement":               extract.KindImport,
	}
}

func tsQueries() map[string]string {
	return map[string]string{
		"functions":  `(function_declaration name: (identifier) @function.name) @function`,
		"classes":    `(class_declaration name: (type_identifier) @class.name) @class`,
		"interfaces": `(interface_declaration name: (type_identifier) @interface.name) @interface`,
		"imports":    `(import_statement source: (string) @import.source) @import`,
	}
}

func newTypeScript() *Plugin {
	return &Plugin{
		ID:         "typescript",
		Extensions: []string{".ts", ".mts"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(typescript.LanguageTypescript()),
		nodes:      tsNodes(),
		containers: set("class_declaration", "class_body", "namespace_declaration"),
		keywords:   baseKeywords("??"),
		querySrc:   tsQueries(),
	}
}

// TSX is a separate grammar in the typescript module; element tables are
// shared with plain TypeScript.
func newTSX() *Plugin {
	return &Plugin{
		ID:         "tsx",
		Extensions: []string{".tsx"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(typescript.LanguageTSX()),
		nodes:      tsNodes(),
		containers: set("class_declaration", "class_body", "namespace_declaration"),
		keywords:   baseKeywords("??"),
		querySrc:   tsQueries(),
	}
}
