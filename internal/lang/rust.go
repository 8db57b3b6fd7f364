package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newRust() *Plugin {
	return &Plugin{
		ID:         "rust",
		Extensions: []string{".rs"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(rust.Language()),
		nodes: map[string]extract.ElementKind{
			"function_item":   extract.KindFunction,
			"struct_item":     extract.KindStruct,
			"enum_item":       extract.KindEnum,
			"trait_item":      extract.KindInterface,
			"mod_item":        extract.KindModule,
			"use_declaration": extract.KindImport,
		},
		containers: set("impl_item", "mod_item", "trait_item", "declaration_list"),
		keywords:   baseKeywords("match", "loop"),
		querySrc: map[string]string{
			"functions": `(function_item name: (identifier) @function.name) @function`,
			"structs":   `(struct_item name: (type_identifier) @struct.name) @struct`,
			"traits":    `(trait_item name: (type_identifier) @trait.name) @trait`,
		},
	}
}
