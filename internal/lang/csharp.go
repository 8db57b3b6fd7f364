package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newCSharp() *Plugin {
	return &Plugin{
		ID:         "csharp",
		Extensions: []string{".cs"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(csharp.Language()),
		nodes: map[string]extract.ElementKind{
			"method_declaration":    extract.KindMethod,
			"class_declaration":     extract.KindClass,
			"interface_declaration": extract.KindInterface,
			"struct_declaration":    extract.KindStruct,
			"enum_declaration":      extract.KindEnum,
			"property_declaration":  extract.KindField,
			"field_declaration":     extract.KindField,
			"using_directive":       extract.KindImport,
			"namespace_declaration": extract.KindModule,
		},
		containers: set("class_declaration", "declaration_list", "namespace_declaration", "interface_declaration"),
		keywords:   baseKeywords("switch", "do", "??"),
		querySrc: map[string]string{
			"methods": `(method_declaration name: (identifier) @method.name) @method`,
			"classes": `(class_declaration name: (identifier) @class.name) @class`,
		},
	}
}
