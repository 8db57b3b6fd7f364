package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tsc "github.com/tree-sitter/tree-sitter-c/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newC() *Plugin {
	return &Plugin{
		ID:         "c",
		Extensions: []string{".c", ".h"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(tsc.Language()),
		nodes: map[string]extract.ElementKind{
			"function_definition": extract.KindFunction,
			"struct_specifier":    extract.KindStruct,
			"enum_specifier":      extract.KindEnum,
			"type_definition":     extract.KindType,
			"preproc_include":     extract.KindImport,
		},
		containers: set("struct_specifier", "field_declaration_list"),
		keywords:   baseKeywords("switch", "do"),
		build:      buildCElement,
		querySrc: map[string]string{
			"functions": `(function_definition declarator: (function_declarator declarator: (identifier) @function.name)) @function`,
			"structs":   `(struct_specifier name: (type_identifier) @struct.name) @struct`,
		},
	}
}

// buildCElement resolves function names through the declarator chain; C
// function_definition nodes have no direct name field.
func buildCElement(node *sitter.Node, kind extract.ElementKind, src *extract.Source) (*extract.CodeElement, error) {
	if kind != extract.KindFunction {
		return extract.BuildElement(node, kind, src)
	}
	el := extract.NewElementAt(node, kind)
	decl := node.ChildByFieldName("declarator")
	for decl != nil {
		if inner := decl.ChildByFieldName("declarator"); inner != nil {
			decl = inner
			continue
		}
		break
	}
	if decl != nil && decl.Kind() == "identifier" {
		el.Name = src.ExtractText(decl)
	}
	if el.Name == "" {
		return nil, errUnnamed
	}
	if body := node.ChildByFieldName("body"); body != nil {
		head := int(body.StartByte()) - int(node.StartByte())
		text := src.ExtractText(node)
		if head > 0 && head <= len(text) {
			el.Signature = collapseSpace(text[:head])
		}
	}
	return el, nil
}
