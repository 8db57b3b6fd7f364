package lang

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/tree-sitter/go-tree-sitter"
	golang "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

var errNoTypeName = errors.New("type declaration without named spec")

func newGo() *Plugin {
	return &Plugin{
		ID:         "go",
		Extensions: []string{".go"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(golang.Language()),
		nodes: map[string]extract.ElementKind{
			"function_declaration": extract.KindFunction,
			"method_declaration":   extract.KindMethod,
			"type_declaration":     extract.KindType,
			"field_declaration":    extract.KindField,
			"import_declaration":   extract.KindImport,
		},
		containers: set("type_declaration", "struct_type", "field_declaration_list"),
		keywords:   baseKeywords("select", "range"),
		build:      buildGoElement,
		querySrc: map[string]string{
			"functions": `(function_declaration name: (identifier) @function.name) @function`,
			"methods": `(method_declaration
				receiver: (parameter_list) @method.receiver
				name: (field_identifier) @method.name) @method`,
			"types":   `(type_declaration (type_spec name: (type_identifier) @type.name)) @type`,
			"imports": `(import_declaration) @import`,
		},
	}
}

// buildGoElement adds Go's name-case visibility rule on top of the generic
// constructor.
func buildGoElement(node *sitter.Node, kind extract.ElementKind, src *extract.Source) (*extract.CodeElement, error) {
	var el *extract.CodeElement
	var err error
	if kind == extract.KindType {
		// The name lives on the inner type_spec, not the declaration.
		el = extract.NewElementAt(node, kind)
		for i := uint(0); i < node.ChildCount(); i++ {
			spec := node.Child(i)
			if spec == nil || spec.Kind() != "type_spec" {
				continue
			}
			if name := spec.ChildByFieldName("name"); name != nil {
				el.Name = src.ExtractText(name)
			}
			break
		}
		if el.Name == "" {
			return nil, errNoTypeName
		}
		sig := src.ExtractText(node)
		if i := strings.IndexByte(sig, '\n'); i >= 0 {
			sig = sig[:i]
		}
		el.Signature = strings.Join(strings.Fields(sig), " ")
	} else {
		el, err = extract.BuildElement(node, kind, src)
		if err != nil {
			return nil, err
		}
	}
	if kind != extract.KindImport && el.Name != "" {
		r, _ := utf8.DecodeRuneInString(el.Name)
		if unicode.IsUpper(r) {
			el.Visibility = "public"
		} else {
			el.Visibility = "private"
		}
	}
	return el, nil
}
