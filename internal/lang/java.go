package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newJava() *Plugin {
	return &Plugin{
		ID:         "java",
		Extensions: []string{".java"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(java.Language()),
		nodes: map[string]extract.ElementKind{
			"method_declaration":      extract.KindMethod,
			"constructor_declaration": extract.KindMethod,
			"class_declaration":       extract.KindClass,
			"interface_declaration":   extract.KindInterface,
			"enum_declaration":        extract.KindEnum,
			"field_declaration":       extract.KindField,
			"import_declaration":      extract.KindImport,
		},
		containers: set("class_declaration", "class_body", "interface_body", "enum_body"),
		keywords:   baseKeywords(),
		build:      buildJavaElement,
		querySrc: map[string]string{
			"methods": `[
				(method_declaration name: (identifier) @method.name)
				(constructor_declaration name: (identifier) @method.name)
			] @method`,
			"classes": `(class_declaration name: (identifier) @class.name) @class`,
			"imports": `(import_declaration) @import`,
		},
	}
}

// buildJavaElement lifts the modifiers child (public, static, final, ...)
// into the element's modifier list and visibility.
func buildJavaElement(node *sitter.Node, kind extract.ElementKind, src *extract.Source) (*extract.CodeElement, error) {
	if kind == extract.KindField {
		return buildJavaField(node, src)
	}
	el, err := extract.BuildElement(node, kind, src)
	if err != nil {
		return nil, err
	}
	applyJavaModifiers(el, node, src)
	return el, nil
}

// buildJavaField digs the name out of the variable_declarator child.
func buildJavaField(node *sitter.Node, src *extract.Source) (*extract.CodeElement, error) {
	el := extract.NewElementAt(node, extract.KindField)
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}
		if name := child.ChildByFieldName("name"); name != nil {
			el.Name = src.ExtractText(name)
		}
		break
	}
	if el.Name == "" {
		return nil, errUnnamed
	}
	applyJavaModifiers(el, node, src)
	return el, nil
}

func applyJavaModifiers(el *extract.CodeElement, node *sitter.Node, src *extract.Source) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "modifiers" {
			continue
		}
		for j := uint(0); j < child.ChildCount(); j++ {
			mod := child.Child(j)
			if mod == nil {
				continue
			}
			text := src.ExtractText(mod)
			switch text {
			case "public", "private", "protected":
				el.Visibility = text
			case "":
			default:
				el.Modifiers = append(el.Modifiers, text)
			}
		}
		break
	}
	if el.Visibility == "" {
		el.Visibility = "package"
	}
}
