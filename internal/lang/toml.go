package lang

import (
	toml "github.com/tree-sitter-grammars/tree-sitter-toml/bindings/go"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newTOML() *Plugin {
	return &Plugin{
		ID:         "toml",
		Extensions: []string{".toml"},
		Flavor:     Markup,
		language:   sitter.NewLanguage(toml.Language()),
		nodes: map[string]extract.ElementKind{
			"table":       extract.KindMapping,
			"table_array": extract.KindMapping,
		},
		build: func(node *sitter.Node, kind extract.ElementKind, src *extract.Source) (*extract.CodeElement, error) {
			el := extract.NewElementAt(node, kind)
			// The table header key is the first named child after '['.
			for i := uint(0); i < node.ChildCount(); i++ {
				child := node.Child(i)
				if child == nil {
					continue
				}
				switch child.Kind() {
				case "bare_key", "dotted_key", "quoted_key":
					el.Name = src.ExtractText(child)
				}
				if el.Name != "" {
					break
				}
			}
			if el.Name == "" {
				return nil, errUnnamed
			}
			return el, nil
		},
	}
}
