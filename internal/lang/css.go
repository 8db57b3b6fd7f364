package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	css "github.com/tree-sitter/tree-sitter-css/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newCSS() *Plugin {
	return &Plugin{
		ID:         "css",
		Extensions: []string{".css", ".scss", ".less"},
		Flavor:     Markup,
		language:   sitter.NewLanguage(css.Language()),
		nodes: map[string]extract.ElementKind{
			"rule_set":            extract.KindRule,
			"media_statement":     extract.KindRule,
			"keyframes_statement": extract.KindRule,
			"import_statement":    extract.KindImport,
		},
		build: buildCSSRule,
	}
}

// buildCSSRule names a rule after its selector list.
func buildCSSRule(node *sitter.Node, kind extract.ElementKind, src *extract.Source) (*extract.CodeElement, error) {
	el := extract.NewElementAt(node, kind)
	if kind == extract.KindImport {
		el.Name = collapseSpace(src.ExtractText(node))
		return el, nil
	}
	if sel := node.Child(0); sel != nil {
		el.Name = collapseSpace(src.ExtractText(sel))
	}
	if el.Name == "" {
		return nil, errUnnamed
	}
	return el, nil
}
