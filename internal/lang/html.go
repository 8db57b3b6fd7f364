package lang

import (
	"errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
	html "github.com/tree-sitter/tree-sitter-html/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

var errNoTagName = errors.New("element without tag name")

func newHTML() *Plugin {
	return &Plugin{
		ID:         "html",
		Extensions: []string{".html", ".htm"},
		Flavor:     Markup,
		language:   sitter.NewLanguage(html.Language()),
		nodes: map[string]extract.ElementKind{
			"element":        extract.KindMarkupNode,
			"script_element": extract.KindMarkupNode,
			"style_element":  extract.KindMarkupNode,
		},
		build: buildHTMLElement,
	}
}

// buildHTMLElement names the element after its tag and promotes h1-h6 to
// heading elements.
func buildHTMLElement(node *sitter.Node, kind extract.ElementKind, src *extract.Source) (*extract.CodeElement, error) {
	el := extract.NewElementAt(node, kind)
	if start := node.Child(0); start != nil && start.Kind() == "start_tag" {
		for i := uint(0); i < start.ChildCount(); i++ {
			child := start.Child(i)
			if child != nil && child.Kind() == "tag_name" {
				el.Name = src.ExtractText(child)
				break
			}
		}
	}
	if el.Name == "" {
		return nil, errNoTagName
	}
	switch el.Name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		el.Kind = extract.KindHeading
	}
	return el, nil
}
