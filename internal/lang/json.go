package lang

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsjson "github.com/tree-sitter/tree-sitter-json/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newJSON() *Plugin {
	return &Plugin{
		ID:         "json",
		Extensions: []string{".json", ".jsonc"},
		Flavor:     Markup,
		language:   sitter.NewLanguage(tsjson.Language()),
		nodes: map[string]extract.ElementKind{
			"pair": extract.KindMapping,
		},
		build: func(node *sitter.Node, kind extract.ElementKind, src *extract.Source) (*extract.CodeElement, error) {
			el, err := extract.BuildElementNamed(node, kind, src, "key")
			if err != nil {
				return nil, err
			}
			el.Name = strings.Trim(el.Name, `"`)
			return el, nil
		},
	}
}
