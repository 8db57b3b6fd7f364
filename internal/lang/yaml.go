package lang

import (
	yaml "github.com/tree-sitter-grammars/tree-sitter-yaml/bindings/go"
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newYAML() *Plugin {
	return &Plugin{
		ID:         "yaml",
		Extensions: []string{".yaml", ".yml"},
		Flavor:     Markup,
		language:   sitter.NewLanguage(yaml.Language()),
		nodes: map[string]extract.ElementKind{
			"block_mapping_pair": extract.KindMapping,
		},
		build: func(node *sitter.Node, kind extract.ElementKind, src *extract.Source) (*extract.CodeElement, error) {
			return extract.BuildElementNamed(node, kind, src, "key")
		},
	}
}
