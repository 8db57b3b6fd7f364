package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newBash() *Plugin {
	return &Plugin{
		ID:         "bash",
		Extensions: []string{".sh", ".bash", ".zsh"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(bash.Language()),
		nodes: map[string]extract.ElementKind{
			"function_definition": extract.KindFunction,
			"variable_assignment": extract.KindVariable,
		},
		containers: set("function_definition", "compound_statement"),
		keywords:   baseKeywords("elif", "until"),
		querySrc: map[string]string{
			"functions": `(function_definition name: (word) @function.name) @function`,
		},
	}
}
