package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newPython() *Plugin {
	return &Plugin{
		ID:         "python",
		Extensions: []string{".py", ".pyw"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(python.Language()),
		nodes: map[string]extract.ElementKind{
			"function_definition":   extract.KindFunction,
			"class_definition":      extract.KindClass,
			"import_statement":      extract.KindImport,
			"import_from_statement": extract.KindImport,
		},
		containers: set("class_definition", "decorated_definition", "block"),
		keywords:   baseKeywords("elif", "except", "and", "or"),
		querySrc: map[string]string{
			"functions": `(function_definition name: (identifier) @function.name) @function`,
			"classes":   `(class_definition name: (identifier) @class.name) @class`,
			"imports":   `[(import_statement) (import_from_statement)] @import`,
		},
	}
}
