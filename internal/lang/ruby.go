package lang

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"

	"github.com/mvp-joe/treescope/internal/extract"
)

func newRuby() *Plugin {
	return &Plugin{
		ID:         "ruby",
		Extensions: []string{".rb", ".rake"},
		Flavor:     Programming,
		language:   sitter.NewLanguage(ruby.Language()),
		nodes: map[string]extract.ElementKind{
			"method":           extract.KindMethod,
			"singleton_method": extract.KindMethod,
			"class":            extract.KindClass,
			"module":           extract.KindModule,
		},
		containers: set("class", "module", "body_statement"),
		keywords:   baseKeywords("elsif", "unless", "until", "when", "rescue", "and", "or"),
		querySrc: map[string]string{
			"methods": `(method name: (identifier) @method.name) @method`,
			"classes": `(class name: (constant) @class.name) @class`,
		},
	}
}
