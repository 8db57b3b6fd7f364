// Package lang holds the language plugins: per-grammar node-type tables,
// decision keywords, container sets and compiled queries, all built on one of
// the two traversal strategies in internal/extract.
package lang

import (
	"errors"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/treescope/internal/extract"
)

// errUnnamed is returned by build overrides when a node carries no
// usable name; the extractors surface it as a warning and move on.
var errUnnamed = errors.New("element without a name")

// Flavor selects the traversal strategy a plugin uses.
type Flavor int

const (
	// Programming languages have deep, typed nesting and get the
	// iterative depth-guarded walker plus complexity computation.
	Programming Flavor = iota
	// Markup languages are shallow and get the simple recursive walker
	// with position-tuple dedup.
	Markup
)

// Plugin is one registered language: grammar, extension mappings and the
// extraction tables fixed at registration time.
type Plugin struct {
	ID         string
	Extensions []string
	Flavor     Flavor

	language   *sitter.Language
	nodes      map[string]extract.ElementKind
	containers map[string]struct{}
	keywords   map[string]struct{}
	querySrc   map[string]string

	// build overrides the generic element constructor when a grammar
	// needs different name fields or extra metadata.
	build extract.BuildFunc

	compileOnce sync.Once
	compiled    map[string]*sitter.Query
}

// Language returns the tree-sitter grammar.
func (p *Plugin) Language() *sitter.Language { return p.language }

// Nodes returns the node-type to element-kind table.
func (p *Plugin) Nodes() map[string]extract.ElementKind { return p.nodes }

// DecisionKeywords returns the token set counted for cyclomatic complexity.
func (p *Plugin) DecisionKeywords() map[string]struct{} { return p.keywords }

// Containers returns the node types that may hold nested declarations.
func (p *Plugin) Containers() map[string]struct{} { return p.containers }

// Build constructs a CodeElement for a matched node, using the plugin's
// override when one is registered.
func (p *Plugin) Build(node *sitter.Node, kind extract.ElementKind, src *extract.Source) (*extract.CodeElement, error) {
	if p.build != nil {
		return p.build(node, kind, src)
	}
	return extract.BuildElement(node, kind, src)
}

// Strategy returns a traversal strategy configured for this plugin.
func (p *Plugin) Strategy(maxDepth int, withComplexity bool) extract.Strategy {
	if p.Flavor == Markup {
		return &extract.SimpleRecursive{}
	}
	return &extract.IterativeDepthGuarded{
		MaxDepth:          maxDepth,
		Containers:        p.containers,
		Keywords:          p.keywords,
		ComputeComplexity: withComplexity,
	}
}

// CompiledQuery returns the compiled tree-sitter query for key, or nil when
// the plugin ships no query for it. Queries compile lazily, once, on first
// use; a query the grammar rejects stays nil and the caller falls back to
// generic traversal.
func (p *Plugin) CompiledQuery(key string) *sitter.Query {
	p.compileOnce.Do(func() {
		p.compiled = make(map[string]*sitter.Query, len(p.querySrc))
		for k, src := range p.querySrc {
			q, _ := sitter.NewQuery(p.language, src)
			if q != nil {
				p.compiled[k] = q
			}
		}
	})
	return p.compiled[key]
}

// QueryKeys returns the query names this plugin ships.
func (p *Plugin) QueryKeys() []string {
	keys := make([]string, 0, len(p.querySrc))
	for k := range p.querySrc {
		keys = append(keys, k)
	}
	return keys
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

// baseKeywords is the shared decision-keyword set; plugins extend or replace
// it for language-specific tokens.
func baseKeywords(extra ...string) map[string]struct{} {
	m := set("if", "for", "while", "case", "catch", "&&", "||", "?")
	for _, e := range extra {
		m[e] = struct{}{}
	}
	return m
}
