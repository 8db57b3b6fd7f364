// Package query executes named queries against parsed trees, preferring a
// plugin's compiled tree-sitter query and falling back to a generic
// keyword-matching traversal when none exists.
package query

import (
	"context"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/treescope/internal/extract"
	"github.com/mvp-joe/treescope/internal/lang"
	"github.com/mvp-joe/treescope/internal/parser"
)

// Result is one query capture, optionally with the element derived from it.
type Result struct {
	Query   string               `json:"query"`
	Capture string               `json:"capture"`
	Node    *sitter.Node         `json:"-"`
	Element *extract.CodeElement `json:"element,omitempty"`
}

// Service runs queries. It holds no per-request state.
type Service struct {
	maxDepth int
}

// New returns a Service whose fallback traversal uses the given depth limit
// (extract.DefaultMaxDepth when zero).
func New(maxDepth int) *Service {
	if maxDepth <= 0 {
		maxDepth = extract.DefaultMaxDepth
	}
	return &Service{maxDepth: maxDepth}
}

// Execute runs the named query against the tree. With a compiled query the
// plugin's converter shapes captures into elements; otherwise the generic
// traversal produces best-effort captures. Unsupported languages and unknown
// keys yield an empty result, never an error.
func (s *Service) Execute(ctx context.Context, tree *parser.Tree, pl *lang.Plugin, key string, src *extract.Source) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if pl != nil {
		if q := pl.CompiledQuery(key); q != nil {
			return s.runCompiled(tree, pl, q, key, src), nil
		}
	}
	return s.genericTraversal(tree.Root(), pl, key, src), nil
}

func (s *Service) runCompiled(tree *parser.Tree, pl *lang.Plugin, q *sitter.Query, key string, src *extract.Source) []Result {
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	names := q.CaptureNames()
	matches := cursor.Matches(q, tree.Root(), src.Text())

	var results []Result
	for {
		m := matches.Next()
		if m == nil {
			break
		}
		for _, c := range m.Captures {
			name := names[c.Index]
			// Sub-captures like function.name qualify the main capture
			// and are not results themselves.
			if strings.Contains(name, ".") {
				continue
			}
			node := c.Node
			res := Result{Query: key, Capture: name, Node: &node}
			if kind, ok := kindForCapture(name); ok {
				if el, err := pl.Build(&node, kind, src); err == nil {
					res.Element = el
				}
			}
			results = append(results, res)
		}
	}
	return results
}

// genericTraversal walks the whole tree matching node types against the
// requested key, singular/plural tolerant ("functions" finds
// function_definition, "header" finds heading). Iterative and depth-guarded
// like programming-language extraction.
func (s *Service) genericTraversal(root *sitter.Node, pl *lang.Plugin, key string, src *extract.Source) []Result {
	if root == nil {
		return nil
	}
	needle := singular(strings.ToLower(key))
	if needle == "" {
		return nil
	}

	type item struct {
		node  *sitter.Node
		depth int
	}
	var results []Result
	stack := []item{{root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := it.node

		if matchesKey(node.Kind(), needle) {
			res := Result{Query: key, Capture: node.Kind(), Node: node}
			if el, err := buildFallback(node, pl, src); err == nil {
				res.Element = el
			}
			results = append(results, res)
		}
		if it.depth+1 > s.maxDepth {
			continue
		}
		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			if child := node.Child(uint(i)); child != nil {
				stack = append(stack, item{child, it.depth + 1})
			}
		}
	}
	return results
}

func buildFallback(node *sitter.Node, pl *lang.Plugin, src *extract.Source) (*extract.CodeElement, error) {
	kind := extract.KindMarkupNode
	if k, ok := kindForCapture(node.Kind()); ok {
		kind = k
	}
	if pl != nil {
		return pl.Build(node, kind, src)
	}
	return extract.BuildElement(node, kind, src)
}

// singular strips a plural suffix: "classes" -> "class", "functions" ->
// "function".
func singular(key string) string {
	switch {
	case strings.HasSuffix(key, "sses"), strings.HasSuffix(key, "ches"), strings.HasSuffix(key, "shes"), strings.HasSuffix(key, "xes"):
		return key[:len(key)-2]
	case strings.HasSuffix(key, "s") && !strings.HasSuffix(key, "ss"):
		return key[:len(key)-1]
	}
	return key
}

// matchesKey is deliberately heuristic: a node type matches when it contains
// the singular key, or shares its stem (all but the final two characters) so
// close variants like "header"/"heading" still line up.
func matchesKey(nodeType, needle string) bool {
	if strings.Contains(nodeType, needle) {
		return true
	}
	if len(needle) >= 5 && strings.Contains(nodeType, needle[:len(needle)-2]) {
		return true
	}
	return false
}

// kindForCapture maps a capture or node-type name onto an element kind.
func kindForCapture(name string) (extract.ElementKind, bool) {
	switch {
	case strings.Contains(name, "function"):
		return extract.KindFunction, true
	case strings.Contains(name, "method"):
		return extract.KindMethod, true
	case strings.Contains(name, "class"):
		return extract.KindClass, true
	case strings.Contains(name, "interface"), strings.Contains(name, "trait"):
		return extract.KindInterface, true
	case strings.Contains(name, "struct"):
		return extract.KindStruct, true
	case strings.Contains(name, "enum"):
		return extract.KindEnum, true
	case strings.Contains(name, "field"), strings.Contains(name, "property"):
		return extract.KindField, true
	case strings.Contains(name, "import"), strings.Contains(name, "include"), strings.Contains(name, "use"):
		return extract.KindImport, true
	case strings.Contains(name, "variable"), strings.Contains(name, "assignment"):
		return extract.KindVariable, true
	case strings.Contains(name, "module"), strings.Contains(name, "namespace"):
		return extract.KindModule, true
	case strings.Contains(name, "type"):
		return extract.KindType, true
	case strings.Contains(name, "heading"), strings.Contains(name, "header"):
		return extract.KindHeading, true
	case strings.Contains(name, "rule"):
		return extract.KindRule, true
	default:
		return "", false
	}
}
