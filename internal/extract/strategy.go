package extract

import sitter "github.com/tree-sitter/go-tree-sitter"

// Strategy turns a parsed tree into elements using a node-type table. The
// two implementations are IterativeDepthGuarded for programming languages
// and SimpleRecursive for markup.
type Strategy interface {
	Extract(root *sitter.Node, table map[string]ElementKind, src *Source, build BuildFunc) ([]CodeElement, []string)
}
