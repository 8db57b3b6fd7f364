package extract

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// SimpleRecursive is the traversal strategy for flat markup structures
// (headings, CSS rules, YAML mappings). Markup trees are shallow by
// construction, so a plain recursive walk suffices; deduplication is keyed
// by (start_byte, end_byte) position tuples because markup grammars may
// re-synthesize node objects for equivalent spans between walks.
type SimpleRecursive struct{}

// Extract walks the tree rooted at root and returns every element whose node
// type appears in table. No complexity is computed for markup elements.
func (st *SimpleRecursive) Extract(root *sitter.Node, table map[string]ElementKind, src *Source, build BuildFunc) ([]CodeElement, []string) {
	var elements []CodeElement
	var warnings []string
	st.walk(root, table, src, build, &elements, &warnings)
	return elements, warnings
}

func (st *SimpleRecursive) walk(node *sitter.Node, table map[string]ElementKind, src *Source, build BuildFunc, elements *[]CodeElement, warnings *[]string) {
	if node == nil {
		return
	}
	if kind, ok := table[node.Kind()]; ok {
		if !src.markPosition(node.StartByte(), node.EndByte()) {
			el, err := build(node, kind, src)
			if err != nil {
				*warnings = append(*warnings, fmt.Sprintf("skipped %s at line %d: %v", kind, int(node.StartPosition().Row)+1, err))
			} else if el != nil {
				*elements = append(*elements, *el)
			}
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		st.walk(node.Child(i), table, src, build, elements, warnings)
	}
}
