package extract

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// DefaultMaxDepth bounds tree traversal for programming-language extraction.
// Nodes nested deeper are skipped silently rather than crashing the walker on
// adversarial input.
const DefaultMaxDepth = 100

// BuildFunc constructs a CodeElement from a matched node. Returning an error
// skips that element only; extraction continues with the rest of the tree.
type BuildFunc func(node *sitter.Node, kind ElementKind, src *Source) (*CodeElement, error)

// IterativeDepthGuarded is the traversal strategy for nested, block-scoped
// languages. It walks the tree with an explicit stack of (node, depth) pairs
// instead of recursing, deduplicates by node identity, and caches built
// elements per (node, kind).
type IterativeDepthGuarded struct {
	// MaxDepth limits traversal depth; zero means DefaultMaxDepth.
	MaxDepth int

	// Containers lists node types that may hold nested declarations.
	// Traversal descends through containers and function-like nodes but
	// prunes below atomic declarations (imports, fields, variables).
	Containers map[string]struct{}

	// Keywords is the decision-keyword set used for cyclomatic complexity.
	Keywords map[string]struct{}

	// ComputeComplexity enables complexity computation for function-like
	// elements.
	ComputeComplexity bool
}

type stackItem struct {
	node  *sitter.Node
	depth int

	// inType marks nodes inside a class-like declaration, so that a
	// plain function definition there is reported as a method.
	inType bool
}

// Extract walks the tree rooted at root and returns every element whose node
// type appears in table, in traversal order. Function definitions nested in
// a class, struct, interface or enum body come back as methods. Warnings
// describe elements that failed to build and were skipped.
func (st *IterativeDepthGuarded) Extract(root *sitter.Node, table map[string]ElementKind, src *Source, build BuildFunc) ([]CodeElement, []string) {
	if root == nil {
		return nil, nil
	}
	maxDepth := st.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var elements []CodeElement
	var warnings []string

	stack := make([]stackItem, 0, 64)
	stack = append(stack, stackItem{node: root})

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := item.node

		kind, matched := table[node.Kind()]
		if matched && kind == KindFunction && item.inType {
			kind = KindMethod
		}
		if matched {
			if el, err := st.buildOnce(node, kind, src, build); err != nil {
				warnings = append(warnings, fmt.Sprintf("skipped %s at line %d: %v", kind, int(node.StartPosition().Row)+1, err))
			} else if el != nil {
				elements = append(elements, *el)
			}
		}

		if item.depth+1 > maxDepth {
			// Beyond the depth limit children are skipped, not an error.
			continue
		}
		if matched && st.isAtomic(node.Kind(), kind) {
			continue
		}
		childInType := item.inType
		if matched {
			switch kind {
			case KindClass, KindStruct, KindInterface, KindEnum:
				childInType = true
			case KindFunction, KindMethod:
				// Functions open a new scope; a def nested inside a
				// method body is a local function, not a method.
				childInType = false
			}
		}
		// Push children in reverse so traversal order matches source order.
		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			child := node.Child(uint(i))
			if child == nil {
				continue
			}
			stack = append(stack, stackItem{node: child, depth: item.depth + 1, inType: childInType})
		}
	}

	return elements, warnings
}

// buildOnce builds the element for (node, kind) unless the node was already
// processed, consulting the element cache first.
func (st *IterativeDepthGuarded) buildOnce(node *sitter.Node, kind ElementKind, src *Source, build BuildFunc) (*CodeElement, error) {
	id := node.Id()
	if src.markProcessed(id) {
		return nil, nil
	}
	if el, ok := src.cachedElement(id, kind); ok {
		return el, nil
	}
	el, err := build(node, kind, src)
	if err != nil {
		return nil, err
	}
	if el == nil {
		return nil, nil
	}
	if st.ComputeComplexity && (kind == KindFunction || kind == KindMethod) {
		el.Complexity = Complexity(node, src, st.Keywords, st.maxDepth())
	}
	src.storeElement(id, kind, el)
	return el, nil
}

// isAtomic reports whether traversal should stop below a matched node.
// Containers and function-like nodes may hold nested declarations; imports,
// fields and variables never do.
func (st *IterativeDepthGuarded) isAtomic(nodeType string, kind ElementKind) bool {
	if _, ok := st.Containers[nodeType]; ok {
		return false
	}
	switch kind {
	case KindImport, KindField, KindVariable, KindConstant:
		return true
	}
	return false
}

func (st *IterativeDepthGuarded) maxDepth() int {
	if st.MaxDepth > 0 {
		return st.MaxDepth
	}
	return DefaultMaxDepth
}

// Complexity computes cyclomatic complexity for the subtree rooted at node:
// 1 plus one increment per leaf token whose text is in the decision-keyword
// set. The walk is iterative and depth-guarded like element traversal.
func Complexity(node *sitter.Node, src *Source, keywords map[string]struct{}, maxDepth int) int {
	complexity := 1
	if node == nil || len(keywords) == 0 {
		return complexity
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	text := src.Text()
	stack := make([]stackItem, 0, 64)
	stack = append(stack, stackItem{node: node})
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := item.node

		if n.ChildCount() == 0 {
			start, end := n.StartByte(), n.EndByte()
			if start < end && int(end) <= len(text) {
				if _, ok := keywords[string(text[start:end])]; ok {
					complexity++
				}
			}
			continue
		}
		if item.depth+1 > maxDepth {
			continue
		}
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			child := n.Child(uint(i))
			if child == nil {
				continue
			}
			stack = append(stack, stackItem{node: child, depth: item.depth + 1})
		}
	}
	return complexity
}
