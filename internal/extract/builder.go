package extract

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// NewElementAt returns an element of the given kind carrying only the node's
// position span. Plugins use it when name extraction needs grammar-specific
// digging.
func NewElementAt(node *sitter.Node, kind ElementKind) *CodeElement {
	return &CodeElement{
		Kind:      kind,
		StartLine: int(node.StartPosition().Row) + 1,
		EndLine:   int(node.EndPosition().Row) + 1,
		StartCol:  int(node.StartPosition().Column) + 1,
		EndCol:    int(node.EndPosition().Column) + 1,
	}
}

// BuildElement is the generic element constructor shared by the language
// plugins: name from the grammar's name field, signature from the text before
// the body, doc comment from an immediately preceding comment sibling.
// Plugins wrap it when a grammar needs different field names or extra
// modifiers.
func BuildElement(node *sitter.Node, kind ElementKind, src *Source) (*CodeElement, error) {
	return BuildElementNamed(node, kind, src, "name")
}

// BuildElementNamed is BuildElement with an explicit name field.
func BuildElementNamed(node *sitter.Node, kind ElementKind, src *Source, nameField string) (*CodeElement, error) {
	el := &CodeElement{
		Kind:      kind,
		StartLine: int(node.StartPosition().Row) + 1,
		EndLine:   int(node.EndPosition().Row) + 1,
		StartCol:  int(node.StartPosition().Column) + 1,
		EndCol:    int(node.EndPosition().Column) + 1,
	}

	switch kind {
	case KindImport:
		el.Name = strings.TrimSpace(src.ExtractText(node))
	default:
		nameNode := node.ChildByFieldName(nameField)
		if nameNode == nil {
			nameNode = firstIdentifier(node)
		}
		if nameNode != nil {
			el.Name = src.ExtractText(nameNode)
		}
	}
	if el.Name == "" {
		return nil, fmt.Errorf("no name for %s node %q", kind, node.Kind())
	}

	el.Signature = signature(node, src)
	el.DocComment = docComment(node, src)
	return el, nil
}

// firstIdentifier scans direct children for the first identifier-like node.
func firstIdentifier(node *sitter.Node) *sitter.Node {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "identifier", "type_identifier", "field_identifier", "property_identifier",
			"simple_identifier", "name", "constant", "tag_name", "word":
			return child
		}
	}
	return nil
}

// signature returns the element header: everything from the node start up to
// its body, collapsed onto one line. Nodes without a body field fall back to
// their first source line.
func signature(node *sitter.Node, src *Source) string {
	text := src.ExtractText(node)
	if text == "" {
		return ""
	}
	if body := node.ChildByFieldName("body"); body != nil {
		headLen := int(body.StartByte()) - int(node.StartByte())
		if headLen > 0 && headLen <= len(text) {
			text = text[:headLen]
		}
	} else if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.Join(strings.Fields(text), " ")
}

// docComment returns the text of a comment node immediately preceding the
// element, if any.
func docComment(node *sitter.Node, src *Source) string {
	prev := node.PrevSibling()
	if prev == nil {
		return ""
	}
	if !strings.Contains(prev.Kind(), "comment") {
		return ""
	}
	// Only treat it as documentation when it ends on the line directly
	// above the element.
	if int(prev.EndPosition().Row)+1 < int(node.StartPosition().Row) {
		return ""
	}
	return strings.TrimSpace(src.ExtractText(prev))
}
