package extract

// ElementKind classifies an extracted code element.
type ElementKind string

const (
	KindFunction   ElementKind = "function"
	KindMethod     ElementKind = "method"
	KindClass      ElementKind = "class"
	KindInterface  ElementKind = "interface"
	KindStruct     ElementKind = "struct"
	KindEnum       ElementKind = "enum"
	KindField      ElementKind = "field"
	KindVariable   ElementKind = "variable"
	KindConstant   ElementKind = "constant"
	KindImport     ElementKind = "import"
	KindType       ElementKind = "type"
	KindModule     ElementKind = "module"
	KindMarkupNode ElementKind = "markup_node"
	KindHeading    ElementKind = "heading"
	KindRule       ElementKind = "rule"
	KindMapping    ElementKind = "mapping"
)

// CodeElement is a structural element extracted from a parsed source file.
// Line and column ranges are 1-based and inclusive; EndLine >= StartLine.
type CodeElement struct {
	Kind       ElementKind `json:"kind"`
	Name       string      `json:"name"`
	Signature  string      `json:"signature,omitempty"`
	StartLine  int         `json:"start_line"`
	EndLine    int         `json:"end_line"`
	StartCol   int         `json:"start_col"`
	EndCol     int         `json:"end_col"`
	Visibility string      `json:"visibility,omitempty"`
	Modifiers  []string    `json:"modifiers,omitempty"`

	// Complexity is cyclomatic complexity for function-like elements.
	// Zero means not computed (markup elements, complexity disabled).
	Complexity int `json:"complexity,omitempty"`

	DocComment string `json:"doc_comment,omitempty"`
}
