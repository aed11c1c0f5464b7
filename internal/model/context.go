// Package model defines the data structures shared by the enclose packages.
package model

// NodeKind is the closed set of syntax node variants the locator understands.
type NodeKind int

const (
	// OtherNode is any node that is not a named block. It is still walked.
	OtherNode NodeKind = iota
	// FunctionBlock is a function or method definition.
	FunctionBlock
	// ClassBlock is a class definition (or a struct/interface type in Go).
	ClassBlock
)

// String returns the wire name of the kind.
func (k NodeKind) String() string {
	switch k {
	case FunctionBlock:
		return "FunctionDef"
	case ClassBlock:
		return "ClassDef"
	default:
		return "Other"
	}
}

// SyntaxNode is a language-neutral parse tree node. Lines are 1-indexed and
// inclusive. EndLine == 0 means the parser could not resolve an end line.
type SyntaxNode struct {
	Kind      NodeKind
	Name      *string
	StartLine int
	EndLine   int
	Children  []*SyntaxNode
}

// Span is the ranking size of a node: EndLine - StartLine.
func (n *SyntaxNode) Span() int {
	return n.EndLine - n.StartLine
}

// Contains reports whether the node's lines include the whole range.
func (n *SyntaxNode) Contains(r LineRange) bool {
	if n.EndLine == 0 {
		return false
	}

	return n.StartLine <= r.Start && r.End <= n.EndLine
}

// SyntaxError carries a parser diagnostic. It is a value, not a Go error.
type SyntaxError struct {
	Message string
}

// LineRange is the caller's region of interest, 1-indexed and inclusive.
type LineRange struct {
	Start int
	End   int
}

// ContextResult is either a located block or an error message, never both.
type ContextResult struct {
	Kind      string
	Name      *string
	StartLine int
	EndLine   int
	Error     string
}

type contextWire struct {
	Kind      string  `json:"type" yaml:"type"`
	Name      *string `json:"name" yaml:"name"`
	StartLine int     `json:"start_line" yaml:"start_line"`
	EndLine   int     `json:"end_line" yaml:"end_line"`
}

type errorWire struct {
	Error string `json:"error" yaml:"error"`
}

func (r ContextResult) wire() any {
	if r.Failed() {
		return errorWire{Error: r.Error}
	}

	return contextWire{Kind: r.Kind, Name: r.Name, StartLine: r.StartLine, EndLine: r.EndLine}
}

// MarshalJSON emits {"error": ...} for failures and the block shape otherwise.
func (r ContextResult) MarshalJSON() ([]byte, error) {
	return marshalJSON(r.wire())
}

// MarshalYAML mirrors MarshalJSON for yaml.v3.
func (r ContextResult) MarshalYAML() (any, error) {
	return r.wire(), nil
}

// Failed reports whether the result carries an error message.
func (r ContextResult) Failed() bool {
	return r.Error != ""
}

// ContextFromNode builds the success shape for a selected node.
func ContextFromNode(n *SyntaxNode) ContextResult {
	return ContextResult{
		Kind:      n.Kind.String(),
		Name:      n.Name,
		StartLine: n.StartLine,
		EndLine:   n.EndLine,
	}
}

// ContextError builds the failure shape.
func ContextError(message string) ContextResult {
	return ContextResult{Error: message}
}

// CheckResult is the outcome of a dry-run parse.
type CheckResult struct {
	Valid bool   `json:"valid" yaml:"valid"`
	Error string `json:"error" yaml:"error"`
}
