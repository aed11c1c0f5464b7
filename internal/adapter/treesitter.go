package adapter

import (
	"context"
	"fmt"
	"unsafe"

	sitter "github.com/tree-sitter/go-tree-sitter"

	m "enclose.dev/pkg/enclose/internal/model"
)

// TreeSitterAdapter parses a grammar with tree-sitter and maps grammar node
// kinds onto the locator's closed set of block kinds.
type TreeSitterAdapter struct {
	language m.Language
	grammar  func() unsafe.Pointer
	kinds    map[string]m.NodeKind
	// demote lets a grammar reject a node its kind table matched.
	demote func(node *sitter.Node) bool
	// invalid maps node kinds the grammar accepts but the language rejects to
	// the diagnostic reported for them.
	invalid map[string]string
	// checks report constructs that need more than a kind to be rejected.
	checks []invalidCheck
}

// invalidCheck returns a diagnostic when node is valid for the grammar but not
// for the language.
type invalidCheck func(node *sitter.Node) (string, bool)

// commentKind is the comment node kind of the tree-sitter grammars in use.
const commentKind = "comment"

// Language implements SyntaxAdapter.
func (a *TreeSitterAdapter) Language() m.Language {
	return a.language
}

// Parse implements SyntaxAdapter. Each call owns its parser and tree.
func (a *TreeSitterAdapter) Parse(ctx context.Context, filename string, src []byte) (*m.SyntaxNode, *m.SyntaxError, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if len(src) == 0 {
		return &m.SyntaxNode{Kind: m.OtherNode, StartLine: 1, EndLine: 1}, nil, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(sitter.NewLanguage(a.grammar())); err != nil {
		return nil, nil, fmt.Errorf("set %s grammar: %w", a.language, err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, nil, fmt.Errorf("tree-sitter returned no tree for %s", DisplayName(filename))
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, &m.SyntaxError{Message: describeSyntaxError(root, filename)}, nil
	}

	if bad, reason, ok := a.firstInvalid(root); ok {
		return nil, &m.SyntaxError{Message: fmt.Sprintf("%s (%s, line %d)",
			reason, DisplayName(filename), bad.StartPosition().Row+1)}, nil
	}

	return a.convert(root, src), nil, nil
}

func (a *TreeSitterAdapter) convert(node *sitter.Node, src []byte) *m.SyntaxNode {
	out := &m.SyntaxNode{Kind: a.classify(node)}
	out.StartLine, out.EndLine = lineBounds(node, out.Kind != m.OtherNode)

	if out.Kind != m.OtherNode {
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			name := nameNode.Utf8Text(src)
			out.Name = &name
		}
	}

	count := node.NamedChildCount()
	if count > 0 {
		out.Children = make([]*m.SyntaxNode, 0, count)
	}

	for i := uint(0); i < count; i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}

		out.Children = append(out.Children, a.convert(child, src))
	}

	return out
}

func (a *TreeSitterAdapter) classify(node *sitter.Node) m.NodeKind {
	kind, ok := a.kinds[node.Kind()]
	if !ok {
		return m.OtherNode
	}

	if a.demote != nil && a.demote(node) {
		return m.OtherNode
	}

	return kind
}

// lineBounds converts tree-sitter rows to 1-indexed inclusive lines. A node
// that ends at column 0 of a later row stops on the previous line. Blocks end
// at their last token: trailing comments the grammar attaches to a body do not
// extend it.
func lineBounds(node *sitter.Node, block bool) (int, int) {
	start := node.StartPosition()

	end := node.EndPosition()
	if block {
		end = lastTokenEnd(node)
	}

	endLine := int(end.Row) + 1
	if end.Column == 0 && end.Row > start.Row {
		endLine = int(end.Row)
	}

	return int(start.Row) + 1, endLine
}

// lastTokenEnd is the end of the last non-comment token under node.
func lastTokenEnd(node *sitter.Node) sitter.Point {
	for i := node.ChildCount(); i > 0; i-- {
		child := node.Child(i - 1)
		if child == nil || child.Kind() == commentKind || child.StartByte() == child.EndByte() {
			continue
		}

		return lastTokenEnd(child)
	}

	return node.EndPosition()
}

// firstInvalid finds, in pre-order, the first node the language rejects.
func (a *TreeSitterAdapter) firstInvalid(node *sitter.Node) (*sitter.Node, string, bool) {
	if reason, ok := a.invalid[node.Kind()]; ok {
		return node, reason, true
	}

	for _, check := range a.checks {
		if reason, ok := check(node); ok {
			return node, reason, true
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}

		if bad, reason, ok := a.firstInvalid(child); ok {
			return bad, reason, true
		}
	}

	return nil, "", false
}

// describeSyntaxError reports the first ERROR or MISSING node in pre-order.
func describeSyntaxError(root *sitter.Node, filename string) string {
	bad := firstErrorNode(root)
	if bad == nil {
		return fmt.Sprintf("invalid syntax (%s)", DisplayName(filename))
	}

	line := bad.StartPosition().Row + 1
	if bad.IsMissing() {
		return fmt.Sprintf("expected '%s' (%s, line %d)", bad.Kind(), DisplayName(filename), line)
	}

	return fmt.Sprintf("invalid syntax (%s, line %d)", DisplayName(filename), line)
}

func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}

	if !node.HasError() {
		return nil
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}

		if found := firstErrorNode(child); found != nil {
			return found
		}
	}

	return nil
}
