// Package domain locates enclosing code blocks and drives the CLI use cases.
package domain

import (
	"context"
	"fmt"
	"log/slog"

	"enclose.dev/pkg/enclose/internal/adapter"
	m "enclose.dev/pkg/enclose/internal/model"
)

const (
	// MsgNoEnclosingContext is reported when no block contains the range.
	MsgNoEnclosingContext = "No enclosing context found"

	syntaxErrorPrefix   = "Syntax error in the file: "
	internalErrorPrefix = "Internal error: "
)

// Locator finds the enclosing function or class block for a line range.
type Locator interface {
	// Find parses src with the grammar for language and selects the largest
	// block whose lines contain r. Syntax errors and misses are reported in the
	// result; the error return is for cancellation and unsupported languages.
	Find(ctx context.Context, language m.Language, filename string, src []byte, r m.LineRange) (m.ContextResult, error)

	// Check parses src and reports whether it is syntactically valid.
	Check(ctx context.Context, language m.Language, filename string, src []byte) (m.CheckResult, error)
}

type locator struct {
	adapters map[m.Language]adapter.SyntaxAdapter
}

// NewLocator constructs a Locator over the provided syntax adapters.
func NewLocator(adapters map[m.Language]adapter.SyntaxAdapter) Locator {
	return &locator{adapters: adapters}
}

// FindEnclosingContext runs the locator on Python source text.
func FindEnclosingContext(sourceText string, lineStart, lineEnd int) m.ContextResult {
	loc := NewLocator(map[m.Language]adapter.SyntaxAdapter{
		m.LanguagePython: adapter.NewPythonAdapter(),
	})

	res, err := loc.Find(context.Background(), m.LanguagePython, "", []byte(sourceText), m.LineRange{Start: lineStart, End: lineEnd})
	if err != nil {
		return internalError(err)
	}

	return res
}

// internalError reports a failure of the parser itself, as opposed to a
// problem with the source text.
func internalError(err error) m.ContextResult {
	return m.ContextError(internalErrorPrefix + err.Error())
}

func (l *locator) Find(ctx context.Context, language m.Language, filename string, src []byte, r m.LineRange) (m.ContextResult, error) {
	root, synErr, err := l.parse(ctx, language, filename, src)
	if err != nil {
		return m.ContextResult{}, err
	}

	if synErr != nil {
		slog.Debug("syntax error", "file", filename, "language", language, "message", synErr.Message)
		return m.ContextError(syntaxErrorPrefix + synErr.Message), nil
	}

	best := SelectEnclosing(root, r)
	if best == nil {
		slog.Debug("no enclosing context", "file", filename, "start", r.Start, "end", r.End)
		return m.ContextError(MsgNoEnclosingContext), nil
	}

	slog.Debug("enclosing context found",
		"file", filename, "kind", best.Kind.String(), "start", best.StartLine, "end", best.EndLine)

	return m.ContextFromNode(best), nil
}

func (l *locator) Check(ctx context.Context, language m.Language, filename string, src []byte) (m.CheckResult, error) {
	_, synErr, err := l.parse(ctx, language, filename, src)
	if err != nil {
		return m.CheckResult{}, err
	}

	if synErr != nil {
		return m.CheckResult{Valid: false, Error: synErr.Message}, nil
	}

	return m.CheckResult{Valid: true}, nil
}

func (l *locator) parse(ctx context.Context, language m.Language, filename string, src []byte) (*m.SyntaxNode, *m.SyntaxError, error) {
	a, ok := l.adapters[language]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
	}

	root, synErr, err := a.Parse(ctx, filename, src)
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", adapter.DisplayName(filename), err)
	}

	return root, synErr, nil
}

// SelectEnclosing walks the tree in pre-order and returns the function or
// class block with the largest span (EndLine - StartLine) that contains r.
// Every node is visited, including the descendants of matches. A later node
// replaces the best only with a strictly larger span, so the first visited
// wins ties and zero-span blocks are never selected.
func SelectEnclosing(root *m.SyntaxNode, r m.LineRange) *m.SyntaxNode {
	var (
		best     *m.SyntaxNode
		bestSpan int
	)

	var visit func(n *m.SyntaxNode)
	visit = func(n *m.SyntaxNode) {
		if n == nil {
			return
		}

		switch n.Kind {
		case m.FunctionBlock, m.ClassBlock:
			if n.Contains(r) && n.Span() > bestSpan {
				best = n
				bestSpan = n.Span()
			}
		case m.OtherNode:
		}

		for _, child := range n.Children {
			visit(child)
		}
	}

	visit(root)

	return best
}
