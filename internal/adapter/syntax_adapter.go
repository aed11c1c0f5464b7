package adapter

import (
	"context"

	m "enclose.dev/pkg/enclose/internal/model"
)

// unknownFilename labels diagnostics for source text that has no file name.
const unknownFilename = "<unknown>"

// SyntaxAdapter turns source text into a language-neutral syntax tree so the
// domain layer can search for enclosing blocks without knowing the grammar.
type SyntaxAdapter interface {
	// Language reports the grammar this adapter parses.
	Language() m.Language

	// Parse builds the syntax tree for src. Malformed source is reported through
	// the *m.SyntaxError value; the error return is reserved for cancellation and
	// parser setup failures.
	Parse(ctx context.Context, filename string, src []byte) (*m.SyntaxNode, *m.SyntaxError, error)
}

// DefaultSyntaxAdapters returns one adapter per supported language.
func DefaultSyntaxAdapters() map[m.Language]SyntaxAdapter {
	adapters := []SyntaxAdapter{
		NewPythonAdapter(),
		NewJavaScriptAdapter(),
		NewLocalGoFileAdapter(),
	}

	byLang := make(map[m.Language]SyntaxAdapter, len(adapters))
	for _, a := range adapters {
		byLang[a.Language()] = a
	}

	return byLang
}

// DisplayName is the label diagnostics use for filename.
func DisplayName(filename string) string {
	if filename == "" {
		return unknownFilename
	}

	return filename
}
