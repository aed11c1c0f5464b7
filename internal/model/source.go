package model

import (
	"path/filepath"
	"strings"
)

// Path represents a file system path.
type Path string

// Language identifies the grammar used to parse a source file.
type Language string

const (
	// LanguagePython parses with the tree-sitter Python grammar.
	// It is also the fallback for unknown extensions.
	LanguagePython Language = "python"

	// LanguageGo parses with go/parser.
	LanguageGo Language = "go"

	// LanguageJavaScript parses with the tree-sitter JavaScript grammar (JSX included).
	LanguageJavaScript Language = "javascript"
)

var extensionLanguages = map[string]Language{
	".py":  LanguagePython,
	".pyi": LanguagePython,
	".pyw": LanguagePython,
	".go":  LanguageGo,
	".js":  LanguageJavaScript,
	".jsx": LanguageJavaScript,
	".mjs": LanguageJavaScript,
	".cjs": LanguageJavaScript,
}

// LanguageForPath picks a language from the file extension.
func LanguageForPath(path Path) Language {
	ext := strings.ToLower(filepath.Ext(string(path)))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}

	return LanguagePython
}

// ParseLanguage normalizes a user supplied language name. An empty name
// returns ok=true with an empty Language, meaning "detect from extension".
func ParseLanguage(name string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return "", true
	case "python", "py":
		return LanguagePython, true
	case "go", "golang":
		return LanguageGo, true
	case "javascript", "js", "jsx":
		return LanguageJavaScript, true
	}

	return "", false
}

// File represents a source code file loaded for analysis.
type File struct {
	Path     Path
	Language Language
	Content  []byte
}
