package adapter

import (
	javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	m "enclose.dev/pkg/enclose/internal/model"
)

// NewJavaScriptAdapter parses JavaScript and JSX with the tree-sitter JavaScript grammar.
func NewJavaScriptAdapter() *TreeSitterAdapter {
	return &TreeSitterAdapter{
		language: m.LanguageJavaScript,
		grammar:  javascript.Language,
		kinds: map[string]m.NodeKind{
			"function_declaration":           m.FunctionBlock,
			"function_expression":            m.FunctionBlock,
			"function":                       m.FunctionBlock,
			"generator_function_declaration": m.FunctionBlock,
			"generator_function":             m.FunctionBlock,
			"arrow_function":                 m.FunctionBlock,
			"method_definition":              m.FunctionBlock,
			"class_declaration":              m.ClassBlock,
			"class":                          m.ClassBlock,
		},
	}
}
