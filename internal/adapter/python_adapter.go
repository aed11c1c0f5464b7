package adapter

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	m "enclose.dev/pkg/enclose/internal/model"
)

// Python 2 statements the grammar still parses.
var pythonInvalidKinds = map[string]string{
	"print_statement": "Missing parentheses in call to 'print'. Did you mean print(...)?",
	"exec_statement":  "Missing parentheses in call to 'exec'. Did you mean exec(...)?",
}

// Parameter kinds that give a bare `*` something to separate.
var namedParameterKinds = map[string]bool{
	"identifier":              true,
	"typed_parameter":         true,
	"default_parameter":       true,
	"typed_default_parameter": true,
}

// NewPythonAdapter parses Python with the tree-sitter Python grammar.
//
// `async def` functions are walked but never reported as blocks.
func NewPythonAdapter() *TreeSitterAdapter {
	return &TreeSitterAdapter{
		language: m.LanguagePython,
		grammar:  python.Language,
		kinds: map[string]m.NodeKind{
			"function_definition": m.FunctionBlock,
			"class_definition":    m.ClassBlock,
		},
		demote:  isAsyncFunction,
		invalid: pythonInvalidKinds,
		checks:  []invalidCheck{unparenthesizedGenerator, bareStarWithoutNames},
	}
}

func isAsyncFunction(node *sitter.Node) bool {
	if node.Kind() != "function_definition" || node.ChildCount() == 0 {
		return false
	}

	first := node.Child(0)

	return first != nil && first.Kind() == "async"
}

// unparenthesizedGenerator rejects `for x in a, b` inside a comprehension,
// which the grammar reads as iterating a tuple. In a call such as
// `f(x for x in y, 1)` it is a generator that needed its own parentheses.
func unparenthesizedGenerator(node *sitter.Node) (string, bool) {
	if node.Kind() != "for_in_clause" || !hasDirectToken(node, ",") {
		return "", false
	}

	parent := node.Parent()
	if parent != nil && parent.Kind() == "generator_expression" {
		if grand := parent.Parent(); grand != nil && grand.Kind() == "call" {
			return "Generator expression must be parenthesized", true
		}
	}

	return "invalid syntax", true
}

// bareStarWithoutNames rejects parameter lists such as `(*)` or `(*, **kw)`.
func bareStarWithoutNames(node *sitter.Node) (string, bool) {
	if node.Kind() != "parameters" && node.Kind() != "lambda_parameters" {
		return "", false
	}

	afterStar := false

	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}

		switch {
		case child.Kind() == "keyword_separator":
			afterStar = true
		case afterStar && namedParameterKinds[child.Kind()]:
			return "", false
		}
	}

	if afterStar {
		return "named arguments must follow bare *", true
	}

	return "", false
}

func hasDirectToken(node *sitter.Node, kind string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil && !child.IsNamed() && child.Kind() == kind {
			return true
		}
	}

	return false
}
