package adapter

import (
	"context"
	"errors"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"

	m "enclose.dev/pkg/enclose/internal/model"
)

// GoFileAdapter encapsulates Go-specific parsing so the domain layer can
// search Go sources through the same syntax tree it uses for other grammars.
type GoFileAdapter interface {
	SyntaxAdapter

	// BuildTree converts a parsed file into the language-neutral tree.
	BuildTree(fileSet *token.FileSet, file *ast.File) *m.SyntaxNode
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// Language implements SyntaxAdapter.
func (a *LocalGoFileAdapter) Language() m.Language {
	return m.LanguageGo
}

// Parse builds the syntax tree for the provided filename/source pair.
func (a *LocalGoFileAdapter) Parse(ctx context.Context, filename string, src []byte) (*m.SyntaxNode, *m.SyntaxError, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	fileSet := token.NewFileSet()

	file, err := parser.ParseFile(fileSet, DisplayName(filename), src, parser.SkipObjectResolution)
	if err != nil {
		var list scanner.ErrorList
		if errors.As(err, &list) {
			return nil, &m.SyntaxError{Message: list.Error()}, nil
		}

		return nil, nil, err
	}

	return a.BuildTree(fileSet, file), nil, nil
}

// BuildTree mirrors the AST as SyntaxNodes. Function declarations and literals
// are function blocks; struct and interface type specs are class blocks.
func (a *LocalGoFileAdapter) BuildTree(fileSet *token.FileSet, file *ast.File) *m.SyntaxNode {
	var root *m.SyntaxNode

	stack := make([]*m.SyntaxNode, 0, 16)

	ast.Inspect(file, func(n ast.Node) bool {
		if n == nil {
			stack = stack[:len(stack)-1]
			return false
		}

		node := goSyntaxNode(fileSet, n)

		if len(stack) == 0 {
			root = node
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}

		stack = append(stack, node)

		return true
	})

	return root
}

func goSyntaxNode(fileSet *token.FileSet, n ast.Node) *m.SyntaxNode {
	node := &m.SyntaxNode{
		Kind:      m.OtherNode,
		StartLine: fileSet.Position(n.Pos()).Line,
		EndLine:   fileSet.Position(n.End()).Line,
	}

	switch d := n.(type) {
	case *ast.FuncDecl:
		name := d.Name.Name
		node.Kind = m.FunctionBlock
		node.Name = &name

	case *ast.FuncLit:
		node.Kind = m.FunctionBlock

	case *ast.TypeSpec:
		switch d.Type.(type) {
		case *ast.StructType, *ast.InterfaceType:
			name := d.Name.Name
			node.Kind = m.ClassBlock
			node.Name = &name
		}
	}

	return node
}
