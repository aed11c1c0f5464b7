package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func strPtr(s string) *string { return &s }

func TestSyntaxNode_Contains(t *testing.T) {
	node := &SyntaxNode{Kind: FunctionBlock, StartLine: 5, EndLine: 10}

	tests := []struct {
		name string
		r    LineRange
		want bool
	}{
		{"inside", LineRange{6, 7}, true},
		{"exact bounds", LineRange{5, 10}, true},
		{"starts before", LineRange{4, 7}, false},
		{"ends after", LineRange{6, 11}, false},
		{"single line at end", LineRange{10, 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, node.Contains(tt.r))
		})
	}
}

func TestSyntaxNode_ContainsWithoutEndLine(t *testing.T) {
	node := &SyntaxNode{Kind: ClassBlock, StartLine: 1}
	assert.False(t, node.Contains(LineRange{1, 1}))
}

func TestSyntaxNode_Span(t *testing.T) {
	assert.Equal(t, 19, (&SyntaxNode{StartLine: 1, EndLine: 20}).Span())
	assert.Equal(t, 0, (&SyntaxNode{StartLine: 3, EndLine: 3}).Span())
}

func TestNodeKind_String(t *testing.T) {
	assert.Equal(t, "FunctionDef", FunctionBlock.String())
	assert.Equal(t, "ClassDef", ClassBlock.String())
	assert.Equal(t, "Other", OtherNode.String())
}

func TestContextResult_MarshalJSON(t *testing.T) {
	t.Run("success keeps key order", func(t *testing.T) {
		res := ContextFromNode(&SyntaxNode{Kind: ClassBlock, Name: strPtr("Foo"), StartLine: 1, EndLine: 20})

		out, err := res.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"type":"ClassDef","name":"Foo","start_line":1,"end_line":20}`, string(out))
	})

	t.Run("anonymous block has null name", func(t *testing.T) {
		res := ContextFromNode(&SyntaxNode{Kind: FunctionBlock, StartLine: 2, EndLine: 4})

		out, err := res.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"type":"FunctionDef","name":null,"start_line":2,"end_line":4}`, string(out))
	})

	t.Run("failure has only the error key", func(t *testing.T) {
		out, err := ContextError("Usage: enclose <file_path>").MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, `{"error":"Usage: enclose <file_path>"}`, string(out))
	})
}

func TestContextResult_MarshalYAML(t *testing.T) {
	out, err := yaml.Marshal(ContextError("No enclosing context found"))
	require.NoError(t, err)
	assert.Equal(t, "error: No enclosing context found\n", string(out))

	out, err = yaml.Marshal(ContextFromNode(&SyntaxNode{Kind: FunctionBlock, Name: strPtr("run"), StartLine: 3, EndLine: 9}))
	require.NoError(t, err)
	assert.Equal(t, "type: FunctionDef\nname: run\nstart_line: 3\nend_line: 9\n", string(out))
}

func TestHunk_Header(t *testing.T) {
	h := Hunk{OrigStart: 3, OrigLines: 4, NewStart: 3, NewLines: 6}
	assert.Equal(t, "@@ -3,4 +3,6 @@", h.Header())
}

func TestEscapeNonASCII(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii untouched", `{"name":"plain"}`, `{"name":"plain"}`},
		{"latin", `{"name":"café"}`, `{"name":"caf\u00e9"}`},
		{"cjk", `"名前"`, `"\u540d\u524d"`},
		{"astral plane uses surrogates", `"😀"`, `"\ud83d\ude00"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(EscapeNonASCII([]byte(tt.in))))
		})
	}
}

func TestContextResult_MarshalJSON_NonASCIIName(t *testing.T) {
	name := "größe"

	data, err := json.Marshal(ContextResult{Kind: "FunctionDef", Name: &name, StartLine: 1, EndLine: 3})
	require.NoError(t, err)
	assert.Equal(t, `{"type":"FunctionDef","name":"gr\u00f6\u00dfe","start_line":1,"end_line":3}`, string(data))
}
