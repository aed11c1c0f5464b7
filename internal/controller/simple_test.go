package controller

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "enclose.dev/pkg/enclose/internal/model"
)

func strPtr(s string) *string { return &s }

func newTestUI(format Format) (*SimpleUI, *bytes.Buffer) {
	out := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	return NewSimpleUI(cmd, format), out
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{" yaml", FormatYAML, false},
		{"table", FormatTable, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSimpleUI_DisplayContext_JSON(t *testing.T) {
	ui, out := newTestUI(FormatJSON)

	err := ui.DisplayContext(context.Background(), m.ContextResult{
		Kind: "ClassDef", Name: strPtr("Outer"), StartLine: 1, EndLine: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, `{
    "type": "ClassDef",
    "name": "Outer",
    "start_line": 1,
    "end_line": 20
}
`, out.String())
}

func TestSimpleUI_DisplayContext_JSONError(t *testing.T) {
	ui, out := newTestUI(FormatJSON)

	err := ui.DisplayContext(context.Background(), m.ContextError("Usage: enclose <file_path> <line_start> <line_end>"))
	require.NoError(t, err)

	assert.Equal(t, "{\n    \"error\": \"Usage: enclose <file_path> <line_start> <line_end>\"\n}\n", out.String())
}

func TestSimpleUI_DisplayContext_YAML(t *testing.T) {
	ui, out := newTestUI(FormatYAML)

	err := ui.DisplayContext(context.Background(), m.ContextResult{Kind: "FunctionDef", StartLine: 3, EndLine: 8})
	require.NoError(t, err)

	assert.Equal(t, "type: FunctionDef\nname: null\nstart_line: 3\nend_line: 8\n", out.String())
}

func TestSimpleUI_DisplayContext_Table(t *testing.T) {
	ui, out := newTestUI(FormatTable)

	err := ui.DisplayContext(context.Background(), m.ContextResult{
		Kind: "FunctionDef", Name: strPtr("save"), StartLine: 2, EndLine: 5,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "FunctionDef")
	assert.Contains(t, out.String(), "save")
	assert.Contains(t, out.String(), "TYPE")
}

func TestSimpleUI_DisplayCheck(t *testing.T) {
	ui, out := newTestUI(FormatJSON)

	require.NoError(t, ui.DisplayCheck(context.Background(), m.CheckResult{Valid: true}))
	assert.Equal(t, "{\n    \"valid\": true,\n    \"error\": \"\"\n}\n", out.String())

	tableUI, tableOut := newTestUI(FormatTable)
	require.NoError(t, tableUI.DisplayCheck(context.Background(), m.CheckResult{Valid: false, Error: "invalid syntax"}))
	assert.Contains(t, tableOut.String(), "false")
	assert.Contains(t, tableOut.String(), "invalid syntax")
}

func TestSimpleUI_DisplayHunks(t *testing.T) {
	files := []m.FileHunks{
		{
			Path: "app/models.py",
			Hunks: []m.HunkContext{{
				Header:    "@@ -1,6 +1,7 @@",
				LineStart: 4,
				LineEnd:   4,
				Context:   m.ContextResult{Kind: "ClassDef", Name: strPtr("Model"), StartLine: 1, EndLine: 5},
			}},
		},
		{Path: "gone.py", Error: "File not found: gone.py", Hunks: []m.HunkContext{}},
	}

	t.Run("json", func(t *testing.T) {
		ui, out := newTestUI(FormatJSON)
		require.NoError(t, ui.DisplayHunks(context.Background(), files))

		assert.Contains(t, out.String(), `"file": "app/models.py"`)
		assert.Contains(t, out.String(), `"hunk": "@@ -1,6 +1,7 @@"`)
		assert.Contains(t, out.String(), `"type": "ClassDef"`)
		assert.Contains(t, out.String(), `"error": "File not found: gone.py"`)
	})

	t.Run("table", func(t *testing.T) {
		ui, out := newTestUI(FormatTable)
		require.NoError(t, ui.DisplayHunks(context.Background(), files))

		assert.Contains(t, out.String(), "app/models.py")
		assert.Contains(t, out.String(), "Model")
		assert.Contains(t, out.String(), "File not found: gone.py")
	})

	t.Run("nil renders empty list", func(t *testing.T) {
		ui, out := newTestUI(FormatJSON)
		require.NoError(t, ui.DisplayHunks(context.Background(), nil))
		assert.Equal(t, "[]\n", out.String())
	})
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ui, out := newTestUI(FormatJSON)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, ui.DisplayContext(ctx, m.ContextError("x")))
	assert.Empty(t, out.String())
}

func TestSimpleUI_JSONEscapesNonASCII(t *testing.T) {
	ui, out := newTestUI(FormatJSON)

	files := []m.FileHunks{{Path: "src/café.py", Error: "File not found: src/café.py", Hunks: []m.HunkContext{}}}
	require.NoError(t, ui.DisplayHunks(context.Background(), files))

	assert.Contains(t, out.String(), `"file": "src/café.py"`)
	assert.Contains(t, out.String(), `"error": "File not found: src/café.py"`)
	assert.NotContains(t, out.String(), "é")

	yamlUI, yamlOut := newTestUI(FormatYAML)
	require.NoError(t, yamlUI.DisplayHunks(context.Background(), files))
	assert.Contains(t, yamlOut.String(), "café")
}
