package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "enclose.dev/pkg/enclose/internal/model"
)

const (
	jsonIndent = "    "
	yamlIndent = 4
	nullName   = "-"
)

// SimpleUI implements UI by encoding each result to the command's stdout.
type SimpleUI struct {
	cmd    *cobra.Command
	format Format
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, format Format) *SimpleUI {
	return &SimpleUI{cmd: cmd, format: format}
}

// DisplayContext prints one lookup result.
func (s *SimpleUI) DisplayContext(ctx context.Context, result m.ContextResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.format == FormatTable {
		return s.write(renderContextTable(result))
	}

	return s.encode(result)
}

// DisplayCheck prints a dry-run result.
func (s *SimpleUI) DisplayCheck(ctx context.Context, result m.CheckResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.format == FormatTable {
		return s.write(renderCheckTable(result))
	}

	return s.encode(result)
}

// DisplayHunks prints the per-hunk contexts of a diff.
func (s *SimpleUI) DisplayHunks(ctx context.Context, files []m.FileHunks) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if files == nil {
		files = []m.FileHunks{}
	}

	if s.format == FormatTable {
		return s.write(renderHunksTable(files))
	}

	return s.encode(files)
}

func (s *SimpleUI) encode(v any) error {
	var (
		out []byte
		err error
	)

	switch s.format {
	case FormatYAML:
		out, err = encodeYAML(v)
	default:
		out, err = encodeJSON(v)
	}

	if err != nil {
		return fmt.Errorf("encode %s output: %w", s.format, err)
	}

	return s.write(string(out))
}

func (s *SimpleUI) write(text string) error {
	_, err := io.WriteString(s.cmd.OutOrStdout(), text)
	return err
}

// encodeJSON pretty-prints with a 4-space indent, no HTML escaping and
// non-ASCII text as \uXXXX escapes.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", jsonIndent)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return m.EscapeNonASCII(buf.Bytes()), nil
}

func encodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	return table
}

func contextRow(result m.ContextResult) []string {
	if result.Failed() {
		return []string{"", "", "", "", result.Error}
	}

	name := nullName
	if result.Name != nil {
		name = *result.Name
	}

	return []string{result.Kind, name, strconv.Itoa(result.StartLine), strconv.Itoa(result.EndLine), ""}
}

func renderContextTable(result m.ContextResult) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Type", "Name", "Start", "End", "Error"})
	table.Append(contextRow(result))
	table.Render()

	return buf.String()
}

func renderCheckTable(result m.CheckResult) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"Valid", "Error"})
	table.Append([]string{strconv.FormatBool(result.Valid), result.Error})
	table.Render()

	return buf.String()
}

func renderHunksTable(files []m.FileHunks) string {
	var buf bytes.Buffer

	table := newTable(&buf, []string{"File", "Hunk", "Lines", "Type", "Name", "Start", "End", "Error"})

	hunkCount := 0

	for _, file := range files {
		if file.Error != "" {
			table.Append([]string{string(file.Path), "", "", "", "", "", "", file.Error})
			continue
		}

		for _, hunk := range file.Hunks {
			lines := fmt.Sprintf("%d-%d", hunk.LineStart, hunk.LineEnd)
			row := append([]string{string(file.Path), hunk.Header, lines}, contextRow(hunk.Context)...)
			table.Append(row)

			hunkCount++
		}
	}

	table.SetFooter([]string{fmt.Sprintf("Files %d", len(files)), fmt.Sprintf("Hunks %d", hunkCount), "", "", "", "", "", ""})
	table.Render()

	return buf.String()
}
