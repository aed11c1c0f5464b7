package model

import "fmt"

// Hunk is one change region of a unified diff.
type Hunk struct {
	OrigStart int
	OrigLines int
	NewStart  int
	NewLines  int
	// Lines holds the hunk body, each line still carrying its ' ', '+' or '-' marker.
	Lines []string
}

// Header renders the hunk's "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OrigStart, h.OrigLines, h.NewStart, h.NewLines)
}

// FilePatch groups the hunks of one file in a diff.
type FilePatch struct {
	OrigName string
	// NewName is empty when the file was deleted.
	NewName string
	Hunks   []Hunk
}

// HunkContext is the enclosing context located for one hunk.
type HunkContext struct {
	Header    string        `json:"hunk" yaml:"hunk"`
	LineStart int           `json:"line_start" yaml:"line_start"`
	LineEnd   int           `json:"line_end" yaml:"line_end"`
	Context   ContextResult `json:"context" yaml:"context"`
}

// FileHunks is the per-file output of the hunks workflow.
type FileHunks struct {
	Path  Path          `json:"file" yaml:"file"`
	Error string        `json:"error,omitempty" yaml:"error,omitempty"`
	Hunks []HunkContext `json:"hunks" yaml:"hunks"`
}
