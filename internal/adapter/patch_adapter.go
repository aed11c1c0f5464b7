package adapter

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"

	m "enclose.dev/pkg/enclose/internal/model"
)

const (
	devNull          = "/dev/null"
	diffContextLines = 3
)

// PatchAdapter reads and produces unified diffs.
type PatchAdapter interface {
	// ParsePatch splits a unified diff into per-file hunks.
	ParsePatch(data []byte) ([]m.FilePatch, error)

	// DiffFiles renders the unified diff that turns oldText into newText.
	DiffFiles(name string, oldText, newText []byte) (string, error)
}

// LocalPatchAdapter implements PatchAdapter with go-diff and go-difflib.
type LocalPatchAdapter struct{}

// NewLocalPatchAdapter constructs a LocalPatchAdapter.
func NewLocalPatchAdapter() *LocalPatchAdapter {
	return &LocalPatchAdapter{}
}

// ParsePatch parses a (possibly multi-file) unified diff.
func (a *LocalPatchAdapter) ParsePatch(data []byte) ([]m.FilePatch, error) {
	fileDiffs, err := diff.ParseMultiFileDiff(data)
	if err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}

	patches := make([]m.FilePatch, 0, len(fileDiffs))

	for _, fd := range fileDiffs {
		patch := m.FilePatch{
			OrigName: stripDiffPrefix(fd.OrigName, "a/"),
			NewName:  stripDiffPrefix(fd.NewName, "b/"),
			Hunks:    make([]m.Hunk, 0, len(fd.Hunks)),
		}

		for _, h := range fd.Hunks {
			patch.Hunks = append(patch.Hunks, m.Hunk{
				OrigStart: int(h.OrigStartLine),
				OrigLines: int(h.OrigLines),
				NewStart:  int(h.NewStartLine),
				NewLines:  int(h.NewLines),
				Lines:     hunkBodyLines(h.Body),
			})
		}

		patches = append(patches, patch)
	}

	return patches, nil
}

// DiffFiles renders a unified diff with a/ and b/ prefixed names.
func (a *LocalPatchAdapter) DiffFiles(name string, oldText, newText []byte) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(oldText)),
		B:        difflib.SplitLines(string(newText)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  diffContextLines,
	}

	out, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", name, err)
	}

	return out, nil
}

func stripDiffPrefix(name, prefix string) string {
	if name == devNull {
		return ""
	}

	return strings.TrimPrefix(name, prefix)
}

func hunkBodyLines(body []byte) []string {
	raw := strings.Split(strings.TrimSuffix(string(body), "\n"), "\n")
	lines := make([]string, 0, len(raw))

	for _, line := range raw {
		// "\ No newline at end of file"
		if strings.HasPrefix(line, `\`) {
			continue
		}

		lines = append(lines, line)
	}

	return lines
}
