package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"enclose.dev/pkg/enclose/internal/adapter"
	m "enclose.dev/pkg/enclose/internal/model"
)

const (
	// MsgLineNumbersNotIntegers is reported when a line argument does not parse.
	MsgLineNumbersNotIntegers = "Line numbers must be integers"

	fileNotFoundPrefix = "File not found: "
)

// LocateArgs holds the raw boundary arguments of a single lookup.
type LocateArgs struct {
	Path      m.Path
	LineStart string
	LineEnd   string
	// Language overrides extension based detection when set.
	Language m.Language
}

// CheckArgs holds the arguments of a dry-run parse.
type CheckArgs struct {
	Path     m.Path
	Language m.Language
}

// Workflow wires the filesystem, patch and locator components into the
// use cases exposed by the CLI.
type Workflow interface {
	Locate(ctx context.Context, args LocateArgs) (m.ContextResult, error)
	Check(ctx context.Context, args CheckArgs) (m.CheckResult, error)
	Hunks(ctx context.Context, args HunksArgs) ([]m.FileHunks, error)
}

type workflow struct {
	fsAdapter    adapter.SourceFSAdapter
	patchAdapter adapter.PatchAdapter
	locator      Locator
}

// NewWorkflow constructs a Workflow.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	patchAdapter adapter.PatchAdapter,
	locator Locator,
) Workflow {
	return &workflow{
		fsAdapter:    fsAdapter,
		patchAdapter: patchAdapter,
		locator:      locator,
	}
}

// Locate validates the line arguments, reads the file and runs the locator.
// Each boundary failure short-circuits into an error result.
func (w *workflow) Locate(ctx context.Context, args LocateArgs) (m.ContextResult, error) {
	lineStart, errStart := parseLine(args.LineStart)
	lineEnd, errEnd := parseLine(args.LineEnd)

	if errStart != nil || errEnd != nil {
		slog.Debug("invalid line arguments", "start", args.LineStart, "end", args.LineEnd)
		return m.ContextError(MsgLineNumbersNotIntegers), nil
	}

	file, res := w.loadFile(args.Path, args.Language)
	if res != nil {
		return *res, nil
	}

	return w.locator.Find(ctx, file.Language, string(file.Path), file.Content, m.LineRange{Start: lineStart, End: lineEnd})
}

// Check reads the file and reports whether it parses.
func (w *workflow) Check(ctx context.Context, args CheckArgs) (m.CheckResult, error) {
	file, res := w.loadFile(args.Path, args.Language)
	if res != nil {
		return m.CheckResult{Valid: false, Error: res.Error}, nil
	}

	return w.locator.Check(ctx, file.Language, string(file.Path), file.Content)
}

// loadFile reads path and resolves its language. Any read failure is reported
// with the "File not found" wording.
func (w *workflow) loadFile(path m.Path, language m.Language) (m.File, *m.ContextResult) {
	content, err := w.fsAdapter.ReadFile(path)
	if err != nil {
		slog.Debug("read failed", "path", path, "error", err)

		res := fileNotFound(path)

		return m.File{}, &res
	}

	if language == "" {
		language = m.LanguageForPath(path)
	}

	return m.File{Path: path, Language: language, Content: content}, nil
}

func fileNotFound(path m.Path) m.ContextResult {
	return m.ContextError(fmt.Sprintf("%s%s", fileNotFoundPrefix, path))
}

// parseLine accepts what Python's int() accepts for base 10: surrounding
// whitespace, a sign, and single underscores between digits ("1_000").
func parseLine(value string) (int, error) {
	digits := strings.TrimSpace(value)

	for i := 0; i < len(digits); i++ {
		if digits[i] != '_' {
			continue
		}

		if i == 0 || i == len(digits)-1 || !isDigit(digits[i-1]) || !isDigit(digits[i+1]) {
			return 0, fmt.Errorf("misplaced underscore in %q", value)
		}
	}

	return strconv.Atoi(strings.ReplaceAll(digits, "_", ""))
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
