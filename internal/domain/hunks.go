package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	m "enclose.dev/pkg/enclose/internal/model"
)

// HunksArgs selects the diff to analyze. Either Patch is set, or Target and
// Base are set and the diff between them is computed.
type HunksArgs struct {
	Patch m.Path
	// Root is joined with the new file names of Patch.
	Root   m.Path
	Target m.Path
	Base   m.Path
	// Exclude holds doublestar globs matched against new file names.
	Exclude  []string
	Language m.Language
	Parallel int
}

// Hunks locates the enclosing context of every hunk of a unified diff. The
// diff must already be applied to the files it names. Files are analyzed
// concurrently; the result keeps the order of the diff.
func (w *workflow) Hunks(ctx context.Context, args HunksArgs) ([]m.FileHunks, error) {
	for _, pattern := range args.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrBadExcludePattern, pattern)
		}
	}

	patches, root, err := w.loadPatches(args)
	if err != nil {
		return nil, err
	}

	targets := make([]m.FilePatch, 0, len(patches))

	for _, patch := range patches {
		if patch.NewName == "" {
			slog.Debug("skipping deleted file", "file", patch.OrigName)
			continue
		}

		if excluded(patch.NewName, args.Exclude) {
			slog.Debug("skipping excluded file", "file", patch.NewName)
			continue
		}

		targets = append(targets, patch)
	}

	results := make([]m.FileHunks, len(targets))

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Parallel > 0 {
		group.SetLimit(args.Parallel)
	}

	for i, patch := range targets {
		group.Go(func() error {
			fileHunks, err := w.fileHunks(groupCtx, root, patch, args.Language)
			if err != nil {
				return err
			}

			results[i] = fileHunks

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (w *workflow) loadPatches(args HunksArgs) ([]m.FilePatch, m.Path, error) {
	switch {
	case args.Patch != "":
		data, err := w.fsAdapter.ReadFile(args.Patch)
		if err != nil {
			return nil, "", fmt.Errorf("read patch %s: %w", args.Patch, err)
		}

		patches, err := w.patchAdapter.ParsePatch(data)
		if err != nil {
			return nil, "", err
		}

		return patches, args.Root, nil

	case args.Target != "" && args.Base != "":
		base, err := w.fsAdapter.ReadFile(args.Base)
		if err != nil {
			return nil, "", fmt.Errorf("read base %s: %w", args.Base, err)
		}

		target, err := w.fsAdapter.ReadFile(args.Target)
		if err != nil {
			// Report the unreadable target like any other lookup.
			return []m.FilePatch{{OrigName: string(args.Target), NewName: string(args.Target)}}, "", nil
		}

		diffText, err := w.patchAdapter.DiffFiles(string(args.Target), base, target)
		if err != nil {
			return nil, "", err
		}

		patches, err := w.patchAdapter.ParsePatch([]byte(diffText))
		if err != nil {
			return nil, "", err
		}

		return patches, "", nil
	}

	return nil, "", ErrNoPatchInput
}

func (w *workflow) fileHunks(ctx context.Context, root m.Path, patch m.FilePatch, language m.Language) (m.FileHunks, error) {
	path := m.Path(patch.NewName)
	if root != "" {
		path = w.fsAdapter.JoinPath(string(root), patch.NewName)
	}

	out := m.FileHunks{Path: path, Hunks: make([]m.HunkContext, 0, len(patch.Hunks))}

	file, res := w.loadFile(path, language)
	if res != nil {
		out.Error = res.Error
		return out, nil
	}

	for _, hunk := range patch.Hunks {
		r := HunkRange(hunk)

		res, err := w.locator.Find(ctx, file.Language, string(file.Path), file.Content, r)
		if err != nil {
			return m.FileHunks{}, err
		}

		out.Hunks = append(out.Hunks, m.HunkContext{
			Header:    hunk.Header(),
			LineStart: r.Start,
			LineEnd:   r.End,
			Context:   res,
		})
	}

	return out, nil
}

// HunkRange is the line range queried for a hunk: the new-file lines from the
// first to the last changed line. A pure deletion collapses to the line that
// follows the removed text; a hunk without changes covers its whole new side.
func HunkRange(h m.Hunk) m.LineRange {
	first, last := -1, -1

	for i, line := range h.Lines {
		if isChange(line) {
			if first < 0 {
				first = i
			}

			last = i
		}
	}

	if first < 0 {
		return m.LineRange{Start: h.NewStart, End: h.NewStart + max(h.NewLines-1, 0)}
	}

	start := h.NewStart + first

	kept := 0

	for _, line := range h.Lines[first : last+1] {
		if !strings.HasPrefix(line, "-") {
			kept++
		}
	}

	return m.LineRange{Start: start, End: max(start+kept-1, start)}
}

func isChange(line string) bool {
	return strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-")
}

func excluded(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}

	return false
}
