package domain

import "errors"

var (
	// ErrUnsupportedLanguage is returned when no syntax adapter handles a language.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrNoPatchInput is returned when hunks is called without a patch or a base file.
	ErrNoPatchInput = errors.New("either a patch file or a target file with a base version is required")

	// ErrBadExcludePattern is returned for exclude globs doublestar cannot parse.
	ErrBadExcludePattern = errors.New("invalid exclude pattern")
)
