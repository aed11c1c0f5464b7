// Package controller renders enclose results to the command output.
package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	m "enclose.dev/pkg/enclose/internal/model"
)

// Format selects how results are written.
type Format string

// Available Format values.
const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// ParseFormat normalizes a format name; empty means json.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatTable:
		return f, nil
	}

	return "", fmt.Errorf("unknown output format %q (want json, yaml or table)", name)
}

// UI writes results for the CLI commands.
// Implementations can use different output encodings.
type UI interface {
	DisplayContext(ctx context.Context, result m.ContextResult) error
	DisplayCheck(ctx context.Context, result m.CheckResult) error
	DisplayHunks(ctx context.Context, files []m.FileHunks) error
}

// NewUI creates the UI for the requested format writing to cmd's output.
func NewUI(cmd *cobra.Command, format Format) UI {
	return NewSimpleUI(cmd, format)
}
