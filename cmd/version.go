package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const unknownVersion = "unknown"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the enclose version",
		Long:  "Print the enclose module version and the Go toolchain it was built with.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			version, goVersion := buildVersion()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "enclose %s (%s)\n", version, goVersion)
			return err
		},
	}
}

// buildVersion reports the module version and Go version from the binary's
// build info; `go run` and test binaries have no module version.
func buildVersion() (string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return unknownVersion, runtime.Version()
	}

	version := info.Main.Version
	if version == "" || version == "(devel)" {
		version = unknownVersion
	}

	return version, info.GoVersion
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
