package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"enclose.dev/pkg/enclose/internal/domain"
	m "enclose.dev/pkg/enclose/internal/model"
)

var hunksPatchFlag string
var hunksRootFlag string
var hunksBaseFlag string
var hunksParallelFlag int

const hunksLongDescription = `Report the enclosing context of every hunk of a unified diff.

The diff must already be applied: each hunk is looked up in the new version of
its file. Either pass a patch file,

  enclose hunks --patch changes.diff --root .

or a file and the version it was changed from,

  enclose hunks app/models.py --base /tmp/models.py.orig

Deleted files and files matching --exclude globs are skipped.`

// hunksCmd represents the hunks command.
var hunksCmd = newHunksCmd()

func newHunksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hunks [file_path]",
		Short: "Find the enclosing context of each diff hunk",
		Long:  hunksLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, err := newUI(cmd)
			if err != nil {
				return err
			}

			language, err := languageOption()
			if err != nil {
				return err
			}

			var target m.Path
			if len(args) == 1 {
				target = m.Path(args[0])
			}

			files, err := workflow.Hunks(cmd.Context(), domain.HunksArgs{
				Patch:    m.Path(hunksPatchFlag),
				Root:     m.Path(hunksRootFlag),
				Target:   target,
				Base:     m.Path(hunksBaseFlag),
				Exclude:  viper.GetStringSlice(excludeConfigKey),
				Language: language,
				Parallel: viper.GetInt(parallelConfigKey),
			})
			if err != nil {
				return err
			}

			if err := ui.DisplayHunks(cmd.Context(), files); err != nil {
				return err
			}

			if viper.GetBool(strictExitConfigKey) {
				return unreadableFilesError(files)
			}

			return nil
		},
	}

	configureHunksFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(hunksCmd)
}

func configureHunksFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&hunksPatchFlag, patchFlagName, "p", "", "unified diff to analyze")
	cmd.Flags().StringVarP(&hunksRootFlag, rootDirFlagName, "r", "", "directory the patch file names are relative to")
	cmd.Flags().StringVarP(&hunksBaseFlag, baseFlagName, "b", "", "previous version of file_path to diff against")
	cmd.Flags().IntVarP(&hunksParallelFlag, parallelFlagName, "j", defaultParallel, "number of files analyzed in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)
}

func unreadableFilesError(files []m.FileHunks) error {
	failed := 0

	for _, file := range files {
		if file.Error != "" {
			failed++
		}
	}

	if failed == 0 {
		return nil
	}

	return fmt.Errorf("%d file(s) could not be read", failed)
}
