package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configKeys are the settings written by init, in the order they are documented.
var configKeys = []string{
	configVersionKey,
	formatConfigKey,
	strictExitConfigKey,
	languageConfigKey,
	excludeConfigKey,
	parallelConfigKey,
	logFilenameKey,
	logLevelKey,
	logVerboseKey,
	logMaxSizeKey,
	logMaxBackupsKey,
	logMaxAgeKey,
	logCompressKey,
}

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write an enclose.yaml with the current settings",
		Long: `Create enclose.yaml in the working directory with the output format, strict
exit, language override, exclude globs, hunks parallelism and log settings
currently in effect, so they can be edited. An existing file is never
overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return writeConfig(filepath.Join(configFolderPath, configFileName))
		},
	}
}

// writeConfig saves the enclose settings, and nothing else viper holds, to path.
func writeConfig(path string) error {
	out := viper.New()
	for _, key := range configKeys {
		out.Set(key, viper.Get(key))
	}

	if err := out.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
