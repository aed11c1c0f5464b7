package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"enclose.dev/pkg/enclose/internal/domain"
	m "enclose.dev/pkg/enclose/internal/model"
)

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file_path>",
		Short: "Check that a file parses",
		Long: `Parse a file without searching it and print {"valid": bool, "error": string}.
Use it to find out up front whether lookups will report syntax errors.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui, err := newUI(cmd)
			if err != nil {
				return err
			}

			language, err := languageOption()
			if err != nil {
				return err
			}

			result, err := workflow.Check(cmd.Context(), domain.CheckArgs{
				Path:     m.Path(args[0]),
				Language: language,
			})
			if err != nil {
				return err
			}

			if err := ui.DisplayCheck(cmd.Context(), result); err != nil {
				return err
			}

			if !result.Valid && viper.GetBool(strictExitConfigKey) {
				return errors.New(result.Error)
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
