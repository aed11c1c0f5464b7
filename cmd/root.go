// Package cmd provides the root command and CLI setup for enclose.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"enclose.dev/pkg/enclose/internal/adapter"
	"enclose.dev/pkg/enclose/internal/controller"
	"enclose.dev/pkg/enclose/internal/domain"
	m "enclose.dev/pkg/enclose/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var patchAdapter adapter.PatchAdapter
var locator domain.Locator
var workflow domain.Workflow

// formatFlag selects json, yaml or table output.
var formatFlag string

// strictExitFlag makes failed lookups exit with status 1.
var strictExitFlag bool

// languageFlag overrides extension based language detection.
var languageFlag string

// excludePatterns filters files for commands that read diffs.
var excludePatterns []string

var logFileFlag string
var verboseFlag bool

const locateArgCount = 3

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	patchAdapter = adapter.NewLocalPatchAdapter()
	locator = domain.NewLocator(adapter.DefaultSyntaxAdapters())
	workflow = domain.NewWorkflow(fsAdapter, patchAdapter, locator)
}

const rootLongDescription = `Enclose reports the function or class definition that encloses a line range
of a source file, as JSON on stdout. When several blocks contain the range the
largest one wins, so a method inside a class reports the class.

Languages are picked from the file extension (.py, .go, .js/.jsx/.mjs/.cjs);
any other extension is parsed as Python unless --language is given.

Failures are reported as {"error": "..."} and exit with status 0 unless
--strict-exit is set. Negative line numbers must follow "--".

A file named like a subcommand (check, hunks, init, version) is taken for the
subcommand; give it a path instead, as in "enclose ./init 3 5".`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enclose <file_path> <line_start> <line_end>",
		Short: "Find the enclosing function or class of a line range",
		Long:  rootLongDescription,
		Args:  cobra.ArbitraryArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE:         runLocate,
		SilenceUsage: true,
	}
}

func runLocate(cmd *cobra.Command, args []string) error {
	ui, err := newUI(cmd)
	if err != nil {
		return err
	}

	language, err := languageOption()
	if err != nil {
		return err
	}

	var result m.ContextResult

	if len(args) != locateArgCount {
		result = m.ContextError(usageMessage(cmd))
	} else {
		result, err = workflow.Locate(cmd.Context(), domain.LocateArgs{
			Path:      m.Path(args[0]),
			LineStart: args[1],
			LineEnd:   args[2],
			Language:  language,
		})
		if err != nil {
			return err
		}
	}

	if err := ui.DisplayContext(cmd.Context(), result); err != nil {
		return err
	}

	if result.Failed() && viper.GetBool(strictExitConfigKey) {
		return errors.New(result.Error)
	}

	return nil
}

func usageMessage(cmd *cobra.Command) string {
	return fmt.Sprintf("Usage: %s <file_path> <line_start> <line_end>", cmd.Root().Name())
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&formatFlag, formatFlagName, "f",
			defaultFormat,
			"output format: json, yaml or table",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(formatFlagName), formatConfigKey)

	cmd.PersistentFlags().BoolVar(&strictExitFlag, strictExitFlagName, defaultStrictExit, "exit with status 1 when the result is an error")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(strictExitFlagName), strictExitConfigKey)

	cmd.PersistentFlags().StringVarP(&languageFlag, languageFlagName, "l", defaultLanguage, "source language: python, go or javascript (default: from extension)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(languageFlagName), languageConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", nil, "exclude diff files matching a doublestar glob (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, defaultLogFilename, "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func newUI(cmd *cobra.Command) (controller.UI, error) {
	format, err := controller.ParseFormat(viper.GetString(formatConfigKey))
	if err != nil {
		return nil, err
	}

	return controller.NewUI(cmd, format), nil
}

func languageOption() (m.Language, error) {
	name := viper.GetString(languageConfigKey)

	language, ok := m.ParseLanguage(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, name)
	}

	return language, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
