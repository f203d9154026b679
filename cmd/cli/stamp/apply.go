package stamp

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/stamp/internal/stamp/dependencies"
	"github.com/temirov/stamp/internal/stamp/rename"
	"github.com/temirov/stamp/internal/stamp/shared"
	"github.com/temirov/stamp/internal/utils"
)

const (
	applyUseConstant                     = "apply [root ...]"
	applyShortDescriptionConstant        = "Prepend the configured prefix to every eligible file name"
	applyLongDescriptionConstant         = "apply walks the provided roots, collects every regular non-hidden file, and prepends the prefix to each base name that does not already carry it."
	applyPrefixFlagNameConstant          = "prefix"
	applyPrefixFlagDescriptionConstant   = "Prefix to prepend to file base names"
	applyDryRunFlagNameConstant          = "dry-run"
	applyDryRunFlagDescriptionConstant   = "Preview rename actions without making changes"
	applyAssumeYesFlagNameConstant       = "yes"
	applyAssumeYesFlagShorthandConstant  = "y"
	applyAssumeYesDescriptionConstant    = "Automatically confirm the rename prompt"
	applyStrictFlagNameConstant          = "strict"
	applyStrictFlagDescriptionConstant   = "Exit non-zero when any individual rename failed"
	applyIntervalFlagNameConstant        = "progress-interval"
	applyIntervalFlagDescriptionConstant = "Number of successful renames between progress lines"
	applyFailuresErrorMessageConstant    = "one or more files could not be renamed"
	applyCompletedLogMessageConstant     = "stamp apply completed"
	logFieldRenamedConstant              = "renamed"
	logFieldSkippedConstant              = "skipped"
	logFieldFailedConstant               = "failed"
	logFieldPrefixConstant               = "prefix"
)

// ApplyCommandBuilder assembles the apply command.
type ApplyCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	Discoverer            shared.FileDiscoverer
	FileSystem            shared.FileSystem
	PrompterFactory       PrompterFactory
}

// Build constructs the apply command.
func (builder *ApplyCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   applyUseConstant,
		Short: applyShortDescriptionConstant,
		Long:  applyLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(applyPrefixFlagNameConstant, "", applyPrefixFlagDescriptionConstant)
	command.Flags().Bool(applyDryRunFlagNameConstant, false, applyDryRunFlagDescriptionConstant)
	command.Flags().BoolP(applyAssumeYesFlagNameConstant, applyAssumeYesFlagShorthandConstant, false, applyAssumeYesDescriptionConstant)
	command.Flags().Bool(applyStrictFlagNameConstant, false, applyStrictFlagDescriptionConstant)
	command.Flags().Int(applyIntervalFlagNameConstant, 0, applyIntervalFlagDescriptionConstant)

	return command, nil
}

func (builder *ApplyCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	prefix := configuration.Prefix
	if command.Flags().Changed(applyPrefixFlagNameConstant) {
		prefix, _ = command.Flags().GetString(applyPrefixFlagNameConstant)
	}

	strict := configuration.Strict
	if command.Flags().Changed(applyStrictFlagNameConstant) {
		strict, _ = command.Flags().GetBool(applyStrictFlagNameConstant)
	}

	progressInterval := configuration.ProgressInterval
	if command.Flags().Changed(applyIntervalFlagNameConstant) {
		progressInterval, _ = command.Flags().GetInt(applyIntervalFlagNameConstant)
	}

	dryRun, _ := command.Flags().GetBool(applyDryRunFlagNameConstant)
	assumeYes, _ := command.Flags().GetBool(applyAssumeYesFlagNameConstant)

	roots, rootsError := requireRoots(command, arguments, configuration.Roots)
	if rootsError != nil {
		return rootsError
	}

	renameDependencies := rename.Dependencies{
		Discoverer: dependencies.ResolveFileDiscoverer(builder.Discoverer),
		FileSystem: dependencies.ResolveFileSystem(builder.FileSystem),
		Prompter:   resolvePrompter(builder.PrompterFactory, command),
		Output:     utils.NewFlushingWriter(command.OutOrStdout()),
		Errors:     command.ErrOrStderr(),
	}

	renameOptions := rename.Options{
		Prefix:           prefix,
		Roots:            roots,
		DryRun:           dryRun,
		AssumeYes:        assumeYes,
		ProgressInterval: progressInterval,
	}

	summary, executionError := rename.Execute(command.Context(), renameDependencies, renameOptions)
	if executionError != nil {
		return executionError
	}

	logger := resolveLogger(builder.LoggerProvider)
	logger.Info(
		applyCompletedLogMessageConstant,
		zap.String(logFieldPrefixConstant, prefix),
		zap.Int(logFieldRenamedConstant, summary.RenamedCount),
		zap.Int(logFieldSkippedConstant, summary.SkippedCount),
		zap.Int(logFieldFailedConstant, summary.FailedCount()),
	)

	if strict && summary.HasFailures() {
		return errors.New(applyFailuresErrorMessageConstant)
	}
	return nil
}

func (builder *ApplyCommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{}
	}
	return builder.ConfigurationProvider()
}
