package stamp

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/stamp/internal/stamp/dependencies"
	"github.com/temirov/stamp/internal/stamp/rename"
	"github.com/temirov/stamp/internal/stamp/shared"
	"github.com/temirov/stamp/internal/utils"
)

const (
	planUseConstant                   = "plan [root ...]"
	planShortDescriptionConstant      = "List the renames apply would perform without mutating anything"
	planLongDescriptionConstant       = "plan enumerates every eligible file under the provided roots and prints the rename each would receive, leaving the tree untouched."
	planPrefixFlagNameConstant        = "prefix"
	planPrefixFlagDescriptionConstant = "Prefix to evaluate against file base names"
	planCompletedLogMessageConstant   = "stamp plan completed"
	logFieldPlannedConstant           = "planned"
)

// PlanCommandBuilder assembles the plan command.
type PlanCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	Discoverer            shared.FileDiscoverer
	FileSystem            shared.FileSystem
}

// Build constructs the plan command.
func (builder *PlanCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   planUseConstant,
		Short: planShortDescriptionConstant,
		Long:  planLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(planPrefixFlagNameConstant, "", planPrefixFlagDescriptionConstant)

	return command, nil
}

func (builder *PlanCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	prefix := configuration.Prefix
	if command.Flags().Changed(planPrefixFlagNameConstant) {
		prefix, _ = command.Flags().GetString(planPrefixFlagNameConstant)
	}

	roots, rootsError := requireRoots(command, arguments, configuration.Roots)
	if rootsError != nil {
		return rootsError
	}

	renameDependencies := rename.Dependencies{
		Discoverer: dependencies.ResolveFileDiscoverer(builder.Discoverer),
		FileSystem: dependencies.ResolveFileSystem(builder.FileSystem),
		Output:     utils.NewFlushingWriter(command.OutOrStdout()),
		Errors:     command.ErrOrStderr(),
	}

	renameOptions := rename.Options{
		Prefix: prefix,
		Roots:  roots,
		DryRun: true,
	}

	summary, executionError := rename.Execute(command.Context(), renameDependencies, renameOptions)
	if executionError != nil {
		return executionError
	}

	logger := resolveLogger(builder.LoggerProvider)
	logger.Info(
		planCompletedLogMessageConstant,
		zap.String(logFieldPrefixConstant, prefix),
		zap.Int(logFieldPlannedConstant, summary.PlannedCount),
		zap.Int(logFieldSkippedConstant, summary.SkippedCount),
	)

	return nil
}

func (builder *PlanCommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{}
	}
	return builder.ConfigurationProvider()
}
