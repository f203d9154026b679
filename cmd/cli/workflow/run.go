package workflow

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/stamp/internal/stamp/dependencies"
	"github.com/temirov/stamp/internal/stamp/shared"
	"github.com/temirov/stamp/internal/utils"
	"github.com/temirov/stamp/internal/workflow"
)

const (
	workflowUseConstant                    = "workflow [configuration-file]"
	workflowShortDescriptionConstant       = "Run a declarative file of plan, apply, and check steps"
	workflowLongDescriptionConstant        = "workflow loads a YAML step file and executes its operations sequentially without prompting."
	configurationPathSuffixConstant        = ".configuration_path"
	maximumPositionalArgumentCountConstant = 1
)

// CommandConfiguration captures the persisted configuration of the workflow command.
type CommandConfiguration struct {
	ConfigurationPath string `mapstructure:"configuration_path"`
}

// DefaultConfigurationValues returns configuration defaults scoped beneath the provided key.
func DefaultConfigurationValues(configurationKey string) map[string]any {
	return map[string]any{
		configurationKey + configurationPathSuffixConstant: "",
	}
}

// CommandBuilder assembles the workflow command.
type CommandBuilder struct {
	LoggerProvider        func() *zap.Logger
	ConfigurationProvider func() CommandConfiguration
	StepDefaultsProvider  func() workflow.StepOptions
	Discoverer            shared.FileDiscoverer
	FileSystem            shared.ProbingFileSystem
}

// Build constructs the workflow command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   workflowUseConstant,
		Short: workflowShortDescriptionConstant,
		Long:  workflowLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(maximumPositionalArgumentCountConstant),
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configurationPath := ""
	if builder.ConfigurationProvider != nil {
		configurationPath = builder.ConfigurationProvider().ConfigurationPath
	}
	if len(arguments) > 0 && len(strings.TrimSpace(arguments[0])) > 0 {
		configurationPath = arguments[0]
	}

	configuration, loadError := workflow.LoadConfiguration(configurationPath)
	if loadError != nil {
		return loadError
	}

	stepDefaults := workflow.StepOptions{}
	if builder.StepDefaultsProvider != nil {
		stepDefaults = builder.StepDefaultsProvider()
	}

	executor := workflow.NewExecutor(workflow.Dependencies{
		Discoverer: dependencies.ResolveFileDiscoverer(builder.Discoverer),
		FileSystem: dependencies.ResolveProbingFileSystem(builder.FileSystem),
		Output:     utils.NewFlushingWriter(command.OutOrStdout()),
		Errors:     command.ErrOrStderr(),
		Logger:     builder.resolveLogger(),
	}, stepDefaults)

	return executor.Execute(command.Context(), configuration)
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
