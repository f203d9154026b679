package check

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/stamp/internal/stamp/dependencies"
	"github.com/temirov/stamp/internal/stamp/shared"
	"github.com/temirov/stamp/internal/utils"
	pathutils "github.com/temirov/stamp/internal/utils/path"
)

const (
	commandUseConstant               = "check [root ...]"
	commandShortDescriptionConstant  = "Verify the tree and configuration are ready for stamping"
	commandLongDescriptionConstant   = "check validates the prefix configuration, root directories, and writability before any rename is attempted."
	prefixFlagNameConstant           = "prefix"
	prefixFlagDescriptionConstant    = "Prefix whose readiness should be assessed"
	missingRootsMessageConstant      = "no roots provided; specify roots as arguments or configure defaults"
	failedChecksMessageConstant      = "readiness check reported failures"
	checkCompletedLogMessageConstant = "readiness check completed"
	logFieldPassedConstant           = "passed"
	logFieldFailedConstant           = "failed"
	logFieldWarningsConstant         = "warnings"
)

// Configuration captures the configurable inputs of the check command.
type Configuration struct {
	Prefix string
	Roots  []string
}

// CommandBuilder assembles the check command.
type CommandBuilder struct {
	LoggerProvider        func() *zap.Logger
	ConfigurationProvider func() Configuration
	Discoverer            shared.FileDiscoverer
	FileSystem            shared.ProbingFileSystem
}

var checkRootPathSanitizer = pathutils.NewRootPathSanitizer()

// Build constructs the check command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(prefixFlagNameConstant, "", prefixFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()

	prefix := configuration.Prefix
	if command.Flags().Changed(prefixFlagNameConstant) {
		prefix, _ = command.Flags().GetString(prefixFlagNameConstant)
	}

	roots := checkRootPathSanitizer.Sanitize(arguments)
	if len(roots) == 0 {
		roots = checkRootPathSanitizer.Sanitize(configuration.Roots)
	}
	if len(roots) == 0 {
		_ = command.Help()
		return errors.New(missingRootsMessageConstant)
	}

	service := NewService(Dependencies{
		Discoverer: dependencies.ResolveFileDiscoverer(builder.Discoverer),
		FileSystem: dependencies.ResolveProbingFileSystem(builder.FileSystem),
		Reporter:   shared.NewWriterReporter(utils.NewFlushingWriter(command.OutOrStdout())),
	})

	summary := service.Run(command.Context(), Options{Prefix: prefix, Roots: roots})

	logger := builder.resolveLogger()
	logger.Info(
		checkCompletedLogMessageConstant,
		zap.Int(logFieldPassedConstant, summary.PassedCount()),
		zap.Int(logFieldFailedConstant, summary.FailedCount()),
		zap.Int(logFieldWarningsConstant, summary.WarningCount()),
	)

	if summary.FailedCount() > 0 {
		return errors.New(failedChecksMessageConstant)
	}
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return Configuration{}
	}
	return builder.ConfigurationProvider()
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
