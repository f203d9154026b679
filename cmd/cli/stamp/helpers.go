package stamp

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/stamp/internal/stamp/prompt"
	"github.com/temirov/stamp/internal/stamp/shared"
	pathutils "github.com/temirov/stamp/internal/utils/path"
)

const (
	missingRootsErrorMessageConstant = "no roots provided; specify roots as arguments or configure defaults"
)

var rootPathSanitizer = pathutils.NewRootPathSanitizerWithConfiguration(nil, pathutils.RootPathSanitizerConfiguration{
	ExcludeBooleanLiteralCandidates: true,
	PruneNestedPaths:                true,
})

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// PrompterFactory creates confirmation prompters scoped to a Cobra command.
type PrompterFactory func(*cobra.Command) shared.ConfirmationPrompter

func determineRoots(arguments []string, configuredRoots []string) []string {
	roots := rootPathSanitizer.Sanitize(arguments)
	if len(roots) > 0 {
		return roots
	}

	configured := rootPathSanitizer.Sanitize(configuredRoots)
	if len(configured) > 0 {
		return configured
	}

	return nil
}

func requireRoots(command *cobra.Command, arguments []string, configuredRoots []string) ([]string, error) {
	resolvedRoots := determineRoots(arguments, configuredRoots)
	if len(resolvedRoots) > 0 {
		return resolvedRoots, nil
	}

	if command != nil {
		_ = command.Help()
	}

	return nil, errors.New(missingRootsErrorMessageConstant)
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolvePrompter(factory PrompterFactory, command *cobra.Command) shared.ConfirmationPrompter {
	if factory != nil {
		prompterInstance := factory(command)
		if prompterInstance != nil {
			return prompterInstance
		}
	}
	return prompt.NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout())
}
