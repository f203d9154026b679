package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"

	"github.com/temirov/stamp/internal/check"
	"github.com/temirov/stamp/internal/stamp/rename"
	"github.com/temirov/stamp/internal/stamp/shared"
)

const (
	stepFailureTemplateConstant         = "workflow step %d (%s): %w"
	stepOptionsDecodeTemplateConstant   = "failed to decode step options: %w"
	applyFailuresMessageConstant        = "apply step reported rename failures"
	checkFailuresMessageConstant        = "check step reported failures"
	stepStartedLogMessageConstant       = "workflow step started"
	stepFailedLogMessageConstant        = "workflow step failed"
	logFieldStepIndexConstant           = "step_index"
	logFieldOperationConstant           = "operation"
	mapstructureDecoderTagNameConstant  = "mapstructure"
	decoderConstructionTemplateConstant = "failed to construct step options decoder: %w"
)

// StepOptions captures the declarative options accepted by every workflow operation.
type StepOptions struct {
	Prefix           string   `mapstructure:"prefix"`
	Roots            []string `mapstructure:"roots"`
	DryRun           bool     `mapstructure:"dry_run"`
	Strict           bool     `mapstructure:"strict"`
	ProgressInterval int      `mapstructure:"progress_interval"`
}

// Dependencies supplies collaborators required to execute workflow steps.
type Dependencies struct {
	Discoverer shared.FileDiscoverer
	FileSystem shared.ProbingFileSystem
	Output     io.Writer
	Errors     io.Writer
	Logger     *zap.Logger
}

// Executor runs workflow steps sequentially with shared collaborators.
type Executor struct {
	dependencies Dependencies
	defaults     StepOptions
}

// NewExecutor constructs an Executor applying the provided defaults beneath every step's options.
func NewExecutor(dependencies Dependencies, defaults StepOptions) *Executor {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	return &Executor{dependencies: dependencies, defaults: defaults}
}

// Execute runs every configured step in order. A step failure aborts the
// workflow unless the step opted into continue_on_error.
func (executor *Executor) Execute(executionContext context.Context, configuration Configuration) error {
	for stepIndex, step := range configuration.Steps {
		operation := OperationType(strings.TrimSpace(string(step.Operation)))

		executor.dependencies.Logger.Info(
			stepStartedLogMessageConstant,
			zap.Int(logFieldStepIndexConstant, stepIndex+1),
			zap.String(logFieldOperationConstant, string(operation)),
		)

		stepError := executor.runStep(executionContext, operation, step.Options)
		if stepError == nil {
			continue
		}

		executor.dependencies.Logger.Warn(
			stepFailedLogMessageConstant,
			zap.Int(logFieldStepIndexConstant, stepIndex+1),
			zap.String(logFieldOperationConstant, string(operation)),
			zap.Error(stepError),
		)

		if step.ContinueOnError {
			continue
		}
		return fmt.Errorf(stepFailureTemplateConstant, stepIndex+1, operation, stepError)
	}

	return nil
}

func (executor *Executor) runStep(executionContext context.Context, operation OperationType, rawOptions map[string]any) error {
	stepOptions, decodeError := executor.decodeStepOptions(rawOptions)
	if decodeError != nil {
		return decodeError
	}

	switch operation {
	case OperationTypePlan:
		return executor.runRename(executionContext, stepOptions, true)
	case OperationTypeApply:
		return executor.runRename(executionContext, stepOptions, stepOptions.DryRun)
	case OperationTypeCheck:
		return executor.runCheck(executionContext, stepOptions)
	default:
		return fmt.Errorf(unsupportedOperationTemplateConstant, operation)
	}
}

func (executor *Executor) runRename(executionContext context.Context, stepOptions StepOptions, dryRun bool) error {
	renameDependencies := rename.Dependencies{
		Discoverer: executor.dependencies.Discoverer,
		FileSystem: executor.dependencies.FileSystem,
		Output:     executor.dependencies.Output,
		Errors:     executor.dependencies.Errors,
	}

	renameOptions := rename.Options{
		Prefix:           stepOptions.Prefix,
		Roots:            stepOptions.Roots,
		DryRun:           dryRun,
		AssumeYes:        true,
		ProgressInterval: stepOptions.ProgressInterval,
	}

	summary, executionError := rename.Execute(executionContext, renameDependencies, renameOptions)
	if executionError != nil {
		return executionError
	}

	if stepOptions.Strict && summary.HasFailures() {
		return errors.New(applyFailuresMessageConstant)
	}
	return nil
}

func (executor *Executor) runCheck(executionContext context.Context, stepOptions StepOptions) error {
	checkService := check.NewService(check.Dependencies{
		Discoverer: executor.dependencies.Discoverer,
		FileSystem: executor.dependencies.FileSystem,
		Reporter:   shared.NewWriterReporter(executor.dependencies.Output),
	})

	summary := checkService.Run(executionContext, check.Options{Prefix: stepOptions.Prefix, Roots: stepOptions.Roots})
	if summary.FailedCount() > 0 {
		return errors.New(checkFailuresMessageConstant)
	}
	return nil
}

func (executor *Executor) decodeStepOptions(rawOptions map[string]any) (StepOptions, error) {
	stepOptions := executor.defaults

	if len(rawOptions) == 0 {
		return stepOptions, nil
	}

	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: mapstructureDecoderTagNameConstant,
		Result:  &stepOptions,
	})
	if decoderError != nil {
		return StepOptions{}, fmt.Errorf(decoderConstructionTemplateConstant, decoderError)
	}

	if decodeError := decoder.Decode(rawOptions); decodeError != nil {
		return StepOptions{}, fmt.Errorf(stepOptionsDecodeTemplateConstant, decodeError)
	}

	return stepOptions, nil
}
