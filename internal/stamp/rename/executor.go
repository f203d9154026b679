package rename

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/stamp/internal/stamp/plan"
	"github.com/temirov/stamp/internal/stamp/shared"
)

const (
	planReadyMessageTemplateConstant        = "PLAN-OK: %s -> %s\n"
	planSkipPrefixedMessageTemplateConstant = "PLAN-SKIP (already prefixed): %s\n"
	planSummaryMessageTemplateConstant      = "Planned %d rename(s); %d already prefixed.\n"
	confirmationPromptTemplateConstant      = "Prepend %q to %d file(s) under %s? [y/N] "
	promptRootSeparatorConstant             = ", "
	abortedMessageConstant                  = "SKIP: run aborted before any rename\n"
	progressMessageTemplateConstant         = "Progress: %d of %d files renamed\n"
	renameFailureMessageTemplateConstant    = "ERROR: rename failed for %s: %s\n"
	summaryMessageTemplateConstant          = "Renamed %d file(s); skipped %d already prefixed; %d failure(s).\n"
	summaryFailureDetailTemplateConstant    = "FAILED: %s (%s)\n"
	targetExistsFailureReasonConstant       = "target already exists"
	missingFileSystemFailureReasonConstant  = "filesystem unavailable"
	defaultProgressIntervalConstant         = 50
	promptFailureMessageTemplateConstant    = "ERROR: confirmation prompt failed: %s\n"
	discovererUnavailableMessageConstant    = "file discoverer unavailable"
)

// Options configures a bulk prefix rename execution.
type Options struct {
	Prefix           string
	Roots            []string
	DryRun           bool
	AssumeYes        bool
	ProgressInterval int
}

// Failure records one file that could not be renamed.
type Failure struct {
	Path   string
	Reason string
}

// Summary aggregates the outcome of a bulk prefix rename run.
type Summary struct {
	PlannedCount int
	RenamedCount int
	SkippedCount int
	Failures     []Failure
}

// FailedCount returns the number of files that could not be renamed.
func (summary Summary) FailedCount() int {
	return len(summary.Failures)
}

// HasFailures reports whether any file failed to rename.
func (summary Summary) HasFailures() bool {
	return len(summary.Failures) > 0
}

// Dependencies supplies collaborators required to execute bulk renames.
type Dependencies struct {
	Discoverer shared.FileDiscoverer
	FileSystem shared.FileSystem
	Prompter   shared.ConfirmationPrompter
	Output     io.Writer
	Errors     io.Writer
}

// Executor performs the collect-then-act bulk prefix rename workflow.
type Executor struct {
	dependencies Dependencies
}

// NewExecutor constructs an Executor from the provided dependencies.
func NewExecutor(dependencies Dependencies) *Executor {
	return &Executor{dependencies: dependencies}
}

// Execute enumerates eligible files under the configured roots and prepends
// the prefix to each base name. Configuration problems (invalid prefix,
// missing root) are returned as errors before any mutation; per-file rename
// failures are recorded in the summary and never abort the run.
func (executor *Executor) Execute(executionContext context.Context, options Options) (Summary, error) {
	prefixPlanner, plannerError := plan.NewPrefixPlanner(options.Prefix)
	if plannerError != nil {
		return Summary{}, plannerError
	}

	if executor.dependencies.Discoverer == nil {
		return Summary{}, errors.New(discovererUnavailableMessageConstant)
	}

	entries, discoveryError := executor.dependencies.Discoverer.DiscoverFiles(options.Roots)
	if discoveryError != nil {
		return Summary{}, discoveryError
	}

	plans := prefixPlanner.PlanAll(entries)

	summary := Summary{}
	for _, filePlan := range plans {
		if filePlan.Action == plan.ActionRename {
			summary.PlannedCount++
		}
	}

	if options.DryRun {
		executor.printPlans(plans)
		executor.printfOutput(planSummaryMessageTemplateConstant, summary.PlannedCount, len(plans)-summary.PlannedCount)
		summary.SkippedCount = len(plans) - summary.PlannedCount
		return summary, nil
	}

	if summary.PlannedCount > 0 && !options.AssumeYes && executor.dependencies.Prompter != nil {
		prompt := fmt.Sprintf(confirmationPromptTemplateConstant, prefixPlanner.Prefix(), summary.PlannedCount, strings.Join(options.Roots, promptRootSeparatorConstant))
		confirmationResult, promptError := executor.dependencies.Prompter.Confirm(prompt)
		if promptError != nil {
			executor.printfError(promptFailureMessageTemplateConstant, promptError)
			return summary, nil
		}
		if !confirmationResult.Confirmed {
			executor.printfOutput(abortedMessageConstant)
			return summary, nil
		}
	}

	progressInterval := options.ProgressInterval
	if progressInterval <= 0 {
		progressInterval = defaultProgressIntervalConstant
	}

	for _, filePlan := range plans {
		if filePlan.Action == plan.ActionSkipAlreadyPrefixed {
			summary.SkippedCount++
			continue
		}

		failureReason, renamed := executor.renameFile(filePlan)
		if !renamed {
			summary.Failures = append(summary.Failures, Failure{Path: filePlan.Entry.Path, Reason: failureReason})
			executor.printfError(renameFailureMessageTemplateConstant, filePlan.Entry.Path, failureReason)
			continue
		}

		summary.RenamedCount++
		if summary.RenamedCount%progressInterval == 0 {
			executor.printfOutput(progressMessageTemplateConstant, summary.RenamedCount, summary.PlannedCount)
		}
	}

	executor.printSummary(summary)
	return summary, nil
}

// Execute performs the bulk rename workflow using transient executor state.
func Execute(executionContext context.Context, dependencies Dependencies, options Options) (Summary, error) {
	return NewExecutor(dependencies).Execute(executionContext, options)
}

func (executor *Executor) renameFile(filePlan plan.FilePlan) (string, bool) {
	if executor.dependencies.FileSystem == nil {
		return missingFileSystemFailureReasonConstant, false
	}

	if _, targetStatError := executor.dependencies.FileSystem.Stat(filePlan.TargetPath); targetStatError == nil {
		return targetExistsFailureReasonConstant, false
	}

	if renameError := executor.dependencies.FileSystem.Rename(filePlan.Entry.Path, filePlan.TargetPath); renameError != nil {
		return renameError.Error(), false
	}

	return "", true
}

func (executor *Executor) printPlans(plans []plan.FilePlan) {
	for _, filePlan := range plans {
		switch filePlan.Action {
		case plan.ActionRename:
			executor.printfOutput(planReadyMessageTemplateConstant, filePlan.Entry.Path, filePlan.TargetPath)
		case plan.ActionSkipAlreadyPrefixed:
			executor.printfOutput(planSkipPrefixedMessageTemplateConstant, filePlan.Entry.Path)
		}
	}
}

func (executor *Executor) printSummary(summary Summary) {
	executor.printfOutput(summaryMessageTemplateConstant, summary.RenamedCount, summary.SkippedCount, summary.FailedCount())
	for _, failure := range summary.Failures {
		executor.printfOutput(summaryFailureDetailTemplateConstant, failure.Path, failure.Reason)
	}
}

func (executor *Executor) printfOutput(format string, arguments ...any) {
	if executor.dependencies.Output == nil {
		return
	}
	fmt.Fprintf(executor.dependencies.Output, format, arguments...)
}

func (executor *Executor) printfError(format string, arguments ...any) {
	if executor.dependencies.Errors == nil {
		return
	}
	fmt.Fprintf(executor.dependencies.Errors, format, arguments...)
}
