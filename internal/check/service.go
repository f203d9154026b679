package check

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/temirov/stamp/internal/stamp/plan"
	"github.com/temirov/stamp/internal/stamp/shared"
)

const (
	prefixCheckNameConstant                 = "prefix configuration"
	rootExistsCheckNameConstant             = "root exists"
	rootWritableCheckNameConstant           = "root writable"
	pendingWorkCheckNameConstant            = "pending work"
	prefixCheckPassDetailTemplateConstant   = "prefix %q"
	rootExistsPassDetailTemplateConstant    = "directory %s"
	rootMissingDetailTemplateConstant       = "root path does not exist: %s"
	rootNotDirectoryDetailTemplateConstant  = "root path is not a directory: %s"
	rootWritablePassDetailTemplateConstant  = "probe file created and removed in %s"
	rootNotWritableDetailTemplateConstant   = "unable to write probe file in %s: %s"
	probeCleanupDetailTemplateConstant      = "probe file in %s could not be removed: %s"
	pendingWorkPassDetailTemplateConstant   = "%d file(s) awaiting prefix"
	pendingWorkWarnDetailConstant           = "no files awaiting prefix; run would be a no-op"
	pendingWorkFailDetailTemplateConstant   = "enumeration failed: %s"
	resultLineTemplateConstant              = "%s: %s (%s)\n"
	summaryLineTemplateConstant             = "Checks passed: %d, failed: %d, warnings: %d at %s\n"
	summaryTimestampLayoutConstant          = time.RFC3339
	writabilityProbeFileNameConstant        = ".stamp-write-probe"
	writabilityProbeFilePermissionsConstant = fs.FileMode(0o600)
)

// Status classifies the outcome of a single readiness check.
type Status string

// Readiness check outcomes.
const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
	StatusWarn Status = "WARN"
)

// Result captures one readiness check outcome.
type Result struct {
	Name    string
	Status  Status
	Details string
}

// Summary aggregates readiness check results.
type Summary struct {
	Results []Result
}

// PassedCount returns the number of passing checks.
func (summary Summary) PassedCount() int {
	return summary.countStatus(StatusPass)
}

// FailedCount returns the number of failing checks.
func (summary Summary) FailedCount() int {
	return summary.countStatus(StatusFail)
}

// WarningCount returns the number of checks that produced warnings.
func (summary Summary) WarningCount() int {
	return summary.countStatus(StatusWarn)
}

func (summary Summary) countStatus(status Status) int {
	count := 0
	for _, result := range summary.Results {
		if result.Status == status {
			count++
		}
	}
	return count
}

// Options configures a readiness assessment.
type Options struct {
	Prefix string
	Roots  []string
}

// Dependencies supplies collaborators required to run readiness checks.
type Dependencies struct {
	Discoverer shared.FileDiscoverer
	FileSystem shared.ProbingFileSystem
	Reporter   shared.Reporter
	Clock      shared.Clock
}

// Service runs the ordered readiness checks and reports their outcomes.
type Service struct {
	dependencies Dependencies
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) *Service {
	if dependencies.Clock == nil {
		dependencies.Clock = shared.SystemClock{}
	}
	return &Service{dependencies: dependencies}
}

// Run executes every readiness check, emits one line per result plus a
// summary line, and returns the aggregated outcomes. The writability probe is
// the only mutation, and its file is always removed.
func (service *Service) Run(executionContext context.Context, options Options) Summary {
	summary := Summary{}

	prefixResult := service.checkPrefix(options.Prefix)
	summary.Results = append(summary.Results, prefixResult)

	rootsUsable := true
	for _, root := range options.Roots {
		existsResult := service.checkRootExists(root)
		summary.Results = append(summary.Results, existsResult)
		if existsResult.Status != StatusPass {
			rootsUsable = false
			continue
		}

		summary.Results = append(summary.Results, service.checkRootWritable(root))
	}

	if prefixResult.Status == StatusPass && rootsUsable {
		summary.Results = append(summary.Results, service.checkPendingWork(options))
	}

	service.printResults(summary)
	return summary
}

func (service *Service) checkPrefix(prefix string) Result {
	if validationError := plan.ValidatePrefix(prefix); validationError != nil {
		return Result{Name: prefixCheckNameConstant, Status: StatusFail, Details: validationError.Error()}
	}
	return Result{
		Name:    prefixCheckNameConstant,
		Status:  StatusPass,
		Details: fmt.Sprintf(prefixCheckPassDetailTemplateConstant, prefix),
	}
}

func (service *Service) checkRootExists(root string) Result {
	rootInformation, statError := service.dependencies.FileSystem.Stat(root)
	if statError != nil {
		return Result{
			Name:    rootExistsCheckNameConstant,
			Status:  StatusFail,
			Details: fmt.Sprintf(rootMissingDetailTemplateConstant, root),
		}
	}
	if !rootInformation.IsDir() {
		return Result{
			Name:    rootExistsCheckNameConstant,
			Status:  StatusFail,
			Details: fmt.Sprintf(rootNotDirectoryDetailTemplateConstant, root),
		}
	}
	return Result{
		Name:    rootExistsCheckNameConstant,
		Status:  StatusPass,
		Details: fmt.Sprintf(rootExistsPassDetailTemplateConstant, root),
	}
}

func (service *Service) checkRootWritable(root string) Result {
	probePath := filepath.Join(root, writabilityProbeFileNameConstant)

	if writeError := service.dependencies.FileSystem.WriteFile(probePath, nil, writabilityProbeFilePermissionsConstant); writeError != nil {
		return Result{
			Name:    rootWritableCheckNameConstant,
			Status:  StatusFail,
			Details: fmt.Sprintf(rootNotWritableDetailTemplateConstant, root, writeError),
		}
	}

	if removeError := service.dependencies.FileSystem.Remove(probePath); removeError != nil {
		return Result{
			Name:    rootWritableCheckNameConstant,
			Status:  StatusWarn,
			Details: fmt.Sprintf(probeCleanupDetailTemplateConstant, root, removeError),
		}
	}

	return Result{
		Name:    rootWritableCheckNameConstant,
		Status:  StatusPass,
		Details: fmt.Sprintf(rootWritablePassDetailTemplateConstant, root),
	}
}

func (service *Service) checkPendingWork(options Options) Result {
	prefixPlanner, plannerError := plan.NewPrefixPlanner(options.Prefix)
	if plannerError != nil {
		return Result{Name: pendingWorkCheckNameConstant, Status: StatusFail, Details: plannerError.Error()}
	}

	entries, discoveryError := service.dependencies.Discoverer.DiscoverFiles(options.Roots)
	if discoveryError != nil {
		return Result{
			Name:    pendingWorkCheckNameConstant,
			Status:  StatusFail,
			Details: fmt.Sprintf(pendingWorkFailDetailTemplateConstant, discoveryError),
		}
	}

	pendingCount := 0
	for _, filePlan := range prefixPlanner.PlanAll(entries) {
		if filePlan.Action == plan.ActionRename {
			pendingCount++
		}
	}

	if pendingCount == 0 {
		return Result{Name: pendingWorkCheckNameConstant, Status: StatusWarn, Details: pendingWorkWarnDetailConstant}
	}

	return Result{
		Name:    pendingWorkCheckNameConstant,
		Status:  StatusPass,
		Details: fmt.Sprintf(pendingWorkPassDetailTemplateConstant, pendingCount),
	}
}

func (service *Service) printResults(summary Summary) {
	if service.dependencies.Reporter == nil {
		return
	}
	for _, result := range summary.Results {
		service.dependencies.Reporter.Printf(resultLineTemplateConstant, result.Status, result.Name, result.Details)
	}
	assessedAt := service.dependencies.Clock.Now().Format(summaryTimestampLayoutConstant)
	service.dependencies.Reporter.Printf(summaryLineTemplateConstant, summary.PassedCount(), summary.FailedCount(), summary.WarningCount(), assessedAt)
}
