package workflow_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/stamp/internal/stamp/discovery"
	"github.com/temirov/stamp/internal/stamp/filesystem"
	"github.com/temirov/stamp/internal/workflow"
)

const (
	executorTestPrefixConstant       = "ST6_"
	executorPendingFileNameConstant  = "record.txt"
	executorPrefixedFileNameConstant = "ST6_record.txt"
	executorFilePermissionsConstant  = 0o644
)

func newDiskExecutor(outputBuffer *bytes.Buffer, defaults workflow.StepOptions) *workflow.Executor {
	return workflow.NewExecutor(workflow.Dependencies{
		Discoverer: discovery.NewFilesystemFileDiscoverer(),
		FileSystem: filesystem.OSFileSystem{},
		Output:     outputBuffer,
		Errors:     outputBuffer,
	}, defaults)
}

func TestExecutorRunsCheckAndApplySteps(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, executorPendingFileNameConstant), nil, executorFilePermissionsConstant))

	configuration := workflow.Configuration{
		Steps: []workflow.StepConfiguration{
			{Operation: workflow.OperationTypeCheck},
			{Operation: workflow.OperationTypeApply},
		},
	}

	defaults := workflow.StepOptions{Prefix: executorTestPrefixConstant, Roots: []string{rootDirectory}}
	executionError := newDiskExecutor(&bytes.Buffer{}, defaults).Execute(context.Background(), configuration)
	require.NoError(testInstance, executionError)

	_, renamedStatError := os.Stat(filepath.Join(rootDirectory, executorPrefixedFileNameConstant))
	require.NoError(testInstance, renamedStatError)
}

func TestExecutorPlanStepNeverMutates(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, executorPendingFileNameConstant), nil, executorFilePermissionsConstant))

	configuration := workflow.Configuration{
		Steps: []workflow.StepConfiguration{{Operation: workflow.OperationTypePlan}},
	}

	outputBuffer := &bytes.Buffer{}
	defaults := workflow.StepOptions{Prefix: executorTestPrefixConstant, Roots: []string{rootDirectory}}
	executionError := newDiskExecutor(outputBuffer, defaults).Execute(context.Background(), configuration)
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, outputBuffer.String(), "PLAN-OK")

	_, originalStatError := os.Stat(filepath.Join(rootDirectory, executorPendingFileNameConstant))
	require.NoError(testInstance, originalStatError)
}

func TestExecutorStepOptionsOverrideDefaults(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, executorPendingFileNameConstant), nil, executorFilePermissionsConstant))

	configuration := workflow.Configuration{
		Steps: []workflow.StepConfiguration{
			{
				Operation: workflow.OperationTypeApply,
				Options: map[string]any{
					"prefix": "DONE_",
					"roots":  []any{rootDirectory},
				},
			},
		},
	}

	executionError := newDiskExecutor(&bytes.Buffer{}, workflow.StepOptions{Prefix: executorTestPrefixConstant}).Execute(context.Background(), configuration)
	require.NoError(testInstance, executionError)

	_, renamedStatError := os.Stat(filepath.Join(rootDirectory, "DONE_"+executorPendingFileNameConstant))
	require.NoError(testInstance, renamedStatError)
}

func TestExecutorStrictApplyStepFailsWhenTargetExists(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, executorPendingFileNameConstant), nil, executorFilePermissionsConstant))
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, executorPrefixedFileNameConstant), nil, executorFilePermissionsConstant))

	configuration := workflow.Configuration{
		Steps: []workflow.StepConfiguration{
			{
				Operation: workflow.OperationTypeApply,
				Options:   map[string]any{"strict": true},
			},
		},
	}

	defaults := workflow.StepOptions{Prefix: executorTestPrefixConstant, Roots: []string{rootDirectory}}
	executionError := newDiskExecutor(&bytes.Buffer{}, defaults).Execute(context.Background(), configuration)
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "workflow step 1 (apply)")
}

func TestExecutorLenientApplyStepToleratesFailures(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, executorPendingFileNameConstant), nil, executorFilePermissionsConstant))
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, executorPrefixedFileNameConstant), nil, executorFilePermissionsConstant))

	configuration := workflow.Configuration{
		Steps: []workflow.StepConfiguration{{Operation: workflow.OperationTypeApply}},
	}

	defaults := workflow.StepOptions{Prefix: executorTestPrefixConstant, Roots: []string{rootDirectory}}
	executionError := newDiskExecutor(&bytes.Buffer{}, defaults).Execute(context.Background(), configuration)
	require.NoError(testInstance, executionError)
}

func TestExecutorAbortsOnFailedCheckStep(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	missingRoot := filepath.Join(rootDirectory, "absent")

	configuration := workflow.Configuration{
		Steps: []workflow.StepConfiguration{
			{Operation: workflow.OperationTypeCheck},
			{Operation: workflow.OperationTypeApply},
		},
	}

	defaults := workflow.StepOptions{Prefix: executorTestPrefixConstant, Roots: []string{missingRoot}}
	executionError := newDiskExecutor(&bytes.Buffer{}, defaults).Execute(context.Background(), configuration)
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "workflow step 1 (check)")
}

func TestExecutorContinueOnErrorRunsRemainingSteps(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, executorPendingFileNameConstant), nil, executorFilePermissionsConstant))
	missingRoot := filepath.Join(rootDirectory, "absent")

	configuration := workflow.Configuration{
		Steps: []workflow.StepConfiguration{
			{
				Operation:       workflow.OperationTypeCheck,
				Options:         map[string]any{"roots": []any{missingRoot}},
				ContinueOnError: true,
			},
			{Operation: workflow.OperationTypeApply},
		},
	}

	defaults := workflow.StepOptions{Prefix: executorTestPrefixConstant, Roots: []string{rootDirectory}}
	executionError := newDiskExecutor(&bytes.Buffer{}, defaults).Execute(context.Background(), configuration)
	require.NoError(testInstance, executionError)

	_, renamedStatError := os.Stat(filepath.Join(rootDirectory, executorPrefixedFileNameConstant))
	require.NoError(testInstance, renamedStatError)
}
