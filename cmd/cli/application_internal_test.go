package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	applyCommandNameConstant         = "apply"
	planCommandNameConstant          = "plan"
	checkCommandNameConstant         = "check"
	assumeYesFlagConstant            = "--yes"
	strictFlagConstant               = "--strict"
	testPendingFileNameConstant      = "report.txt"
	testPrefixedFileNameConstant     = "ST6_report.txt"
	testHiddenDirectoryNameConstant  = ".git"
	testHiddenFileNameConstant       = "config"
	testFilePermissionsConstant      = 0o644
	testDirectoryPermissionsConstant = 0o755
	missingRootDirectoryNameConstant = "absent"
)

func newTestApplication(arguments ...string) (*Application, *bytes.Buffer, *bytes.Buffer) {
	application := NewApplication()
	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	application.rootCommand.SetOut(outputBuffer)
	application.rootCommand.SetErr(errorBuffer)
	application.rootCommand.SetArgs(arguments)
	return application, outputBuffer, errorBuffer
}

func TestApplicationApplyUsesEmbeddedDefaultPrefix(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, testPendingFileNameConstant), nil, testFilePermissionsConstant))

	hiddenDirectoryPath := filepath.Join(rootDirectory, testHiddenDirectoryNameConstant)
	require.NoError(testInstance, os.MkdirAll(hiddenDirectoryPath, testDirectoryPermissionsConstant))
	require.NoError(testInstance, os.WriteFile(filepath.Join(hiddenDirectoryPath, testHiddenFileNameConstant), nil, testFilePermissionsConstant))

	application, outputBuffer, _ := newTestApplication(applyCommandNameConstant, rootDirectory, assumeYesFlagConstant)
	require.NoError(testInstance, application.Execute())

	_, renamedStatError := os.Stat(filepath.Join(rootDirectory, testPrefixedFileNameConstant))
	require.NoError(testInstance, renamedStatError)

	_, hiddenStatError := os.Stat(filepath.Join(hiddenDirectoryPath, testHiddenFileNameConstant))
	require.NoError(testInstance, hiddenStatError)

	require.Contains(testInstance, outputBuffer.String(), "Renamed 1 file(s); skipped 0 already prefixed; 0 failure(s).")
}

func TestApplicationPlanLeavesTreeUntouched(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, testPendingFileNameConstant), nil, testFilePermissionsConstant))

	application, outputBuffer, _ := newTestApplication(planCommandNameConstant, rootDirectory)
	require.NoError(testInstance, application.Execute())

	require.Contains(testInstance, outputBuffer.String(), "PLAN-OK")

	_, originalStatError := os.Stat(filepath.Join(rootDirectory, testPendingFileNameConstant))
	require.NoError(testInstance, originalStatError)
}

func TestApplicationCheckFailsOnMissingRoot(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	missingRoot := filepath.Join(rootDirectory, missingRootDirectoryNameConstant)

	application, _, _ := newTestApplication(checkCommandNameConstant, missingRoot)
	require.Error(testInstance, application.Execute())
}

func TestApplicationApplyWithoutRootsPrintsHelpAndFails(testInstance *testing.T) {
	application, _, _ := newTestApplication(applyCommandNameConstant, assumeYesFlagConstant)
	require.Error(testInstance, application.Execute())
}

func TestApplicationApplyStrictFailsWhenTargetExists(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, testPendingFileNameConstant), nil, testFilePermissionsConstant))
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, testPrefixedFileNameConstant), nil, testFilePermissionsConstant))

	application, outputBuffer, _ := newTestApplication(applyCommandNameConstant, rootDirectory, assumeYesFlagConstant, strictFlagConstant)
	require.Error(testInstance, application.Execute())
	require.Contains(testInstance, outputBuffer.String(), "1 failure(s)")
}

func TestApplicationApplyWithoutStrictSucceedsDespiteFailure(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, testPendingFileNameConstant), nil, testFilePermissionsConstant))
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, testPrefixedFileNameConstant), nil, testFilePermissionsConstant))

	application, outputBuffer, _ := newTestApplication(applyCommandNameConstant, rootDirectory, assumeYesFlagConstant)
	require.NoError(testInstance, application.Execute())
	require.Contains(testInstance, outputBuffer.String(), "1 failure(s)")
}

func TestApplicationRootCommandSucceeds(testInstance *testing.T) {
	application, _, _ := newTestApplication()
	require.NoError(testInstance, application.Execute())
}
