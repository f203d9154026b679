package pathutils_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/stamp/internal/utils/path"
)

const (
	homeDirectoryConstant       = "/home/operator"
	tildeRelativePathConstant   = "~/projects"
	expandedProjectPathConstant = "/home/operator/projects"
	parentPathConstant          = "/data/archive"
	nestedPathConstant          = "/data/archive/2026"
	siblingPathConstant         = "/data/inbox"
	booleanLiteralConstant      = "true"
	whitespaceArgumentConstant  = "   "
)

func newSanitizerWithStubHome(configuration pathutils.RootPathSanitizerConfiguration) *pathutils.RootPathSanitizer {
	homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return homeDirectoryConstant, nil
	})
	return pathutils.NewRootPathSanitizerWithConfiguration(homeExpander, configuration)
}

func TestSanitizeTrimsAndExpandsHome(testInstance *testing.T) {
	sanitizer := newSanitizerWithStubHome(pathutils.RootPathSanitizerConfiguration{})

	sanitized := sanitizer.Sanitize([]string{whitespaceArgumentConstant, tildeRelativePathConstant})
	require.Equal(testInstance, []string{filepath.Clean(expandedProjectPathConstant)}, sanitized)
}

func TestSanitizeExcludesBooleanLiterals(testInstance *testing.T) {
	sanitizer := newSanitizerWithStubHome(pathutils.RootPathSanitizerConfiguration{ExcludeBooleanLiteralCandidates: true})

	sanitized := sanitizer.Sanitize([]string{booleanLiteralConstant, parentPathConstant})
	require.Equal(testInstance, []string{parentPathConstant}, sanitized)
}

func TestSanitizePrunesNestedPaths(testInstance *testing.T) {
	sanitizer := newSanitizerWithStubHome(pathutils.RootPathSanitizerConfiguration{PruneNestedPaths: true})

	sanitized := sanitizer.Sanitize([]string{parentPathConstant, nestedPathConstant, siblingPathConstant})
	require.Equal(testInstance, []string{parentPathConstant, siblingPathConstant}, sanitized)
}

func TestSanitizeReturnsNilForEmptyInput(testInstance *testing.T) {
	sanitizer := newSanitizerWithStubHome(pathutils.RootPathSanitizerConfiguration{})
	require.Nil(testInstance, sanitizer.Sanitize(nil))
	require.Nil(testInstance, sanitizer.Sanitize([]string{whitespaceArgumentConstant}))
}
