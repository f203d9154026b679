package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/stamp/internal/stamp/discovery"
)

const (
	visibleFileNameConstant          = "a.txt"
	nestedDirectoryNameConstant      = "sub"
	nestedFileNameConstant           = "b.txt"
	hiddenDirectoryNameConstant      = ".hidden"
	hiddenDirectoryFileNameConstant  = "c.txt"
	hiddenFileNameConstant           = ".secret.txt"
	missingRootDirectoryNameConstant = "does-not-exist"
	testFilePermissionsConstant      = 0o644
	testDirectoryPermissionsConstant = 0o755
)

func createFile(testInstance *testing.T, path string) {
	testInstance.Helper()
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(path), testDirectoryPermissionsConstant))
	require.NoError(testInstance, os.WriteFile(path, []byte(path), testFilePermissionsConstant))
}

func TestFilesystemFileDiscovererCollectsRegularVisibleFiles(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()

	createFile(testInstance, filepath.Join(rootDirectory, visibleFileNameConstant))
	createFile(testInstance, filepath.Join(rootDirectory, nestedDirectoryNameConstant, nestedFileNameConstant))
	createFile(testInstance, filepath.Join(rootDirectory, hiddenDirectoryNameConstant, hiddenDirectoryFileNameConstant))
	createFile(testInstance, filepath.Join(rootDirectory, nestedDirectoryNameConstant, hiddenFileNameConstant))

	fileDiscoverer := discovery.NewFilesystemFileDiscoverer()
	entries, discoveryError := fileDiscoverer.DiscoverFiles([]string{rootDirectory})
	require.NoError(testInstance, discoveryError)

	discoveredPaths := make([]string, 0, len(entries))
	for _, entry := range entries {
		discoveredPaths = append(discoveredPaths, entry.Path)
	}

	require.Equal(testInstance, []string{
		filepath.Join(rootDirectory, visibleFileNameConstant),
		filepath.Join(rootDirectory, nestedDirectoryNameConstant, nestedFileNameConstant),
	}, discoveredPaths)

	require.Equal(testInstance, visibleFileNameConstant, entries[0].BaseName)
	require.Equal(testInstance, rootDirectory, entries[0].Directory)
}

func TestFilesystemFileDiscovererDeduplicatesOverlappingRoots(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	nestedRoot := filepath.Join(rootDirectory, nestedDirectoryNameConstant)

	createFile(testInstance, filepath.Join(nestedRoot, nestedFileNameConstant))

	fileDiscoverer := discovery.NewFilesystemFileDiscoverer()
	entries, discoveryError := fileDiscoverer.DiscoverFiles([]string{rootDirectory, nestedRoot})
	require.NoError(testInstance, discoveryError)
	require.Len(testInstance, entries, 1)
}

func TestFilesystemFileDiscovererRejectsMissingRoot(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	missingRoot := filepath.Join(rootDirectory, missingRootDirectoryNameConstant)

	fileDiscoverer := discovery.NewFilesystemFileDiscoverer()
	entries, discoveryError := fileDiscoverer.DiscoverFiles([]string{missingRoot})
	require.Error(testInstance, discoveryError)
	require.Nil(testInstance, entries)
	require.Contains(testInstance, discoveryError.Error(), missingRoot)
}

func TestFilesystemFileDiscovererRejectsFileRoot(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	filePath := filepath.Join(rootDirectory, visibleFileNameConstant)
	createFile(testInstance, filePath)

	fileDiscoverer := discovery.NewFilesystemFileDiscoverer()
	_, discoveryError := fileDiscoverer.DiscoverFiles([]string{filePath})
	require.Error(testInstance, discoveryError)
}
