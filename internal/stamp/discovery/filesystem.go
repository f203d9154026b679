package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/stamp/internal/stamp/shared"
)

const (
	missingRootErrorTemplateConstant      = "root path does not exist: %s"
	rootNotDirectoryErrorTemplateConstant = "root path is not a directory: %s"
	rootResolutionErrorTemplateConstant   = "unable to resolve root path %s: %w"
)

// FilesystemFileDiscoverer locates regular, non-hidden files on disk.
type FilesystemFileDiscoverer struct{}

// NewFilesystemFileDiscoverer constructs a file discoverer backed by filepath.WalkDir.
func NewFilesystemFileDiscoverer() *FilesystemFileDiscoverer {
	return &FilesystemFileDiscoverer{}
}

// DiscoverFiles walks the provided roots and returns every regular file whose
// path contains no hidden segment below its root. The full list is collected
// before any caller mutation so later renames cannot disturb the enumeration.
func (discoverer *FilesystemFileDiscoverer) DiscoverFiles(roots []string) ([]shared.FileEntry, error) {
	seen := make(map[string]struct{})
	var entries []shared.FileEntry

	for _, root := range roots {
		rootInformation, rootStatError := os.Stat(root)
		if rootStatError != nil {
			return nil, fmt.Errorf(missingRootErrorTemplateConstant, root)
		}
		if !rootInformation.IsDir() {
			return nil, fmt.Errorf(rootNotDirectoryErrorTemplateConstant, root)
		}

		absoluteRoot, absoluteError := filepath.Abs(root)
		if absoluteError != nil {
			return nil, fmt.Errorf(rootResolutionErrorTemplateConstant, root, absoluteError)
		}

		walkError := filepath.WalkDir(absoluteRoot, func(path string, directoryEntry fs.DirEntry, entryError error) error {
			if entryError != nil {
				return nil
			}

			if path == absoluteRoot {
				return nil
			}

			if isHiddenName(directoryEntry.Name()) {
				if directoryEntry.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			if !directoryEntry.Type().IsRegular() {
				return nil
			}

			if _, alreadySeen := seen[path]; alreadySeen {
				return nil
			}
			seen[path] = struct{}{}

			entries = append(entries, shared.FileEntry{
				Path:      path,
				Directory: filepath.Dir(path),
				BaseName:  directoryEntry.Name(),
			})
			return nil
		})
		if walkError != nil {
			return nil, walkError
		}
	}

	sort.Slice(entries, func(first int, second int) bool {
		return entries[first].Path < entries[second].Path
	})
	return entries, nil
}

func isHiddenName(name string) bool {
	return strings.HasPrefix(name, shared.HiddenNamePrefixConstant)
}
