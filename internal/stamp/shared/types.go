package shared

import (
	"io/fs"
	"time"
)

const (
	// HiddenNamePrefixConstant marks path segments excluded from discovery.
	HiddenNamePrefixConstant = "."
)

// FileEntry describes a regular file eligible for prefix stamping.
type FileEntry struct {
	// Path is the absolute path of the file.
	Path string
	// Directory is the parent directory of the file.
	Directory string
	// BaseName is the final path segment of the file.
	BaseName string
}

// Clock abstracts time acquisition so reports can carry deterministic timestamps in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FileSystem exposes filesystem operations required by stamping services.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Rename(oldPath string, newPath string) error
}

// ProbingFileSystem extends FileSystem with the mutations used by writability probes.
type ProbingFileSystem interface {
	FileSystem
	WriteFile(path string, data []byte, permissions fs.FileMode) error
	Remove(path string) error
}

// ConfirmationResult captures the outcome of a user confirmation prompt.
type ConfirmationResult struct {
	Confirmed bool
}

// ConfirmationPrompter collects user confirmations prior to mutating actions.
type ConfirmationPrompter interface {
	Confirm(prompt string) (ConfirmationResult, error)
}

// FileDiscoverer locates eligible files for bulk operations.
type FileDiscoverer interface {
	DiscoverFiles(roots []string) ([]FileEntry, error)
}
