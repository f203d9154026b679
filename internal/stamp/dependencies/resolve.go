package dependencies

import (
	"github.com/temirov/stamp/internal/stamp/discovery"
	"github.com/temirov/stamp/internal/stamp/filesystem"
	"github.com/temirov/stamp/internal/stamp/shared"
)

// ResolveFileDiscoverer returns the provided discoverer or the filesystem-backed default.
func ResolveFileDiscoverer(candidate shared.FileDiscoverer) shared.FileDiscoverer {
	if candidate != nil {
		return candidate
	}
	return discovery.NewFilesystemFileDiscoverer()
}

// ResolveFileSystem returns the provided filesystem or the operating system default.
func ResolveFileSystem(candidate shared.FileSystem) shared.FileSystem {
	if candidate != nil {
		return candidate
	}
	return filesystem.OSFileSystem{}
}

// ResolveProbingFileSystem returns the provided probing filesystem or the operating system default.
func ResolveProbingFileSystem(candidate shared.ProbingFileSystem) shared.ProbingFileSystem {
	if candidate != nil {
		return candidate
	}
	return filesystem.OSFileSystem{}
}
