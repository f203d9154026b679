package plan

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/temirov/stamp/internal/stamp/shared"
)

const (
	emptyPrefixMessageConstant             = "prefix must not be empty"
	prefixContainsSeparatorMessageConstant = "prefix must not contain a path separator"
	forwardSlashConstant                   = "/"
)

// ErrEmptyPrefix reports a missing or whitespace-only prefix.
var ErrEmptyPrefix = errors.New(emptyPrefixMessageConstant)

// ErrPrefixContainsSeparator reports a prefix that would move files across directories.
var ErrPrefixContainsSeparator = errors.New(prefixContainsSeparatorMessageConstant)

// Action identifies the planned disposition of a file.
type Action string

// Planned dispositions.
const (
	ActionRename              Action = "rename"
	ActionSkipAlreadyPrefixed Action = "skip-already-prefixed"
)

// FilePlan pairs a discovered file with its planned rename target.
type FilePlan struct {
	Entry      shared.FileEntry
	TargetPath string
	Action     Action
}

// ValidatePrefix rejects prefixes that signal misconfiguration.
func ValidatePrefix(prefix string) error {
	trimmedPrefix := strings.TrimSpace(prefix)
	if len(trimmedPrefix) == 0 {
		return ErrEmptyPrefix
	}
	if strings.Contains(prefix, forwardSlashConstant) || strings.ContainsRune(prefix, filepath.Separator) {
		return ErrPrefixContainsSeparator
	}
	return nil
}

// PrefixPlanner computes rename plans for a fixed prefix.
type PrefixPlanner struct {
	prefix string
}

// NewPrefixPlanner constructs a planner after validating the prefix.
func NewPrefixPlanner(prefix string) (PrefixPlanner, error) {
	if validationError := ValidatePrefix(prefix); validationError != nil {
		return PrefixPlanner{}, validationError
	}
	return PrefixPlanner{prefix: prefix}, nil
}

// Prefix returns the prefix the planner stamps onto base names.
func (planner PrefixPlanner) Prefix() string {
	return planner.prefix
}

// Plan evaluates a single file entry. Files already carrying the prefix are
// skipped so repeated runs are no-ops.
func (planner PrefixPlanner) Plan(entry shared.FileEntry) FilePlan {
	if strings.HasPrefix(entry.BaseName, planner.prefix) {
		return FilePlan{Entry: entry, Action: ActionSkipAlreadyPrefixed}
	}

	return FilePlan{
		Entry:      entry,
		TargetPath: filepath.Join(entry.Directory, planner.prefix+entry.BaseName),
		Action:     ActionRename,
	}
}

// PlanAll evaluates every entry in enumeration order.
func (planner PrefixPlanner) PlanAll(entries []shared.FileEntry) []FilePlan {
	plans := make([]FilePlan, 0, len(entries))
	for _, entry := range entries {
		plans = append(plans, planner.Plan(entry))
	}
	return plans
}
