// Package workflow loads declarative YAML step files and executes their
// plan, apply, and check operations sequentially against shared stamping
// collaborators.
package workflow
