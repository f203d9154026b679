// Package check implements the operational readiness assessment run before a
// stamping pass: prefix validity, root existence, root writability, and an
// estimate of pending work. It exposes CommandBuilder for wiring the check
// Cobra command and Service for driving the assessment programmatically.
package check
