// Package cli constructs the stamp command-line interface, wiring the Cobra
// command hierarchy, configuration loader, and structured logging primitives.
// It exposes helpers to build reusable application instances and execute the
// root command.
package cli
