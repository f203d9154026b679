// Package utils provides shared infrastructure for the stamp CLI: a
// Viper-backed configuration loader, a zap logger factory, a flushing writer
// for interactive output, and helpers for values carried through command
// execution contexts.
package utils
