// Package keysweep implements the CLI commands. The main package is a thin
// wrapper that calls Execute.
package keysweep
