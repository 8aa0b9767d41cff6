// Package engine contains the scan orchestrator for keysweep. It enumerates
// target files, runs the content scanner with entropy and ignore filtering,
// and returns structured, redacted findings. This package is internal;
// external consumers should use the stable facade in pkg/core.
package engine
