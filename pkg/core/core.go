package core

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/keysweep/keysweep/internal/audit"
	"github.com/keysweep/keysweep/internal/config"
	"github.com/keysweep/keysweep/internal/engine"
	"github.com/keysweep/keysweep/internal/files"
	"github.com/keysweep/keysweep/internal/logsink"
	"github.com/keysweep/keysweep/internal/patterns"
	"github.com/keysweep/keysweep/internal/report"
	"github.com/keysweep/keysweep/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type Config = engine.Config
type Finding = types.Finding
type ScanResult = types.ScanResult
type UserPattern = patterns.UserPattern

// ErrScanInProgress is returned when a scan is requested while one is active.
var ErrScanInProgress = engine.ErrScanInProgress

// LogFileName is the event log location inside the working subdirectory.
const LogFileName = "keysweep.log"

// Scan is the stable entrypoint for callers that assemble their own Config.
func Scan(ctx context.Context, cfg Config) (ScanResult, error) {
	return engine.Run(ctx, cfg)
}

// PatternNames returns the names of the built-in detection rules.
func PatternNames() []string {
	reg, _ := patterns.Load(nil)
	return reg.Names()
}

// NewLogSink returns the session log sink for the given scan root.
func NewLogSink(root string) *logsink.Sink {
	return logsink.New(filepath.Join(root, files.WorkDir, LogFileName))
}

// StartScan is the host command: it loads configuration for root, runs a
// full scan session, writes the report and event log, maintains .gitignore,
// and reports whether any non-ignored secret was found.
func StartScan(ctx context.Context, root string) (bool, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return false, err
	}
	var fc config.FileConfig
	if c, lerr := config.LoadGlobal(); lerr == nil {
		fc = c
	}
	if c, lerr := config.LoadLocal(abs); lerr == nil {
		fc = config.Merge(fc, c)
	}

	sink := NewLogSink(abs)

	// An invalid custom pattern is a configuration error, not a scan
	// failure: it is logged once and that pattern excluded.
	reg, regErr := patterns.Load(fc.CustomPatterns)
	if regErr != nil {
		sink.Warn("custom pattern rejected: " + regErr.Error())
	}

	cfg := Config{
		Root:            abs,
		Registry:        reg,
		DefaultExcludes: true,
		Log:             sink,
	}
	if fc.Include != nil {
		cfg.IncludeGlobs = *fc.Include
	}
	if fc.Exclude != nil {
		cfg.ExcludeGlobs = *fc.Exclude
	}
	if fc.Threads != nil {
		cfg.Threads = *fc.Threads
	}
	if fc.EntropyThreshold != nil {
		cfg.EntropyThreshold = *fc.EntropyThreshold
	}
	if fc.MaxBytes != nil {
		cfg.MaxBytes = *fc.MaxBytes
	}
	if fc.DefaultExcludes != nil {
		cfg.DefaultExcludes = *fc.DefaultExcludes
	}

	res, err := engine.Run(ctx, cfg)
	if err != nil {
		return false, err
	}

	// A report failure never invalidates the result already computed.
	if werr := report.Write(abs, res.Findings, res.FilesScanned); werr != nil {
		sink.Error(fmt.Sprintf("report generation failed: %v", werr))
	}
	if aerr := audit.New(abs).Record(audit.NewRecord(abs, res)); aerr != nil {
		sink.Warn(fmt.Sprintf("audit trail append failed: %v", aerr))
	}
	if fc.GitIgnoreEnabled() {
		if gerr := files.AppendIgnore(abs, files.WorkDir+"/"); gerr != nil {
			sink.Warn(fmt.Sprintf("could not update .gitignore: %v", gerr))
		}
	}
	return len(res.Findings) > 0, nil
}
