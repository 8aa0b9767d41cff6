package types

import (
	"fmt"
	"time"
)

// Severity is a coarse-grained risk level for a finding.
type Severity string

const (
	SevLow  Severity = "low"
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// Finding describes a potential secret detected at a path and line.
//
// Secret holds the raw matched value while a finding moves through the
// detection pipeline; the engine redacts it to the partial display form
// before the finding leaves the pipeline, so report, log, and cache only
// ever see the redacted value. RiskScore and Severity are filled in by
// the engine from the raw value's length at the same point.
type Finding struct {
	Path      string   `json:"path"`
	Line      int      `json:"line"` // 1-indexed
	Pattern   string   `json:"pattern"`
	Secret    string   `json:"secret,omitempty"`
	Severity  Severity `json:"severity,omitempty"`
	RiskScore int      `json:"risk_score,omitempty"`
}

// Key returns the identity used for deduplication and ignore filtering.
// Two findings with the same pattern, line, and path are the same finding
// regardless of the matched text.
func (f Finding) Key() string {
	return fmt.Sprintf("%s|%d|%s", f.Pattern, f.Line, f.Path)
}

// ScanResult contains findings and basic scan statistics for one session.
type ScanResult struct {
	Findings     []Finding
	FilesScanned int
	Cancelled    bool
	Duration     time.Duration
}
