// Package audit keeps a JSONL trail of scan sessions under the working
// subdirectory, newest first on read. Records only ever contain redacted
// finding data.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/keysweep/keysweep/internal/files"
	"github.com/keysweep/keysweep/internal/types"
)

const fileName = "audit.jsonl"

// ScanRecord summarizes one completed (or cancelled) scan session.
type ScanRecord struct {
	Timestamp      time.Time        `json:"timestamp"`
	ScanID         string           `json:"scan_id"`
	Root           string           `json:"root"`
	TotalFindings  int              `json:"total_findings"`
	FilesScanned   int              `json:"files_scanned"`
	Cancelled      bool             `json:"cancelled,omitempty"`
	SeverityCounts map[string]int   `json:"severity_counts"`
	Duration       string           `json:"duration"`
	TopFindings    []FindingSummary `json:"top_findings,omitempty"`
}

// FindingSummary is the location-only view of a finding kept in the trail.
type FindingSummary struct {
	Path     string `json:"path"`
	Pattern  string `json:"pattern"`
	Severity string `json:"severity"`
	Line     int    `json:"line"`
}

type Trail struct {
	path string
}

func New(root string) *Trail {
	return &Trail{path: filepath.Join(root, files.WorkDir, fileName)}
}

// Record appends one session record. Missing scan IDs are filled in.
func (t *Trail) Record(rec ScanRecord) error {
	if rec.ScanID == "" {
		rec.ScanID = fmt.Sprintf("scan_%d", time.Now().Unix())
	}
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("audit dir: %w", err)
	}
	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open audit trail: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}

// History returns all records, newest first. Malformed lines are skipped.
func (t *Trail) History() ([]ScanRecord, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, fmt.Errorf("open audit trail: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		var rec ScanRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return records, fmt.Errorf("read audit trail: %w", err)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// NewRecord builds a ScanRecord from a session result. The result's findings
// already carry redacted secrets; only locations are summarized here.
func NewRecord(root string, res types.ScanResult) ScanRecord {
	counts := map[string]int{}
	for _, f := range res.Findings {
		counts[string(f.Severity)]++
	}
	top := make([]FindingSummary, 0, 10)
	for i, f := range res.Findings {
		if i >= 10 {
			break
		}
		top = append(top, FindingSummary{
			Path:     f.Path,
			Pattern:  f.Pattern,
			Severity: string(f.Severity),
			Line:     f.Line,
		})
	}
	return ScanRecord{
		Timestamp:      time.Now(),
		Root:           root,
		TotalFindings:  len(res.Findings),
		FilesScanned:   res.FilesScanned,
		Cancelled:      res.Cancelled,
		SeverityCounts: counts,
		Duration:       res.Duration.String(),
		TopFindings:    top,
	}
}
