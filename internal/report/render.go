// Package report renders aggregated findings into the scan report and the
// CLI summary. Findings reaching this package carry redacted secrets only.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/keysweep/keysweep/internal/files"
	"github.com/keysweep/keysweep/internal/types"
)

// FileName is the report location inside the working subdirectory.
const FileName = "report.md"

// Enrich fills in RiskScore and Severity from the raw secret length. It must
// run before redaction: the length bucket (over 50 characters is high) is
// about the actual value, not its display form.
func Enrich(fs []types.Finding) {
	for i := range fs {
		n := len(fs[i].Secret)
		fs[i].RiskScore = n * 2
		if n > 50 {
			fs[i].Severity = types.SevHigh
		} else {
			fs[i].Severity = types.SevMed
		}
	}
}

// Write renders the report to <root>/.keysweep/report.md. It is a no-op when
// there are no findings: no file is created or truncated.
func Write(root string, findings []types.Finding, filesScanned int) error {
	if len(findings) == 0 {
		return nil
	}
	dir, err := files.EnsureWorkDir(root)
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, FileName))
	if err != nil {
		return err
	}
	defer f.Close()
	return Generate(f, findings, filesScanned)
}

// Generate renders the report document: a header, a per-file summary table,
// and a detail section per file sorted by path and line.
func Generate(w io.Writer, findings []types.Finding, filesScanned int) error {
	byFile := groupByFile(findings)
	paths := make([]string, 0, len(byFile))
	for p := range byFile {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	fmt.Fprintln(w, "# Keysweep Scan Report")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "Files scanned: %d\n", filesScanned)
	fmt.Fprintf(w, "Findings: %d\n", len(findings))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "## Summary")
	fmt.Fprintln(w)

	table := tablewriter.NewTable(w)
	table.Header("File", "Findings", "High", "Medium")
	for _, p := range paths {
		high, med := 0, 0
		for _, f := range byFile[p] {
			switch f.Severity {
			case types.SevHigh:
				high++
			default:
				med++
			}
		}
		if err := table.Append([]string{p, strconv.Itoa(len(byFile[p])), strconv.Itoa(high), strconv.Itoa(med)}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Fprintf(w, "\n## %s\n\n", p)
		fs := byFile[p]
		sort.Slice(fs, func(i, j int) bool { return fs[i].Line < fs[j].Line })
		for _, f := range fs {
			fmt.Fprintf(w, "- line %d: %s: `%s` (severity %s, risk %d)\n",
				f.Line, f.Pattern, f.Secret, f.Severity, f.RiskScore)
		}
	}
	return nil
}

func groupByFile(findings []types.Finding) map[string][]types.Finding {
	out := map[string][]types.Finding{}
	for _, f := range findings {
		out[f.Path] = append(out[f.Path], f)
	}
	return out
}
