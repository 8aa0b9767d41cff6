package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/keysweep/keysweep/internal/types"
)

// PrintOptions controls the CLI summary output.
type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
}

// Print writes the columnar CLI summary of findings, sorted by path and line.
func Print(w io.Writer, findings []types.Finding, opts PrintOptions) {
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Path == findings[j].Path {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Path < findings[j].Path
	})
	if len(findings) == 0 {
		fmt.Fprintln(w, "No secrets found ✅")
	} else {
		maxPat := 8
		for _, f := range findings {
			if l := len(f.Pattern); l > maxPat {
				maxPat = l
			}
		}
		fmt.Fprintf(w, "Findings: %d\n", len(findings))
		for _, f := range findings {
			sev := string(f.Severity)
			if !opts.NoColor {
				sev = colorSeverity(f.Severity)
			}
			fmt.Fprintf(w, "%-6s %-*s %s:%d  %s\n", sev, maxPat, f.Pattern, f.Path, f.Line, f.Secret)
		}
	}
	if opts.Duration > 0 || opts.FilesScanned > 0 {
		high, med, low := 0, 0, 0
		for _, f := range findings {
			switch f.Severity {
			case types.SevHigh:
				high++
			case types.SevMed:
				med++
			default:
				low++
			}
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Findings: %d (high: %d, medium: %d, low: %d)\n", len(findings), high, med, low)
		if opts.Duration > 0 {
			fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
		}
		if opts.FilesScanned > 0 {
			fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
		}
	}
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "\x1b[31mhigh\x1b[0m"
	case types.SevMed:
		return "\x1b[33mmedium\x1b[0m"
	default:
		return "\x1b[36mlow\x1b[0m"
	}
}
