// Package scan applies the pattern registry to file content and produces
// raw candidate findings. It is pure and stateless per call; the engine
// layers entropy filtering, ignore filtering, and enrichment on top.
package scan

import (
	"fmt"
	"strings"

	"github.com/keysweep/keysweep/internal/classify"
	"github.com/keysweep/keysweep/internal/patterns"
	"github.com/keysweep/keysweep/internal/types"
)

// Matches shorter than this are noise regardless of pattern.
const minMatchLen = 5

type Scanner struct {
	reg *patterns.Registry
}

func New(reg *patterns.Registry) *Scanner {
	return &Scanner{reg: reg}
}

// Scan runs every registered pattern over every non-suppressed line of
// content. A failure while running one pattern voids only that pattern's
// findings for this file; the remaining patterns still run.
func (s *Scanner) Scan(content, path string) []types.Finding {
	lines := strings.Split(content, "\n")
	var out []types.Finding
	for _, p := range s.reg.Patterns() {
		out = append(out, scanPattern(p, lines, path)...)
	}
	return out
}

func scanPattern(p patterns.Pattern, lines []string, path string) (out []types.Finding) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()
	seen := map[string]bool{}
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if classify.Suppressed(line) {
			continue
		}
		for _, m := range p.FindAll(line) {
			if len(m) < minMatchLen {
				continue
			}
			key := fmt.Sprintf("%s|%d", m, i+1)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, types.Finding{
				Path:    path,
				Line:    i + 1,
				Pattern: p.Name,
				Secret:  extractSecret(m),
			})
		}
	}
	return out
}

// extractSecret pulls the value out of an assignment-shaped match: the
// substring after the first '=' or ':', trimmed of spaces and quotes.
// Matches without a separator (or with nothing after it) are the secret.
func extractSecret(match string) string {
	idx := strings.IndexAny(match, "=:")
	if idx < 0 {
		return match
	}
	rest := strings.TrimSpace(match[idx+1:])
	rest = strings.Trim(rest, `"'`)
	if rest == "" {
		return match
	}
	return rest
}
