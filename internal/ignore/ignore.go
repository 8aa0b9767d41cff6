// Package ignore loads the .keysweepignore file: path globs that exclude
// files from scanning, and finding keys that silence individual findings.
package ignore

import (
	"bufio"
	"os"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// FileName is the ignore file expected at the scan root.
const FileName = ".keysweepignore"

// Matcher answers whether a path or a finding key is ignored. The zero value
// matches nothing.
type Matcher struct {
	globs    []string
	findings map[string]struct{}
}

// Load parses the ignore file at path. Blank lines and '#' comments are
// skipped. A line containing '|' is an exact finding key
// ("pattern|line|path"); anything else is a doublestar path glob, with a
// trailing '/' as shorthand for the whole subtree. A missing file yields an
// empty matcher and the underlying error.
func Load(path string) (Matcher, error) {
	m := Matcher{findings: map[string]struct{}{}}
	f, err := os.Open(path)
	if err != nil {
		return m, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "|") {
			m.findings[line] = struct{}{}
			continue
		}
		if strings.HasSuffix(line, "/") {
			line += "**"
		}
		m.globs = append(m.globs, line)
	}
	return m, sc.Err()
}

// Match reports whether the relative path is excluded from scanning.
func (m Matcher) Match(rel string) bool {
	rel = strings.ReplaceAll(rel, "\\", "/")
	for _, g := range m.globs {
		if ok, _ := doublestar.Match(g, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, baseName(rel)); ok {
			return true
		}
	}
	return false
}

// MatchFinding reports whether the finding key is silenced.
func (m Matcher) MatchFinding(key string) bool {
	_, ok := m.findings[key]
	return ok
}

func baseName(rel string) string {
	if i := strings.LastIndexByte(rel, '/'); i >= 0 {
		return rel[i+1:]
	}
	return rel
}
