// Package classify decides whether a source line is comment or string-literal
// text whose matches should be suppressed.
package classify

import "strings"

// Suppressed reports whether findings on the line should be discarded.
// The heuristic is line-local: a line is suppressed when it starts with a
// line-comment marker or contains a block-comment or triple-quote delimiter
// anywhere. No cross-line comment state is kept, so a line that merely
// mentions "/*" is suppressed even outside a real block comment, and a line
// inside one that carries no delimiter is not.
func Suppressed(line string) bool {
	t := strings.TrimSpace(line)
	if strings.HasPrefix(t, "//") || strings.HasPrefix(t, "#") {
		return true
	}
	if strings.Contains(line, "/*") || strings.Contains(line, "*/") {
		return true
	}
	if strings.Contains(line, `"""`) || strings.Contains(line, "'''") {
		return true
	}
	return false
}
