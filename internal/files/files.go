// Package files owns the scanner's working subdirectory and the repo's
// .gitignore bookkeeping for it.
package files

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// WorkDir is the dedicated subdirectory under the scan root that holds the
// report, the event log, and the results cache.
const WorkDir = ".keysweep"

// EnsureWorkDir creates the working subdirectory if needed and returns its path.
func EnsureWorkDir(root string) (string, error) {
	dir := filepath.Join(root, WorkDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// AppendIgnore ensures the given pattern is present in .gitignore at root.
// It creates the file if missing and is idempotent.
func AppendIgnore(root, pattern string) error {
	path := filepath.Join(root, ".gitignore")
	existing := map[string]bool{}
	if f, err := os.Open(path); err == nil {
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			existing[strings.TrimSpace(sc.Text())] = true
		}
		_ = f.Close()
	}
	if existing[pattern] {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(pattern + "\n")
	return err
}
