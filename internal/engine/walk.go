package engine

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/keysweep/keysweep/internal/files"
	"github.com/keysweep/keysweep/internal/ignore"
)

// collectTargets walks the root and returns the relative paths eligible for
// scanning, so the session knows its total up front for progress reporting.
// Per-entry walk errors are skipped; an error on the root itself means the
// file set cannot be enumerated at all and is returned.
func collectTargets(ctx context.Context, cfg Config, ign ignore.Matcher) ([]string, error) {
	var out []string
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == cfg.Root {
				return err
			}
			return nil
		}
		if ctx.Err() != nil {
			return fs.SkipAll
		}
		if d.IsDir() {
			if p == cfg.Root {
				return nil
			}
			name := d.Name()
			if name == files.WorkDir {
				return filepath.SkipDir
			}
			if cfg.DefaultExcludes && isDefaultDirExcluded(name) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		rel = filepath.ToSlash(rel)
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		if cfg.IncludeGlobs == "" && !scannableFile(rel) {
			return nil
		}
		if ign.Match(rel) {
			return nil
		}
		if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel)) {
			return nil
		}
		if info, ierr := d.Info(); ierr == nil && info.Size() > cfg.MaxBytes {
			return nil
		}
		out = append(out, rel)
		return nil
	})
	return out, err
}

// looksBinary sniffs a short prefix for NUL bytes.
func looksBinary(b []byte) bool {
	n := 800
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// allowedByGlobs returns true if the given path is allowed by the
// include/exclude glob configuration. Include globs, if provided, act as a
// positive filter; exclude globs are subtracted last. Comma-separated,
// forward-slash semantics.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
			out = append(out, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
