package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/keysweep/keysweep/internal/cache"
	"github.com/keysweep/keysweep/internal/entropy"
	"github.com/keysweep/keysweep/internal/ignore"
	"github.com/keysweep/keysweep/internal/logsink"
	"github.com/keysweep/keysweep/internal/patterns"
	"github.com/keysweep/keysweep/internal/redact"
	"github.com/keysweep/keysweep/internal/report"
	"github.com/keysweep/keysweep/internal/scan"
	"github.com/keysweep/keysweep/internal/types"
)

// ErrScanInProgress is returned when Run is called while another session is
// active. A second request is rejected, never queued.
var ErrScanInProgress = errors.New("a scan is already in progress")

// scanActive guards the one-session-at-a-time rule process-wide.
var scanActive atomic.Bool

// Config controls scanning behavior including scope, performance, and filters.
type Config struct {
	Root             string
	IncludeGlobs     string // comma-separated doublestar globs; empty = default extension set
	ExcludeGlobs     string
	MaxBytes         int64
	Threads          int
	NoCache          bool
	DefaultExcludes  bool
	EntropyThreshold float64

	// Registry takes precedence when set; otherwise Run builds one from
	// UserPatterns and logs any rejected custom pattern.
	Registry     *patterns.Registry
	UserPatterns []patterns.UserPattern

	// Progress, when set, is called synchronously after each processed file.
	Progress func(done, total int, path string)

	Log *logsink.Sink
}

const defaultMaxBytes = 1 << 20

// Run executes one scan session over the configured root. Cancellation is
// cooperative at file granularity: the context is checked before each file
// is dispatched, in-flight files run to completion, and a cancelled session
// returns its partial result with Cancelled set rather than an error. Only
// a total inability to enumerate the file set aborts the scan.
func Run(ctx context.Context, cfg Config) (types.ScanResult, error) {
	var res types.ScanResult
	if !scanActive.CompareAndSwap(false, true) {
		return res, ErrScanInProgress
	}
	defer scanActive.Store(false)

	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}
	if cfg.Threads > 32 {
		cfg.Threads = 32
	}
	if cfg.EntropyThreshold <= 0 {
		cfg.EntropyThreshold = entropy.DefaultThreshold
	}

	reg := cfg.Registry
	if reg == nil {
		var err error
		reg, err = patterns.Load(cfg.UserPatterns)
		if err != nil {
			cfg.Log.Warn("custom pattern rejected: " + err.Error())
		}
	}

	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignore.FileName))

	started := time.Now()
	targets, err := collectTargets(ctx, cfg, ign)
	if err != nil {
		cfg.Log.Error("cannot enumerate files: " + err.Error())
		return res, fmt.Errorf("enumerate files: %w", err)
	}
	total := len(targets)
	cfg.Log.Info(fmt.Sprintf("scan started: %d files under %s", total, cfg.Root))

	db := cache.DB{Entries: map[string]cache.Entry{}}
	if !cfg.NoCache {
		db, _ = cache.Load(cfg.Root)
	}
	updated := map[string]cache.Entry{}

	scnr := scan.New(reg)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	sem := make(chan struct{}, cfg.Threads)

	for _, rel := range targets {
		if ctx.Err() != nil {
			res.Cancelled = true
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(rel string) {
			defer wg.Done()
			defer func() { <-sem }()
			fs, entry, cacheable := scanOne(cfg, scnr, reg, db, rel)
			fs = dropIgnored(fs, ign)

			mu.Lock()
			defer mu.Unlock()
			res.FilesScanned++
			res.Findings = append(res.Findings, fs...)
			if cacheable {
				updated[rel] = entry
			}
			if cfg.Progress != nil {
				cfg.Progress(res.FilesScanned, total, rel)
			}
		}(rel)
	}
	wg.Wait()

	if !cfg.NoCache && len(updated) > 0 {
		if db.Entries == nil {
			db.Entries = map[string]cache.Entry{}
		}
		for k, v := range updated {
			db.Entries[k] = v
		}
		if err := cache.Save(cfg.Root, db); err != nil {
			cfg.Log.Warn("cache save failed: " + err.Error())
		}
	}

	res.Duration = time.Since(started)
	if res.Cancelled {
		cfg.Log.Info(fmt.Sprintf("scan cancelled after %d/%d files", res.FilesScanned, total))
	} else {
		cfg.Log.Info(fmt.Sprintf("scan complete: %d findings in %d files", len(res.Findings), res.FilesScanned))
	}
	return res, nil
}

// scanOne processes a single file and returns its redacted, enriched
// findings plus the cache entry to record. cacheable is false when the file
// could not be read or looked binary; such files are skipped, not fatal.
func scanOne(cfg Config, scnr *scan.Scanner, reg *patterns.Registry, db cache.DB, rel string) ([]types.Finding, cache.Entry, bool) {
	data, err := os.ReadFile(filepath.Join(cfg.Root, rel))
	if err != nil {
		cfg.Log.Warn(fmt.Sprintf("skipping unreadable file %s: %v", rel, err))
		return nil, cache.Entry{}, false
	}
	if looksBinary(data) {
		return nil, cache.Entry{}, false
	}

	h := cache.Hash(data)
	if !cfg.NoCache {
		// Entries hold enriched findings with secrets already redacted, so
		// they can be re-emitted as-is.
		if e, ok := db.Entries[rel]; ok && e.Hash == h {
			return e.Findings, e, true
		}
	}

	fs := scnr.Scan(string(data), rel)
	fs = entropy.Filter(fs, cfg.EntropyThreshold, reg.HighConfidence)
	report.Enrich(fs)
	for i := range fs {
		cfg.Log.Info(fmt.Sprintf("finding: %s at %s:%d", fs[i].Pattern, rel, fs[i].Line))
		fs[i].Secret = redact.Partial(fs[i].Secret)
	}
	return fs, cache.Entry{Hash: h, Findings: fs}, true
}

func dropIgnored(fs []types.Finding, ign ignore.Matcher) []types.Finding {
	// Never compacted in place: fs may alias a cache entry's slice.
	var out []types.Finding
	for _, f := range fs {
		if ign.MatchFinding(f.Key()) {
			continue
		}
		out = append(out, f)
	}
	return out
}
