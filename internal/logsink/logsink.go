// Package logsink is the append-only, locked, size-rotated log of scan
// events. Lines are formatted as "[timestamp] [LEVEL] message"; repeats of
// the same message are suppressed through a bounded dedupe cache, and the
// active file rotates to a timestamped archive past 1 MiB.
package logsink

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/keysweep/keysweep/internal/dedupe"
)

type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

const (
	maxLogBytes = 1 << 20

	// The lock is a blocking spin on exclusive create. It must be bounded:
	// a writer that dies holding the lock would otherwise hang every later
	// session forever.
	DefaultLockTimeout = 5 * time.Second
	lockPoll           = 10 * time.Millisecond
)

// Sink serializes writers on the same log path via an exclusive-create lock
// file, so overlapping sessions never interleave partial lines. A nil Sink
// discards everything.
type Sink struct {
	path        string
	lockTimeout time.Duration
	recent      *dedupe.Cache
}

func New(path string) *Sink {
	return &Sink{
		path:        path,
		lockTimeout: DefaultLockTimeout,
		recent:      dedupe.New(0),
	}
}

// WithLockTimeout bounds how long Append waits for the path lock.
func (s *Sink) WithLockTimeout(d time.Duration) *Sink {
	s.lockTimeout = d
	return s
}

// Path returns the active log file location.
func (s *Sink) Path() string { return s.path }

func (s *Sink) Info(msg string)  { _ = s.Append(LevelInfo, msg) }
func (s *Sink) Warn(msg string)  { _ = s.Append(LevelWarn, msg) }
func (s *Sink) Error(msg string) { _ = s.Append(LevelError, msg) }

// Append writes one formatted line. Duplicate messages (by level+message
// digest) are skipped without touching the file. The caller's scan never
// depends on Append succeeding; the Info/Warn/Error helpers drop the error.
func (s *Sink) Append(level Level, msg string) error {
	if s == nil {
		return nil
	}
	if s.recent.IsDuplicate(string(level) + " " + msg) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("log dir: %w", err)
	}
	unlock, err := acquireLock(s.path+".lock", s.lockTimeout)
	if err != nil {
		return err
	}
	defer unlock()

	if err := s.rotateIfNeeded(); err != nil {
		return err
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()
	line := fmt.Sprintf("[%s] [%s] %s\n", time.Now().Format(time.RFC3339), level, msg)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func (s *Sink) rotateIfNeeded() error {
	st, err := os.Stat(s.path)
	if err != nil || st.Size() <= maxLogBytes {
		return nil
	}
	base := strings.TrimSuffix(s.path, ".log")
	archive := fmt.Sprintf("%s-%s.log", base, time.Now().Format("20060102T150405"))
	return os.Rename(s.path, archive)
}

// acquireLock spins on exclusive creation of lockPath until it wins or the
// deadline passes. The returned func releases the lock.
func acquireLock(lockPath string, timeout time.Duration) (func(), error) {
	deadline := time.Now().Add(timeout)
	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("log lock: %w", err)
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("log lock %s: timed out after %s", lockPath, timeout)
		}
		time.Sleep(lockPoll)
	}
}
