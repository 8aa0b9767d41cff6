package logsink

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

var lineRe = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}[^\]]*\] \[(INFO|WARN|ERROR)\] .+$`)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(b), "\n"), "\n")
}

func TestAppendFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keysweep.log")
	s := New(path)
	s.Info("scan started")
	s.Warn("skipping unreadable file a.txt: permission denied")
	s.Error("report write failed")

	lines := readLines(t, path)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %v", lines)
	}
	for _, l := range lines {
		if !lineRe.MatchString(l) {
			t.Fatalf("malformed log line: %q", l)
		}
	}
	if !strings.Contains(lines[1], "[WARN] skipping unreadable file") {
		t.Fatalf("line 2 = %q", lines[1])
	}
}

func TestAppendSuppressesDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keysweep.log")
	s := New(path)
	for i := 0; i < 5; i++ {
		s.Info("same message")
	}
	// Same text at a different level is a distinct entry.
	s.Warn("same message")

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines after suppression, got %v", lines)
	}
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keysweep.log")
	big := strings.Repeat("x", maxLogBytes+1)
	if err := os.WriteFile(path, []byte(big), 0o600); err != nil {
		t.Fatal(err)
	}

	s := New(path)
	s.Info("after rotation")

	lines := readLines(t, path)
	if len(lines) != 1 || !strings.Contains(lines[0], "after rotation") {
		t.Fatalf("active log should hold only the new line, got %v", lines)
	}
	archives, err := filepath.Glob(filepath.Join(dir, "keysweep-*.log"))
	if err != nil || len(archives) != 1 {
		t.Fatalf("expected one archive, got %v (%v)", archives, err)
	}
	st, err := os.Stat(archives[0])
	if err != nil || st.Size() != int64(len(big)) {
		t.Fatalf("archive should hold the rotated content: %v %v", st, err)
	}
}

func TestLockTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keysweep.log")
	// A stale lock left by a dead writer.
	if err := os.WriteFile(path+".lock", nil, 0o600); err != nil {
		t.Fatal(err)
	}

	s := New(path).WithLockTimeout(50 * time.Millisecond)
	start := time.Now()
	err := s.Append(LevelInfo, "blocked")
	if err == nil {
		t.Fatal("expected a lock timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("err = %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("timeout did not bound the wait")
	}
	if _, err := os.Stat(path); err == nil {
		t.Fatal("no line should be written while locked out")
	}
}

func TestLockReleasedBetweenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keysweep.log")
	s := New(path)
	if err := s.Append(LevelInfo, "one"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".lock"); err == nil {
		t.Fatal("lock file left behind")
	}
	if err := s.Append(LevelInfo, "two"); err != nil {
		t.Fatal(err)
	}
}

func TestNilSink(t *testing.T) {
	var s *Sink
	if err := s.Append(LevelInfo, "into the void"); err != nil {
		t.Fatalf("nil sink must discard silently: %v", err)
	}
	s.Info("still fine")
}
