package scan

import (
	"sort"
	"strings"
	"testing"

	"github.com/keysweep/keysweep/internal/patterns"
	"github.com/keysweep/keysweep/internal/types"
)

func newScanner(t *testing.T, user ...patterns.UserPattern) *Scanner {
	t.Helper()
	reg, err := patterns.Load(user)
	if err != nil {
		t.Fatalf("load patterns: %v", err)
	}
	return New(reg)
}

func TestScanAWSAccessKey(t *testing.T) {
	s := newScanner(t)
	fs := s.Scan("AKIA1234567890ABCDEF\n", "creds.txt")
	if len(fs) != 1 {
		t.Fatalf("expected exactly one finding, got %d: %v", len(fs), fs)
	}
	f := fs[0]
	if f.Pattern != "Amazon AWS Access Key ID" {
		t.Fatalf("pattern = %q", f.Pattern)
	}
	if f.Line != 1 {
		t.Fatalf("line = %d", f.Line)
	}
	if f.Secret != "AKIA1234567890ABCDEF" {
		t.Fatalf("secret = %q", f.Secret)
	}
}

func TestScanSuppressesComments(t *testing.T) {
	s := newScanner(t)
	if fs := s.Scan("//secret=AKIA0123456789ABCDEF\n", "a.js"); len(fs) != 0 {
		t.Fatalf("comment line should yield no findings, got %v", fs)
	}
	if fs := s.Scan("# password=AKIA0123456789ABCDEF\n", "a.py"); len(fs) != 0 {
		t.Fatalf("hash comment should yield no findings, got %v", fs)
	}
}

func TestScanExtractsAssignedValue(t *testing.T) {
	s := newScanner(t)
	fs := s.Scan(`password = "hunter2secret"`, "cfg.ini")
	if len(fs) != 1 {
		t.Fatalf("expected one finding, got %v", fs)
	}
	if fs[0].Secret != "hunter2secret" {
		t.Fatalf("secret = %q, want value after separator without quotes", fs[0].Secret)
	}
}

func TestScanDeduplicatesWithinLine(t *testing.T) {
	s := newScanner(t)
	fs := s.Scan("AKIA1234567890ABCDEF AKIA1234567890ABCDEF\n", "dup.txt")
	if len(fs) != 1 {
		t.Fatalf("identical match on the same line should emit once, got %d", len(fs))
	}
}

func TestScanMinimumMatchLength(t *testing.T) {
	s := newScanner(t, patterns.UserPattern{Name: "Tiny", Regex: `ab+c`})
	if fs := s.Scan("abc\n", "t.txt"); len(fs) != 0 {
		t.Fatalf("matches under the length floor must be dropped, got %v", fs)
	}
	if fs := s.Scan("abbbbc\n", "t.txt"); len(fs) != 1 {
		t.Fatalf("expected one finding, got %v", fs)
	}
}

func TestScanIdempotent(t *testing.T) {
	content := strings.Join([]string{
		"AKIA1234567890ABCDEF",
		`api_key: Zk82hF3mQw9XrT5vLp1Ns6`,
		"// api_key: suppressed0123456789",
	}, "\n")
	s := newScanner(t)
	a := s.Scan(content, "m.ts")
	b := s.Scan(content, "m.ts")
	if len(a) != len(b) {
		t.Fatalf("scan not idempotent: %d vs %d findings", len(a), len(b))
	}
	key := func(fs []types.Finding) []string {
		out := make([]string, len(fs))
		for i, f := range fs {
			out[i] = f.Key() + "|" + f.Secret
		}
		sort.Strings(out)
		return out
	}
	ka, kb := key(a), key(b)
	for i := range ka {
		if ka[i] != kb[i] {
			t.Fatalf("finding sets differ: %v vs %v", ka, kb)
		}
	}
}
