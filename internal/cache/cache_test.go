package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/keysweep/keysweep/internal/files"
	"github.com/keysweep/keysweep/internal/types"
)

func TestLoadColdCache(t *testing.T) {
	db, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected an error for a missing cache file")
	}
	if db.Entries == nil || len(db.Entries) != 0 {
		t.Fatalf("cold cache should be empty but usable: %v", db.Entries)
	}
}

func TestLoadCorruptCache(t *testing.T) {
	root := t.TempDir()
	if _, err := files.EnsureWorkDir(root); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, files.WorkDir, "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	db, err := Load(root)
	if err == nil {
		t.Fatal("expected an error for corrupt cache")
	}
	if len(db.Entries) != 0 {
		t.Fatalf("corrupt cache should load empty, got %v", db.Entries)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	root := t.TempDir()
	in := DB{Entries: map[string]Entry{
		"src/app.go": {
			Hash: Hash([]byte("content")),
			Findings: []types.Finding{
				{Path: "src/app.go", Line: 7, Pattern: "Amazon AWS Access Key ID", Secret: "AKIA12…CDEF", Severity: types.SevMed, RiskScore: 40},
			},
		},
		"README.md": {Hash: Hash([]byte("docs"))},
	}}
	if err := Save(root, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := Load(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Entries) != 2 {
		t.Fatalf("entries = %v", out.Entries)
	}
	got := out.Entries["src/app.go"]
	if got.Hash != in.Entries["src/app.go"].Hash {
		t.Fatalf("hash mismatch: %q", got.Hash)
	}
	if len(got.Findings) != 1 || got.Findings[0].Secret != "AKIA12…CDEF" {
		t.Fatalf("findings did not round-trip: %v", got.Findings)
	}
}

func TestSaveRejectsNilEntries(t *testing.T) {
	if err := Save(t.TempDir(), DB{}); err == nil {
		t.Fatal("expected an error for a nil entry map")
	}
}

func TestHash(t *testing.T) {
	if got := Hash(nil); got != "0000000000000000" {
		t.Fatalf("empty content hash = %q", got)
	}
	a, b := Hash([]byte("alpha")), Hash([]byte("beta"))
	if a == b {
		t.Fatal("distinct content must hash differently")
	}
	if len(a) != 16 {
		t.Fatalf("hash length = %d want 16", len(a))
	}
	if a != Hash([]byte("alpha")) {
		t.Fatal("hash must be stable")
	}
}
