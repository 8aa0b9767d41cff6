// Package cache persists per-file scan results between sessions, keyed by a
// fast content hash. Entries only ever hold redacted findings.
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/keysweep/keysweep/internal/files"
	"github.com/keysweep/keysweep/internal/types"
)

// Entry records what the last scan saw for one file.
type Entry struct {
	Hash     string          `json:"hash"`
	Findings []types.Finding `json:"findings,omitempty"`
}

// DB maps root-relative paths to their last-scan entry.
type DB struct {
	Entries map[string]Entry `json:"entries"`
}

func dbPath(root string) string {
	return filepath.Join(root, files.WorkDir, "cache.json")
}

// Load reads the cache for root. Absence or corruption yields an empty DB
// plus the underlying error; callers treat both as a cold cache.
func Load(root string) (DB, error) {
	var db DB
	b, err := os.ReadFile(dbPath(root))
	if err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if err := json.Unmarshal(b, &db); err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

// Save writes the cache under the working subdirectory.
func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	if _, err := files.EnsureWorkDir(root); err != nil {
		return err
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(dbPath(root), b, 0o600)
}

// Hash returns the content hash used to detect unchanged files.
func Hash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
