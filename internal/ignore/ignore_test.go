package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func writeIgnore(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), FileName))
	if err == nil {
		t.Fatal("expected an error for a missing ignore file")
	}
	if m.Match("anything.txt") || m.MatchFinding("p|1|anything.txt") {
		t.Fatal("missing file must yield an empty matcher")
	}
}

func TestMatchGlobs(t *testing.T) {
	m, err := Load(writeIgnore(t, `
# build output
dist/
*.min.js
testdata/**/*.golden
fixtures
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := map[string]bool{
		"dist/app.js":                true,
		"dist/deep/nested/app.js":    true,
		"vendor/lib.min.js":          true,
		"testdata/report/out.golden": true,
		"src/fixtures":               true, // bare name matches by basename
		"src/main.go":                false,
		"distx/app.js":               false,
	}
	for rel, want := range cases {
		if got := m.Match(rel); got != want {
			t.Fatalf("Match(%q)=%v want %v", rel, got, want)
		}
	}
}

func TestMatchFinding(t *testing.T) {
	m, err := Load(writeIgnore(t, "Amazon AWS Access Key ID|3|config/prod.env\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !m.MatchFinding("Amazon AWS Access Key ID|3|config/prod.env") {
		t.Fatal("listed finding key should be silenced")
	}
	if m.MatchFinding("Amazon AWS Access Key ID|4|config/prod.env") {
		t.Fatal("different line must not match")
	}
	if m.Match("config/prod.env") {
		t.Fatal("finding entries must not exclude the whole file")
	}
}

func TestMatchNormalizesSeparators(t *testing.T) {
	m, err := Load(writeIgnore(t, "dist/\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !m.Match(`dist\app.js`) {
		t.Fatal("backslash paths should match after normalization")
	}
}
