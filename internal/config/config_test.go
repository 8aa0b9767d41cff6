package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keysweep.yml")
	content := `
custom_patterns:
  - name: Internal Token
    regex: ITK-[0-9a-f]{12}
add_to_gitignore: false
exclude: "vendor/**,dist/**"
threads: 4
entropy_threshold: 4.2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.CustomPatterns) != 1 || cfg.CustomPatterns[0].Name != "Internal Token" {
		t.Fatalf("custom patterns = %v", cfg.CustomPatterns)
	}
	if cfg.GitIgnoreEnabled() {
		t.Fatal("add_to_gitignore: false not honored")
	}
	if cfg.Exclude == nil || *cfg.Exclude != "vendor/**,dist/**" {
		t.Fatalf("exclude = %v", cfg.Exclude)
	}
	if cfg.Threads == nil || *cfg.Threads != 4 {
		t.Fatalf("threads = %v", cfg.Threads)
	}
	if cfg.EntropyThreshold == nil || *cfg.EntropyThreshold != 4.2 {
		t.Fatalf("entropy_threshold = %v", cfg.EntropyThreshold)
	}
	if cfg.Include != nil || cfg.MaxBytes != nil {
		t.Fatal("unset fields must stay nil")
	}
}

func TestGitIgnoreEnabledDefault(t *testing.T) {
	var cfg FileConfig
	if !cfg.GitIgnoreEnabled() {
		t.Fatal("default should be enabled")
	}
}

func TestLoadLocal(t *testing.T) {
	root := t.TempDir()
	if _, err := LoadLocal(root); err == nil {
		t.Fatal("expected an error with no config present")
	}
	if err := os.WriteFile(filepath.Join(root, ".keysweep.yml"), []byte("threads: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadLocal(root)
	if err != nil {
		t.Fatalf("load local: %v", err)
	}
	if cfg.Threads == nil || *cfg.Threads != 2 {
		t.Fatalf("threads = %v", cfg.Threads)
	}
}

func TestLoadGlobal(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)
	if _, err := LoadGlobal(); err == nil {
		t.Fatal("expected an error with no global config")
	}
	dir := filepath.Join(base, "keysweep")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("max_bytes: 2048\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatalf("load global: %v", err)
	}
	if cfg.MaxBytes == nil || *cfg.MaxBytes != 2048 {
		t.Fatalf("max_bytes = %v", cfg.MaxBytes)
	}
}

func TestMerge(t *testing.T) {
	two, four := 2, 4
	off := false
	base := FileConfig{Threads: &two, AddToGitIgnore: &off}
	over := FileConfig{Threads: &four}

	got := Merge(base, over)
	if *got.Threads != 4 {
		t.Fatalf("overlay threads should win, got %d", *got.Threads)
	}
	if got.AddToGitIgnore == nil || *got.AddToGitIgnore != false {
		t.Fatal("unset overlay fields should keep base values")
	}
}
