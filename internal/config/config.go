package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/keysweep/keysweep/internal/patterns"
)

// FileConfig is the on-disk YAML configuration shape for keysweep. Pointer
// fields distinguish "unset" from explicit values so precedence merging works.
type FileConfig struct {
	CustomPatterns   []patterns.UserPattern `yaml:"custom_patterns"`
	AddToGitIgnore   *bool                  `yaml:"add_to_gitignore"`
	Include          *string                `yaml:"include"`
	Exclude          *string                `yaml:"exclude"`
	Threads          *int                   `yaml:"threads"`
	EntropyThreshold *float64               `yaml:"entropy_threshold"`
	MaxBytes         *int64                 `yaml:"max_bytes"`
	DefaultExcludes  *bool                  `yaml:"default_excludes"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .keysweep.yml/.yaml and keysweep.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".keysweep.yml", ".keysweep.yaml", "keysweep.yml", "keysweep.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "keysweep", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// GitIgnoreEnabled reports whether the working subdirectory should be added
// to the repo's .gitignore (default: true).
func (fc FileConfig) GitIgnoreEnabled() bool {
	if fc.AddToGitIgnore == nil {
		return true
	}
	return *fc.AddToGitIgnore
}

// Merge returns fc overlaid on base: every field set in fc wins.
func Merge(base, fc FileConfig) FileConfig {
	out := base
	if len(fc.CustomPatterns) > 0 {
		out.CustomPatterns = fc.CustomPatterns
	}
	if fc.AddToGitIgnore != nil {
		out.AddToGitIgnore = fc.AddToGitIgnore
	}
	if fc.Include != nil {
		out.Include = fc.Include
	}
	if fc.Exclude != nil {
		out.Exclude = fc.Exclude
	}
	if fc.Threads != nil {
		out.Threads = fc.Threads
	}
	if fc.EntropyThreshold != nil {
		out.EntropyThreshold = fc.EntropyThreshold
	}
	if fc.MaxBytes != nil {
		out.MaxBytes = fc.MaxBytes
	}
	if fc.DefaultExcludes != nil {
		out.DefaultExcludes = fc.DefaultExcludes
	}
	return out
}
