package engine

import (
	"path/filepath"
	"strings"
)

var defaultExcludeDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"target":       true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"coverage":     true,
	"bin":          true,
	"obj":          true,
	".idea":        true,
	".vscode":      true,
}

// Extensions scanned when no include globs are configured.
var defaultScanExts = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".py": true, ".rb": true, ".php": true, ".go": true,
	".java": true, ".kt": true, ".cs": true, ".cpp": true, ".c": true, ".h": true,
	".json": true, ".yml": true, ".yaml": true, ".toml": true, ".xml": true,
	".ini": true, ".cfg": true, ".conf": true, ".properties": true,
	".sh": true, ".bash": true, ".zsh": true, ".ps1": true,
	".tf": true, ".tfvars": true, ".env": true, ".txt": true, ".md": true,
	".sql": true, ".pem": true, ".key": true,
}

// Extensionless or dot-files that commonly carry credentials.
var defaultScanNames = map[string]bool{
	".env":             true,
	".envrc":           true,
	".npmrc":           true,
	".pypirc":          true,
	".netrc":           true,
	".git-credentials": true,
	"credentials":      true,
	"dockerfile":       true,
	"id_rsa":           true,
	"id_dsa":           true,
	"id_ecdsa":         true,
	"id_ed25519":       true,
}

// suffixes treated as non-text or noisy artifacts when default excludes enabled
var defaultExcludeFileSuffixes = []string{
	".min.js", ".map",
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg",
	".pdf", ".zip", ".gz", ".tar", ".tgz", ".7z",
	".jar", ".class", ".exe", ".dll", ".so",
	".wasm", ".pyc",
	".pb.go", ".gen.go",
}

var defaultExcludeFileNames = map[string]bool{
	"yarn.lock":         true,
	"package-lock.json": true,
	"pnpm-lock.yaml":    true,
	"composer.lock":     true,
	"poetry.lock":       true,
	".ds_store":         true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name] || strings.HasPrefix(name, ".git")
}

func scannableFile(rel string) bool {
	base := strings.ToLower(filepath.Base(rel))
	if defaultScanNames[base] {
		return true
	}
	// .env.local, .env.production and friends
	if strings.HasPrefix(base, ".env.") {
		return true
	}
	return defaultScanExts[strings.ToLower(filepath.Ext(rel))]
}

func isDefaultFileExcluded(lowerRel string) bool {
	if strings.HasSuffix(lowerRel, ".lock") {
		return true
	}
	for _, s := range defaultExcludeFileSuffixes {
		if strings.HasSuffix(lowerRel, s) {
			return true
		}
	}
	if strings.Contains(lowerRel, ".gen.") {
		return true
	}
	parts := strings.Split(lowerRel, "/")
	if len(parts) > 0 && defaultExcludeFileNames[parts[len(parts)-1]] {
		return true
	}
	return false
}
