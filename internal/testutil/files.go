package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes body to path, creating parent directories.
func WriteFile(t testing.TB, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WriteFiles creates a fixture tree under a new temporary directory and
// returns its root. Keys are slash-separated paths relative to the root.
func WriteFiles(t testing.TB, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(name)), body)
	}
	return root
}
