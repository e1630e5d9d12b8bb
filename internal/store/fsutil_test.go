package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWriteFile_ReplacesContentsWithoutLeftovers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if err := atomicWriteFile(dir, "data.json.*.tmp", path, []byte(`{"v":2}`), 0o600); err != nil {
		t.Fatalf("atomicWriteFile: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != `{"v":2}` {
		t.Fatalf("unexpected contents: %q", string(b))
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("perm = %v; want 0600", info.Mode().Perm())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the target file; got %d entries", len(entries))
	}
}

func TestAtomicWriteFile_MissingDirFails(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "missing")
	if err := atomicWriteFile(dir, "x.*.tmp", filepath.Join(dir, "x"), []byte("x"), 0o644); err == nil {
		t.Fatalf("expected an error for a missing directory")
	}
}
