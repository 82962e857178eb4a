package dircache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOSListerReadsDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture error: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir fixture error: %v", err)
	}

	entries, err := NewOSLister().ListDirectory(dir)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	if !byName["sub"].IsDir {
		t.Fatalf("sub should be reported as a directory")
	}
	if byName["a.txt"].IsDir || byName["a.txt"].Size != 1 {
		t.Fatalf("unexpected metadata for a.txt: %+v", byName["a.txt"])
	}
}

func TestOSListerMissingPath(t *testing.T) {
	_, err := NewOSLister().ListDirectory(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOSListerNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture error: %v", err)
	}
	_, err := NewOSLister().ListDirectory(file)
	if !errors.Is(err, ErrNotDirectory) {
		t.Fatalf("expected ErrNotDirectory, got %v", err)
	}
}
