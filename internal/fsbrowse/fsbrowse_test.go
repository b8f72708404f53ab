package fsbrowse

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestListSortsDirectoriesFirstThenLexicographic(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []string{"zeta", "alpha"} {
		if err := os.Mkdir(filepath.Join(dir, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range []string{"banana.txt", "Apple.txt", "cherry.txt"} {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	b := Browser{Root: dir}
	entries, err := b.List("/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	// Directories first, then case-sensitive name order ("Apple" < "banana").
	want := []string{"alpha", "zeta", "Apple.txt", "banana.txt", "cherry.txt"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
	if !entries[0].IsDir || entries[2].IsDir {
		t.Fatalf("isDir flags wrong: %+v", entries)
	}
}

func TestListMissingPath(t *testing.T) {
	b := Browser{Root: t.TempDir()}
	_, err := b.List("/nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveRejectsEscape(t *testing.T) {
	b := Browser{Root: t.TempDir()}
	got, err := b.Resolve("/../..")
	if err != nil {
		// Clean collapses the traversal; the resolved path must stay inside.
		t.Fatalf("resolve: %v", err)
	}
	if got != b.Root {
		t.Fatalf("resolved %q outside root %q", got, b.Root)
	}
}

func TestResolveDefaultRootIsFilesystemRoot(t *testing.T) {
	b := Browser{}
	got, err := b.Resolve("/etc")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "/etc" {
		t.Fatalf("resolved = %q, want /etc", got)
	}
}

func TestStatFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	b := Browser{Root: dir}
	path, info, err := b.Stat("/f.txt")
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.IsDir() || info.Size() != 5 {
		t.Fatalf("info = %+v", info)
	}
	if path != filepath.Join(dir, "f.txt") {
		t.Fatalf("path = %q", path)
	}
}
