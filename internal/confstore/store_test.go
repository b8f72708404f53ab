package confstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCreateListSaveRoundTrip(t *testing.T) {
	s := New(t.TempDir())

	name, err := s.Create("x")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if name != "x.txt" {
		t.Fatalf("resolved name = %q, want x.txt", name)
	}

	docs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 || docs[0].Filename != "x.txt" {
		t.Fatalf("list = %+v", docs)
	}
	if docs[0].Content != placeholder {
		t.Fatalf("placeholder content = %q", docs[0].Content)
	}

	if err := s.Save("x.txt", "new content"); err != nil {
		t.Fatalf("save: %v", err)
	}
	docs, _ = s.List()
	if docs[0].Content != "new content" {
		t.Fatalf("reload = %q, want %q", docs[0].Content, "new content")
	}
}

func TestCreateKeepsRecognizedSuffix(t *testing.T) {
	s := New(t.TempDir())
	name, err := s.Create("dhcp.conf")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if name != "dhcp.conf" {
		t.Fatalf("name = %q, want dhcp.conf", name)
	}
}

func TestCreateDuplicateFails(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Create("a"); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := s.Create("a")
	if !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	// "a" and "a.txt" resolve to the same document
	_, err = s.Create("a.txt")
	if !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists for resolved duplicate, got %v", err)
	}
}

func TestMissingFilename(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Create("   "); !errors.Is(err, ErrMissingFilename) {
		t.Fatalf("create: %v", err)
	}
	if err := s.Save("", "content"); !errors.Is(err, ErrMissingFilename) {
		t.Fatalf("save: %v", err)
	}
}

func TestListFiltersBySuffixAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.conf", "ignore.json", "notes"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s := New(dir)
	docs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 || docs[0].Filename != "a.conf" || docs[1].Filename != "b.txt" {
		t.Fatalf("list = %+v", docs)
	}
}

func TestListUnavailableDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist"))
	if _, err := s.List(); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestSaveStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Save("../../evil.txt", "content"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "evil.txt")); err != nil {
		t.Fatal("document not stored inside the store directory")
	}
}
