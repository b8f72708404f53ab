// Package confstore is the management service's configuration-file store: a
// single flat directory of *.txt and *.conf documents keyed by filename.
//
// There is no locking. Concurrent saves to the same filename are
// last-writer-wins, which is acceptable for a single-operator administrative
// tool and is an accepted race, not an oversight.
package confstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrMissingFilename  = errors.New("filename required")
	ErrExists           = errors.New("document already exists")
	ErrStoreUnavailable = errors.New("config store unavailable")
)

// Document is one stored configuration file with its content loaded.
type Document struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

const placeholder = "# New configuration file\n"

var recognizedSuffixes = []string{".txt", ".conf"}

type Store struct {
	Dir string
}

func New(dir string) Store { return Store{Dir: dir} }

// List returns every recognized document, sorted by filename, content
// included.
func (s Store) List() ([]Document, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	var docs []Document
	for _, e := range entries {
		if e.IsDir() || !recognized(e.Name()) {
			continue
		}
		b, err := os.ReadFile(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		docs = append(docs, Document{Filename: e.Name(), Content: string(b)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Filename < docs[j].Filename })
	return docs, nil
}

// Save overwrites the document's content. The content is trusted and written
// verbatim; the store performs no sanitization.
func (s Store) Save(filename, content string) error {
	if strings.TrimSpace(filename) == "" {
		return ErrMissingFilename
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.Dir, filepath.Base(filename)), []byte(content), 0o644)
}

// Create makes a new document with placeholder content. A name without a
// recognized suffix gets ".txt" appended. Returns the resolved filename.
func (s Store) Create(filename string) (string, error) {
	name := strings.TrimSpace(filename)
	if name == "" {
		return "", ErrMissingFilename
	}
	name = filepath.Base(name)
	if !recognized(name) {
		name += ".txt"
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("%w: %s", ErrExists, name)
		}
		return "", err
	}
	defer f.Close()
	if _, err := f.WriteString(placeholder); err != nil {
		return "", err
	}
	return name, nil
}

func recognized(name string) bool {
	for _, suf := range recognizedSuffixes {
		if strings.HasSuffix(name, suf) {
			return true
		}
	}
	return false
}
