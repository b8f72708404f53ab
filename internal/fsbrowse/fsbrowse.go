// Package fsbrowse lists directories for the management UI. Listing is a
// read-only projection of the filesystem, recomputed per request. The
// browsable root defaults to the OS root: full-filesystem browsing is a
// deliberate, documented capability of this single-operator tool, not an
// accident to be sandboxed away silently.
package fsbrowse

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrNotFound     = errors.New("path not found")
	ErrAccessDenied = errors.New("access denied")
)

// Entry is one directory entry.
type Entry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	IsDir bool   `json:"isDir"`
	Size  int64  `json:"size"`
}

type Browser struct {
	Root string // "/" exposes the whole filesystem
}

// Resolve maps a requested path into the browsable root and rejects
// traversal outside it. With the default root "/" every absolute path
// resolves to itself.
func (b Browser) Resolve(requested string) (string, error) {
	root := b.Root
	if root == "" {
		root = "/"
	}
	if requested == "" {
		requested = "/"
	}
	joined := filepath.Join(root, filepath.Clean("/"+requested))
	if joined != root && !strings.HasPrefix(joined, strings.TrimSuffix(root, "/")+string(filepath.Separator)) {
		return "", ErrAccessDenied
	}
	return joined, nil
}

// List returns the entries of dir sorted directories-first, then by name
// (case-sensitive), matching what the file browser displays.
func (b Browser) List(requested string) ([]Entry, error) {
	dir, err := b.Resolve(requested)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, Classify(err)
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		var size int64
		if info, err := e.Info(); err == nil {
			size = info.Size()
		}
		out = append(out, Entry{
			Name:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			IsDir: e.IsDir(),
			Size:  size,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDir != out[j].IsDir {
			return out[i].IsDir
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Stat resolves and stats a path for download.
func (b Browser) Stat(requested string) (string, fs.FileInfo, error) {
	path, err := b.Resolve(requested)
	if err != nil {
		return "", nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, Classify(err)
	}
	return path, info, nil
}

// Classify maps OS errors to the package's sentinel errors.
func Classify(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrAccessDenied
	default:
		return err
	}
}
