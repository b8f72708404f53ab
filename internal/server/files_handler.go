package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/adamcubed/wifibox/internal/archive"
	"github.com/adamcubed/wifibox/internal/fsbrowse"
	"github.com/adamcubed/wifibox/pkg/httpx"
)

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	entries, err := s.browser.List(r.URL.Query().Get("path"))
	if err != nil {
		code, msg := browseError(err)
		httpx.WriteError(w, code, msg)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"items": entries})
}

// handleDownload streams a file verbatim, or a directory as a tar.gz built
// on the fly. The archive goes straight into the response body; aborting the
// connection aborts the walk, and nothing is left on disk either way.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	path, info, err := s.browser.Stat(r.URL.Query().Get("path"))
	if err != nil {
		code, msg := browseError(err)
		httpx.WriteError(w, code, msg)
		return
	}

	if info.IsDir() {
		name := filepath.Base(path)
		if name == "/" || name == "." {
			name = "root"
		}
		w.Header().Set("Content-Type", "application/gzip")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".tar.gz"))
		if err := archive.WriteTarGz(w, path); err != nil {
			// Headers are gone; all we can do is cut the stream and log.
			s.log.Error().Err(err).Str("path", path).Msg("ArchiveBuildError")
		}
		return
	}

	f, err := os.Open(path)
	if err != nil {
		code, msg := browseError(fsbrowse.Classify(err))
		httpx.WriteError(w, code, msg)
		return
	}
	defer f.Close()
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func browseError(err error) (int, string) {
	switch {
	case errors.Is(err, fsbrowse.ErrNotFound):
		return http.StatusNotFound, "PathNotFound"
	case errors.Is(err, fsbrowse.ErrAccessDenied):
		return http.StatusForbidden, "AccessDenied"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
