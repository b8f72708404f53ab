package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adamcubed/wifibox/internal/confstore"
	"github.com/adamcubed/wifibox/pkg/httpx"
)

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List()
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "StoreUnavailable")
		return
	}
	if docs == nil {
		docs = []confstore.Document{}
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (s *Server) handleSaveConfig(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Filename string `json:"filename"`
		Content  string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := s.store.Save(body.Filename, body.Content); err != nil {
		code, msg := storeError(err)
		httpx.WriteFailure(w, code, msg)
		return
	}
	httpx.WriteSuccess(w, "saved "+body.Filename)
}

func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "invalid json")
		return
	}
	name, err := s.store.Create(body.Filename)
	if err != nil {
		code, msg := storeError(err)
		httpx.WriteFailure(w, code, msg)
		return
	}
	httpx.WriteSuccess(w, "created "+name)
}

func storeError(err error) (int, string) {
	switch {
	case errors.Is(err, confstore.ErrMissingFilename):
		return http.StatusBadRequest, "MissingFilename"
	case errors.Is(err, confstore.ErrExists):
		return http.StatusConflict, "AlreadyExists"
	default:
		return http.StatusInternalServerError, "WriteError: " + err.Error()
	}
}
