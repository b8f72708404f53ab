package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the browse-endpoint error shape: {"error":"..."}.
func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, map[string]any{"error": msg})
}

// WriteFailure writes the command-endpoint error shape:
// {"success":false,"error":"..."}.
func WriteFailure(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, map[string]any{"success": false, "error": msg})
}

// WriteSuccess writes {"success":true,"message":"..."}.
func WriteSuccess(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": msg})
}
