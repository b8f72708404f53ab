package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/adamcubed/wifibox/pkg/httpx"
)

// handleSyncTime sets the system and hardware clocks to the caller's
// epoch-milliseconds timestamp. The device usually has no RTC battery, so
// the browser's clock is the best time source available after a reboot.
func (s *Server) handleSyncTime(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Timestamp *json.Number `json:"timestamp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Timestamp == nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "InvalidTimestamp")
		return
	}
	ms, err := body.Timestamp.Int64()
	if err != nil {
		httpx.WriteFailure(w, http.StatusBadRequest, "InvalidTimestamp")
		return
	}
	target := time.UnixMilli(ms)
	if err := s.clock.Set(r.Context(), target); err != nil {
		s.log.Error().Err(err).Msg("clock sync failed")
		httpx.WriteFailure(w, http.StatusInternalServerError, "ClockWriteError: "+err.Error())
		return
	}
	s.log.Info().Time("to", target).Msg("clock synchronized")
	httpx.WriteSuccess(w, "time set to "+target.UTC().Format(time.RFC3339))
}
