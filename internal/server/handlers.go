package server

import (
	"encoding/json"
	"net/http"
	"time"
)

var startTime = time.Now()

// handleHealth is a simple liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSystemStatus reports basic process information
func (s *Server) handleSystemStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(startTime).Seconds()),
	})
}

// handleRefresh runs a batch quote refresh across all holdings. Individual
// fetch failures are counted in the summary, not surfaced as request errors.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	summary, err := s.refresher.RefreshAll(r.Context())
	if err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
