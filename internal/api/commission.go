package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/miele-bridge/internal/miele"
)

// handleCommission performs the one-time commissioning handshake that
// registers the bridge's group credentials with an appliance.
//
// The appliance only accepts this while in pairing mode; afterwards it
// answers every attempt with its own HTTP error, which is passed through.
func (s *Server) handleCommission(w http.ResponseWriter, r *http.Request) {
	host := chi.URLParam(r, "host")

	start := time.Now()
	body, err := s.appliance.Commission(r.Context(), host)
	if err != nil {
		status, resp, _ := classifyApplianceError(err, host)
		s.logger.Warn("commissioning failed",
			"host", host,
			"status", status,
			"error", err,
		)
		if !errors.Is(err, miele.ErrInvalidHost) {
			s.recordCommissioning(host, status, time.Since(start))
		}
		writeJSON(w, status, resp)
		return
	}

	s.recordCommissioning(host, http.StatusOK, time.Since(start))
	s.logger.Info("appliance commissioned", "host", host)

	w.Header().Set("Content-Type", "application/json")
	if len(body) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"result": "commissioned"})
		return
	}
	//nolint:errcheck // Best-effort write to response
	w.Write(body)
}

// recordCommissioning writes commissioning telemetry when a telemetry
// client is configured.
func (s *Server) recordCommissioning(host string, status int, duration time.Duration) {
	if s.telemetry == nil {
		return
	}
	s.telemetry.WriteCommissioning(host, status, duration)
}
