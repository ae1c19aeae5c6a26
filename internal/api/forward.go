package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/miele-bridge/internal/infrastructure/influxdb"
	"github.com/nerrad567/miele-bridge/internal/miele"
)

// handleForward signs and forwards a GET request to the appliance and
// returns the decrypted response body as raw JSON.
func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	host := chi.URLParam(r, "host")
	path := devicePath(r, "/"+host)

	start := time.Now()
	body, err := s.appliance.Get(r.Context(), host, path)
	if err != nil {
		s.applianceFailure(w, host, path, err, start)
		return
	}

	s.recordRequest(host, path, influxdb.OutcomeOK, http.StatusOK, time.Since(start))
	s.publishState(host, path, body)

	w.Header().Set("Content-Type", "application/json")
	if len(body) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	//nolint:errcheck // Best-effort write to response; connection may be closed
	w.Write(body)
}

// applianceFailure records telemetry for a failed appliance call, logs it,
// and writes the mapped error envelope.
func (s *Server) applianceFailure(w http.ResponseWriter, host, path string, err error, start time.Time) {
	status, resp, outcome := classifyApplianceError(err, host)

	// Invalid hosts never reach the appliance, so they don't belong in
	// appliance request telemetry.
	if !errors.Is(err, miele.ErrInvalidHost) {
		s.recordRequest(host, path, outcome, status, time.Since(start))
	}

	if errors.Is(err, miele.ErrDecryptionFailed) {
		s.logger.Error("appliance response decryption failed",
			"host", host,
			"path", path,
			"error", err,
		)
	} else {
		s.logger.Warn("appliance request failed",
			"host", host,
			"path", path,
			"status", status,
			"error", err,
		)
	}

	writeJSON(w, status, resp)
}

// recordRequest writes forwarded-request telemetry when a telemetry
// client is configured.
func (s *Server) recordRequest(host, path, outcome string, status int, duration time.Duration) {
	if s.telemetry == nil {
		return
	}
	s.telemetry.WriteApplianceRequest(host, outcome, path, status, duration)
}

// publishState publishes a decrypted appliance document as retained MQTT
// state when a messaging client is configured.
func (s *Server) publishState(host, path string, payload []byte) {
	if s.messaging == nil || len(payload) == 0 {
		return
	}
	if err := s.messaging.PublishState(host, path, payload); err != nil {
		s.logger.Warn("state publish failed",
			"host", host,
			"path", path,
			"error", err,
		)
	}
}
