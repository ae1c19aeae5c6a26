package api

import "net/http"

// handleHealth returns the bridge health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}

// handleFavicon answers browser favicon probes with an empty 200 so they
// never fall through to host routing.
func (s *Server) handleFavicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
