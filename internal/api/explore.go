package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/miele-bridge/internal/explore"
	"github.com/nerrad567/miele-bridge/internal/infrastructure/influxdb"
)

// handleExplore forwards a signed GET like handleForward but renders the
// decrypted document as a browsable HTML page, rewriting href fields into
// links back through the explore route.
//
// Errors still use the JSON envelope: a browser shows the raw JSON, and
// scripted callers get the same contract on both route families.
func (s *Server) handleExplore(w http.ResponseWriter, r *http.Request) {
	host := chi.URLParam(r, "host")
	path := devicePath(r, "/explore/"+host)

	start := time.Now()
	body, err := s.appliance.Get(r.Context(), host, path)
	if err != nil {
		s.applianceFailure(w, host, path, err, start)
		return
	}

	s.recordRequest(host, path, influxdb.OutcomeOK, http.StatusOK, time.Since(start))
	s.publishState(host, path, body)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if len(body) == 0 {
		//nolint:errcheck // Best-effort write to response
		w.Write(explore.RenderNoContent(host, path, http.StatusNoContent))
		return
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		// Some endpoints answer with plain text; show it rather than fail.
		//nolint:errcheck // Best-effort write to response
		w.Write(explore.RenderRaw(host, path, string(body)))
		return
	}

	doc = explore.Rewrite(doc, host, path)
	//nolint:errcheck // Best-effort write to response
	w.Write(explore.RenderPage(host, path, doc))
}
