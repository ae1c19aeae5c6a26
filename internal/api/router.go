package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
//
// Static prefixes are registered alongside the {host} parameter routes;
// chi gives static segments priority, so "favicon.ico", "healthz",
// "init", and "explore" are never treated as appliance addresses.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)

	// Browsers request this on every visit; answer it locally.
	r.Get("/favicon.ico", s.handleFavicon)
	r.Get("/healthz", s.handleHealth)

	// One-time commissioning handshake
	r.Get("/init/{host}", s.handleCommission)

	// Browsable HTML view of the appliance API
	r.Get("/explore/{host}", s.handleExplore)
	r.Get("/explore/{host}/*", s.handleExplore)

	// Raw JSON forwarding
	r.Get("/{host}", s.handleForward)
	r.Get("/{host}/*", s.handleForward)

	return r
}

// devicePath extracts the appliance-side path from the request URL by
// stripping the route prefix ("/{host}" or "/explore/{host}").
//
// It works on the raw URL path rather than the wildcard route parameter
// so a trailing slash survives: the appliance treats "/Devices" and
// "/Devices/" as different resources, and the signature covers the path
// byte-for-byte.
func devicePath(r *http.Request, prefix string) string {
	path := strings.TrimPrefix(r.URL.Path, prefix)
	if path == "" {
		path = "/"
	}
	return path
}
