// Package api provides the HTTP surface of the Miele bridge.
//
// It exposes four route families:
//
//   - GET /{host}/{path...}         forward a signed request, return decrypted JSON
//   - GET /explore/{host}/{path...} same, rendered as a browsable HTML page
//   - GET /init/{host}              one-time commissioning handshake
//   - GET /healthz                  liveness probe
//
// The server follows the same lifecycle pattern as the infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple
// goroutines. Each inbound request performs at most one outbound
// appliance call and shares no mutable state with other requests.
package api
