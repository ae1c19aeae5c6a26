package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Outcome tags for forwarded-request telemetry. Low cardinality by
// design: the host and outcome are tags, everything else is a field.
const (
	OutcomeOK          = "ok"
	OutcomeRejected    = "rejected"
	OutcomeUnavailable = "unavailable"
	OutcomeTimeout     = "timeout"
	OutcomeDecrypt     = "decrypt_error"
)

// WriteApplianceRequest records one forwarded appliance request.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - host: Appliance IPv4 address
//   - outcome: One of the Outcome constants
//   - path: Device path (field, not tag; paths are high cardinality)
//   - status: HTTP status returned to the caller
//   - duration: Round-trip time of the outbound call
//
// Example:
//
//	client.WriteApplianceRequest("192.168.1.50", influxdb.OutcomeOK,
//	    "/Devices/000123/State", 200, 38*time.Millisecond)
func (c *Client) WriteApplianceRequest(host, outcome, path string, status int, duration time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"appliance_request",
		map[string]string{
			"host":    host,
			"outcome": outcome,
		},
		map[string]interface{}{
			"path":        path,
			"status":      status,
			"duration_ms": float64(duration.Microseconds()) / millisecondsPerSecond,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteCommissioning records a commissioning attempt against an appliance.
func (c *Client) WriteCommissioning(host string, status int, duration time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"commissioning",
		map[string]string{
			"host":   host,
			"status": strconv.Itoa(status),
		},
		map[string]interface{}{
			"duration_ms": float64(duration.Microseconds()) / millisecondsPerSecond,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
