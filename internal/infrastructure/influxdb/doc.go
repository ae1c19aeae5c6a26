// Package influxdb provides the bridge's optional request telemetry.
//
// When enabled, every forwarded appliance request is recorded as an
// appliance_request measurement (tags: host, outcome; fields: path,
// status, duration_ms), and commissioning attempts as a commissioning
// measurement. Latency trends surface flaky WiFi modules long before an
// appliance goes fully silent.
//
// Writes use the non-blocking batched WriteAPI: telemetry never adds
// latency to a forwarded request, and write failures are reported through
// an asynchronous error callback.
//
// The bridge itself stores nothing; this is a fire-and-forget feed into
// an external time-series store, disabled by default.
package influxdb
