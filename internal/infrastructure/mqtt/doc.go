// Package mqtt provides the bridge's optional MQTT state publisher.
//
// When enabled, every successful forwarded request also publishes the
// decrypted appliance JSON as a retained message, so MQTT-based
// dashboards and automations can consume appliance state without polling
// the bridge's HTTP surface:
//
//	miele/state/<host><device-path>   retained appliance state
//	miele/bridge/status               bridge online/offline (with LWT)
//
// The publisher is deliberately one-way. The bridge accepts no commands
// over MQTT; the only write it ever performs against an appliance is the
// one-time commissioning PUT, and that stays on the HTTP surface.
//
// Connection management handles auto-reconnect with exponential backoff,
// Last Will and Testament, and clean sessions.
//
// # Thread Safety
//
// All exported methods are safe for concurrent use from multiple
// goroutines; concurrent forwarded requests publish freely.
package mqtt
