package mqtt

import (
	"fmt"
	"strings"
)

// Topic prefixes for the bridge's MQTT hierarchy.
const (
	// TopicPrefix is the base for all bridge topics.
	TopicPrefix = "miele"

	// TopicPrefixState is the base for appliance state topics.
	TopicPrefixState = "miele/state"

	// TopicPrefixBridge is the base for bridge lifecycle topics.
	TopicPrefixBridge = "miele/bridge"
)

// Topics provides builders for the bridge's MQTT topics. Using these
// helpers keeps topic naming consistent between the publisher and any
// consuming dashboards.
//
//	topics := mqtt.Topics{}
//	topic := topics.ApplianceState("192.168.1.50", "/Devices/000123/State")
//	// Returns: "miele/state/192.168.1.50/Devices/000123/State"
type Topics struct{}

// ApplianceState returns the retained-state topic for a device path on an
// appliance. The device path maps directly onto topic levels; trailing
// slashes are trimmed so "/Devices" and "/Devices/" share a topic, and
// MQTT wildcard characters are replaced since they are not allowed in
// published topic names.
//
// Example: miele/state/192.168.1.50/Devices/000123/State
func (Topics) ApplianceState(host, path string) string {
	p := strings.TrimRight(path, "/")
	p = strings.NewReplacer("+", "_", "#", "_").Replace(p)
	return fmt.Sprintf("%s/%s%s", TopicPrefixState, host, p)
}

// BridgeStatus returns the bridge availability topic, used for the
// online/offline status and the LWT.
//
// Example: miele/bridge/status
func (Topics) BridgeStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixBridge)
}

// AllApplianceStates returns a pattern matching every appliance state
// topic. Intended for consumers, not the bridge itself.
//
// Pattern: miele/state/#
func (Topics) AllApplianceStates() string {
	return fmt.Sprintf("%s/#", TopicPrefixState)
}
