package mqtt

import (
	"fmt"
)

// Maximum payload size for MQTT messages (1MB).
// Decrypted appliance documents are a few kilobytes; anything near this
// limit indicates something has gone wrong upstream.
const maxPayloadSize = 1 << 20

// Publish sends a message to the specified MQTT topic.
//
// Parameters:
//   - topic: The topic to publish to (e.g. "miele/state/192.168.1.50/Devices")
//   - payload: The message payload (decrypted JSON, max 1MB)
//   - qos: Quality of Service level (0, 1, or 2)
//   - retained: Whether the broker should retain the message for new subscribers
//
// Returns:
//   - error: nil on success, or wrapped error describing the failure
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// PublishState publishes decrypted appliance state as a retained message
// with the configured default QoS.
//
// Retained delivery means a dashboard subscribing after the fact still
// sees the most recent state for every path the bridge has forwarded.
func (c *Client) PublishState(host, path string, payload []byte) error {
	return c.Publish(Topics{}.ApplianceState(host, path), payload, byte(c.cfg.QoS), true)
}
