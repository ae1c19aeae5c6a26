package miele

import (
	"errors"
	"fmt"
)

// Domain errors for the Miele protocol package.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrInvalidHost is returned when an appliance host is not a valid
	// IPv4 dotted-quad. Hostnames are deliberately rejected: the bridge
	// only ever talks to appliances by LAN address.
	ErrInvalidHost = errors.New("miele: invalid appliance host")

	// ErrInvalidCredentials is returned when a GroupID or GroupKey
	// cannot be decoded from its hex representation.
	ErrInvalidCredentials = errors.New("miele: invalid credentials")

	// ErrApplianceUnavailable is returned when the appliance cannot be
	// reached (connection refused, no route, DNS failure).
	ErrApplianceUnavailable = errors.New("miele: appliance unavailable")

	// ErrApplianceTimeout is returned when the appliance does not answer
	// within the configured timeouts.
	ErrApplianceTimeout = errors.New("miele: appliance request timed out")

	// ErrDecryptionFailed is returned when a response body cannot be
	// decrypted: missing or malformed X-Signature header, key or IV
	// length mismatch, ciphertext not block-aligned, or invalid padding.
	ErrDecryptionFailed = errors.New("miele: response decryption failed")
)

// StatusError is returned when the appliance answers with its own HTTP
// error, most commonly 403 when the signature or credentials are invalid
// or stale. The status and body are passed through to the caller.
type StatusError struct {
	Code int    // HTTP status code from the appliance
	Body string // raw response body, if any
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("miele: appliance returned HTTP %d", e.Code)
	}
	return fmt.Sprintf("miele: appliance returned HTTP %d: %s", e.Code, e.Body)
}
