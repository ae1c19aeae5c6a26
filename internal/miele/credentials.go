package miele

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Expected credential sizes in the reference deployment. The signing and
// decryption algorithms accept any even-length group key; these are used
// only for advisory validation at startup.
const (
	// GroupIDBytes is the expected GroupID length after hex decoding.
	GroupIDBytes = 8

	// GroupKeyBytes is the expected GroupKey length after hex decoding.
	GroupKeyBytes = 64
)

// Credentials holds the GroupID/GroupKey pair registered with an appliance
// during commissioning.
//
// The pair is loaded once at process start and never mutated afterwards.
// Accessors return copies so callers cannot corrupt the shared secret.
type Credentials struct {
	groupID  []byte
	groupKey []byte
}

// NewCredentials builds Credentials from hex-encoded GroupID and GroupKey
// strings, as supplied via the GROUP_ID and GROUP_KEY environment
// variables or the gateway section of the config file.
//
// Returns:
//   - *Credentials: Immutable credential pair
//   - error: ErrInvalidCredentials if either value is not valid hex
func NewCredentials(groupIDHex, groupKeyHex string) (*Credentials, error) {
	id, err := hex.DecodeString(strings.TrimSpace(groupIDHex))
	if err != nil {
		return nil, fmt.Errorf("%w: group id is not valid hex: %w", ErrInvalidCredentials, err)
	}
	if len(id) == 0 {
		return nil, fmt.Errorf("%w: group id is empty", ErrInvalidCredentials)
	}

	key, err := hex.DecodeString(strings.TrimSpace(groupKeyHex))
	if err != nil {
		return nil, fmt.Errorf("%w: group key is not valid hex: %w", ErrInvalidCredentials, err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: group key is empty", ErrInvalidCredentials)
	}

	return &Credentials{groupID: id, groupKey: key}, nil
}

// GroupIDHex returns the uppercase hex rendering of the GroupID, as used
// in the Authorization header and the commissioning body.
func (c *Credentials) GroupIDHex() string {
	return strings.ToUpper(hex.EncodeToString(c.groupID))
}

// GroupKeyHex returns the uppercase hex rendering of the GroupKey, as used
// in the commissioning body. Never log this value.
func (c *Credentials) GroupKeyHex() string {
	return strings.ToUpper(hex.EncodeToString(c.groupKey))
}

// Key returns a copy of the raw group key.
func (c *Credentials) Key() []byte {
	key := make([]byte, len(c.groupKey))
	copy(key, c.groupKey)
	return key
}

// HasExpectedSizes reports whether the decoded GroupID and GroupKey match
// the reference deployment sizes (GroupIDBytes and GroupKeyBytes). Other
// sizes still sign and decrypt; main() warns on a mismatch since it
// usually means a mistyped credential.
func (c *Credentials) HasExpectedSizes() bool {
	return len(c.groupID) == GroupIDBytes && len(c.groupKey) == GroupKeyBytes
}

// IsPlaceholder reports whether the group key is the all-zero placeholder
// default. A placeholder key signs and decrypts nothing useful; main()
// warns when the bridge starts with one.
func (c *Credentials) IsPlaceholder() bool {
	for _, b := range c.groupKey {
		if b != 0 {
			return false
		}
	}
	return true
}
