package miele

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const (
	testGroupIDHex  = "0001020304050607"
	testGroupKeyHex = "000102030405060708090A0B0C0D0E0F101112131415161718191A1B1C1D1E1F" +
		"202122232425262728292A2B2C2D2E2F303132333435363738393A3B3C3D3E3F"
)

func TestNewCredentials(t *testing.T) {
	creds, err := NewCredentials(testGroupIDHex, testGroupKeyHex)
	if err != nil {
		t.Fatalf("NewCredentials() error = %v", err)
	}

	if got := creds.GroupIDHex(); got != testGroupIDHex {
		t.Errorf("GroupIDHex() = %s, want %s", got, testGroupIDHex)
	}
	if got := creds.GroupKeyHex(); got != testGroupKeyHex {
		t.Errorf("GroupKeyHex() = %s, want %s", got, testGroupKeyHex)
	}
	if got := len(creds.Key()); got != GroupKeyBytes {
		t.Errorf("len(Key()) = %d, want %d", got, GroupKeyBytes)
	}
}

func TestNewCredentials_NormalisesCase(t *testing.T) {
	creds, err := NewCredentials(strings.ToLower(testGroupIDHex), strings.ToLower(testGroupKeyHex))
	if err != nil {
		t.Fatalf("NewCredentials() error = %v", err)
	}
	if got := creds.GroupIDHex(); got != testGroupIDHex {
		t.Errorf("GroupIDHex() = %s, want uppercase %s", got, testGroupIDHex)
	}
}

func TestNewCredentials_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		groupID  string
		groupKey string
	}{
		{"non-hex id", "xyz", testGroupKeyHex},
		{"non-hex key", testGroupIDHex, "xyz"},
		{"odd-length id", "000", testGroupKeyHex},
		{"empty id", "", testGroupKeyHex},
		{"empty key", testGroupIDHex, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCredentials(tt.groupID, tt.groupKey)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("NewCredentials() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestCredentials_KeyReturnsCopy(t *testing.T) {
	creds, err := NewCredentials(testGroupIDHex, testGroupKeyHex)
	if err != nil {
		t.Fatalf("NewCredentials() error = %v", err)
	}

	key := creds.Key()
	key[0] ^= 0xFF

	if bytes.Equal(key, creds.Key()) {
		t.Error("mutating the returned key changed the stored key")
	}
}

func TestCredentials_HasExpectedSizes(t *testing.T) {
	tests := []struct {
		name     string
		groupID  string
		groupKey string
		want     bool
	}{
		{"reference sizes", testGroupIDHex, testGroupKeyHex, true},
		{"short id", "0001", testGroupKeyHex, false},
		{"short key", testGroupIDHex, "00010203", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := NewCredentials(tt.groupID, tt.groupKey)
			if err != nil {
				t.Fatalf("NewCredentials() error = %v", err)
			}
			if got := creds.HasExpectedSizes(); got != tt.want {
				t.Errorf("HasExpectedSizes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCredentials_IsPlaceholder(t *testing.T) {
	placeholder, err := NewCredentials("0000000000000000", strings.Repeat("00", GroupKeyBytes))
	if err != nil {
		t.Fatalf("NewCredentials() error = %v", err)
	}
	if !placeholder.IsPlaceholder() {
		t.Error("IsPlaceholder() = false for all-zero key")
	}

	real, err := NewCredentials(testGroupIDHex, testGroupKeyHex)
	if err != nil {
		t.Fatalf("NewCredentials() error = %v", err)
	}
	if real.IsPlaceholder() {
		t.Error("IsPlaceholder() = true for non-zero key")
	}
}
