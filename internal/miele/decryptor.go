package miele

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"fmt"
	"strings"
)

// Decrypt decrypts an encrypted appliance response body.
//
// Key material is derived per the XKM firmware scheme:
//
//   - AES key: the first half (by byte count) of the group key
//   - IV: the first half of the hex-decoded IV field, which is the second
//     colon-delimited field of the X-Signature response header
//
// The appliance transmits the ciphertext with its trailing zero byte
// stripped. Decrypt appends a single 0x00 byte before CBC decryption and
// then removes the PKCS#7 padding. This is almost certainly an off-by-one
// in the firmware's own padding, but it must be replicated byte-for-byte
// to interoperate with real appliances. Do not "fix" it.
//
// Parameters:
//   - cipherText: Raw response body bytes as received
//   - groupKey: Full group key (Decrypt derives the AES key itself)
//   - xSignature: Raw X-Signature header value; may be empty or malformed
//
// Returns:
//   - []byte: Decrypted plaintext, expected to be UTF-8 JSON
//   - error: ErrDecryptionFailed (wrapped with detail) on any failure
func Decrypt(cipherText []byte, groupKey []byte, xSignature string) ([]byte, error) {
	iv, err := deriveIV(xSignature)
	if err != nil {
		return nil, err
	}

	key, err := deriveKey(groupKey)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid key length %d: %w", ErrDecryptionFailed, len(key), err)
	}

	// Restore the zero byte the firmware strips from the ciphertext.
	buf := make([]byte, len(cipherText)+1)
	copy(buf, cipherText)

	if len(buf)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of the block size", ErrDecryptionFailed, len(buf))
	}

	cipher.NewCBCDecrypter(block, iv).CryptBlocks(buf, buf)

	return unpad(buf)
}

// deriveKey returns the AES key: the first half of the group key.
// The group key is never mutated; odd lengths fail fast rather than
// silently truncating (the upstream scheme leaves them undefined).
func deriveKey(groupKey []byte) ([]byte, error) {
	if len(groupKey) == 0 || len(groupKey)%2 != 0 {
		return nil, fmt.Errorf("%w: group key length %d is not an even number of bytes", ErrDecryptionFailed, len(groupKey))
	}

	key := make([]byte, len(groupKey)/2)
	copy(key, groupKey[:len(groupKey)/2])
	return key, nil
}

// deriveIV extracts and decodes the IV from an X-Signature header value.
// The header has the form "<scheme+id>:<hexIV>"; only the second field
// matters. A missing or malformed header yields an empty IV field, which
// is an error rather than silently decrypting garbage.
func deriveIV(xSignature string) ([]byte, error) {
	var field string
	if parts := strings.Split(xSignature, ":"); len(parts) >= 2 {
		field = parts[1]
	}
	if field == "" {
		return nil, fmt.Errorf("%w: X-Signature header is missing its IV field", ErrDecryptionFailed)
	}

	material, err := hex.DecodeString(field)
	if err != nil {
		return nil, fmt.Errorf("%w: X-Signature IV field is not valid hex: %w", ErrDecryptionFailed, err)
	}
	if len(material) == 0 || len(material)%2 != 0 {
		return nil, fmt.Errorf("%w: IV material length %d is not an even number of bytes", ErrDecryptionFailed, len(material))
	}

	iv := material[:len(material)/2]
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("%w: derived IV length %d, want %d", ErrDecryptionFailed, len(iv), aes.BlockSize)
	}
	return iv, nil
}

// unpad strips PKCS#7 padding from a decrypted buffer.
func unpad(buf []byte) ([]byte, error) {
	if len(buf) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrDecryptionFailed)
	}

	n := int(buf[len(buf)-1])
	if n == 0 || n > aes.BlockSize || n > len(buf) {
		return nil, fmt.Errorf("%w: invalid padding length %d", ErrDecryptionFailed, n)
	}
	for _, b := range buf[len(buf)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("%w: inconsistent padding bytes", ErrDecryptionFailed)
		}
	}
	return buf[:len(buf)-n], nil
}
