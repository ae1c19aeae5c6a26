// Package miele implements the Miele@home XKM appliance protocol.
//
// Miele appliances with an XKM 3100 W communication module expose a REST
// API over plain HTTP on the local network. Every request must carry an
// HMAC-SHA256 signature computed over a canonical request string, and every
// response body arrives AES-CBC encrypted with key material derived from
// the shared group key and a per-response initialisation vector.
//
// This package is the protocol core of the bridge:
//
//   - Credentials: the GroupID/GroupKey pair issued during pairing
//   - Sign: the canonical-string HMAC request signature
//   - Decrypt: response body decryption with the firmware padding quirk
//   - Client: signed forwarding and one-time commissioning
//
// # Request Signing
//
// The signature covers a five-line canonical string, each line terminated
// by a newline:
//
//	METHOD
//	HOST+PATH
//	(empty content-type line)
//	ACCEPT
//	DATE
//
// The digest is HMAC-SHA256 under the full group key, hex-encoded and
// upper-cased, and transmitted as:
//
//	Authorization: MieleH256 <GroupIDHex>:<signature>
//
// The Date header must carry the exact string used for signing; a
// regenerated date invalidates the signature.
//
// # Response Decryption
//
// The AES key is the first half of the group key. The IV is the first half
// of the hex-decoded second field of the X-Signature response header.
// The appliance firmware strips a trailing zero byte from the ciphertext;
// Decrypt restores it before CBC decryption. See decryptor.go.
//
// # Thread Safety
//
// Credentials are immutable after construction. Sign and Decrypt are pure
// functions. Client is safe for concurrent use from multiple goroutines.
package miele
