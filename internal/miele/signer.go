package miele

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"
)

// AcceptHeader is the media type the appliance firmware expects on every
// signed request. It is part of the canonical string, so the transmitted
// Accept header must match it exactly.
const AcceptHeader = "application/vnd.miele.v1+json"

// authScheme is the Authorization scheme understood by the appliance.
const authScheme = "MieleH256"

// Sign computes the request signature for a call to an appliance.
//
// The canonical string is five newline-terminated lines: the HTTP method,
// the host concatenated with the path, an always-empty content-type line,
// the accept header, and the HTTP date. It is hashed with HMAC-SHA256
// under the full group key; the digest is returned as 64 uppercase hex
// characters.
//
// Sign is a pure function: identical inputs always yield an identical
// signature, and it has no failure mode. Garbage inputs produce a
// well-formed signature that the appliance rejects with 403.
//
// Parameters:
//   - groupKey: Raw group key bytes (full key, not the derived AES key)
//   - method: HTTP verb, e.g. "GET"
//   - host: Appliance IPv4 address
//   - path: Device path including leading slash, unescaped
//   - accept: Accept header value (AcceptHeader in practice)
//   - date: HTTP-format date; the same string must go on the Date header
func Sign(groupKey []byte, method, host, path, accept, date string) string {
	canonical := method + "\n" + host + path + "\n\n" + accept + "\n" + date + "\n"

	mac := hmac.New(sha256.New, groupKey)
	mac.Write([]byte(canonical))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}

// HTTPDate formats t as an RFC 1123 GMT date string, the format the
// appliance reconstructs server-side to verify the signature.
//
// The upstream gateway had to correct its local clock back to UTC before
// formatting; Go's time package formats the UTC instant directly, so no
// offset correction is needed here.
func HTTPDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

// authorizationHeader builds the Authorization header value for a signed
// request: "MieleH256 <GroupIDHex>:<signature>".
func (c *Credentials) authorizationHeader(signature string) string {
	return authScheme + " " + c.GroupIDHex() + ":" + signature
}
