package miele

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Timeout defaults, matching the reference deployment: 5 seconds to the
// first response byte, 10 seconds for the whole exchange.
const (
	defaultConnectTimeout = 5 * time.Second
	defaultRequestTimeout = 10 * time.Second
)

// defaultUserAgent identifies the bridge as the Miele mobile client; some
// firmware revisions answer nothing else.
const defaultUserAgent = "Miele@mobile 2.3.3 Android"

// commissioningPath is the appliance endpoint that registers a new
// GroupID/GroupKey pair.
const commissioningPath = "/Security/Commissioning/"

// Logger is the minimal logging interface the client needs.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Options configures a Client. Zero values fall back to the reference
// deployment defaults.
type Options struct {
	// ConnectTimeout bounds dialling and time-to-first-byte. Default 5s.
	ConnectTimeout time.Duration

	// RequestTimeout bounds the whole round trip. Default 10s.
	RequestTimeout time.Duration

	// UserAgent overrides the outbound User-Agent header.
	UserAgent string

	// Port overrides the appliance HTTP port. Default 80. Appliances
	// only listen on 80; this exists for lab setups and tests.
	Port int
}

// Client performs signed, encrypted exchanges with Miele appliances.
//
// Each call is a single outbound round trip with no retries; a failed
// call surfaces immediately as a classified error. The client holds no
// per-request state and is safe for concurrent use.
type Client struct {
	http      *http.Client
	creds     *Credentials
	userAgent string
	port      int
	logger    Logger
}

// NewClient creates an appliance client for the given credentials.
func NewClient(creds *Credentials, opts Options) *Client {
	connectTimeout := opts.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}
	requestTimeout := opts.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	port := opts.Port
	if port == 0 {
		port = 80
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		ResponseHeaderTimeout: connectTimeout,
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			Timeout:   requestTimeout,
		},
		creds:     creds,
		userAgent: userAgent,
		port:      port,
	}
}

// SetLogger sets a logger for diagnostic output. If not set, the client
// is silent.
func (c *Client) SetLogger(logger Logger) {
	c.logger = logger
}

// Get performs a signed GET against an appliance and returns the
// decrypted response body.
//
// The flow is: validate the host, sign the canonical request string with
// the current time, perform the round trip, classify transport failures,
// pass appliance HTTP errors through as *StatusError, and decrypt the
// body using the X-Signature response header. A 204 or empty body returns
// (nil, nil) without attempting decryption.
//
// Parameters:
//   - ctx: Context for cancellation; timeouts also apply from Options
//   - host: Appliance IPv4 address
//   - path: Device path including leading slash (e.g. "/Devices/")
//
// Returns:
//   - []byte: Decrypted plaintext JSON, or nil for an empty response
//   - error: ErrInvalidHost, ErrApplianceUnavailable, ErrApplianceTimeout,
//     ErrDecryptionFailed, or *StatusError
func (c *Client) Get(ctx context.Context, host, path string) ([]byte, error) {
	if err := ValidateHost(host); err != nil {
		return nil, err
	}

	date := HTTPDate(time.Now())
	signature := Sign(c.creds.Key(), http.MethodGet, host, path, AcceptHeader, date)

	req, err := c.newRequest(ctx, http.MethodGet, host, path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Date", date)
	req.Header.Set("Authorization", c.creds.authorizationHeader(signature))

	if c.logger != nil {
		c.logger.Debug("forwarding signed request", "host", host, "path", path)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	if resp.StatusCode == http.StatusNoContent || len(body) == 0 {
		return nil, nil
	}

	plaintext, err := Decrypt(body, c.creds.Key(), resp.Header.Get("X-Signature"))
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

// commissioningBody is the unsigned JSON payload of the registration PUT.
// Field names are fixed by the appliance firmware.
type commissioningBody struct {
	GroupID  string `json:"GroupID"`
	GroupKey string `json:"GroupKey"`
}

// Commission registers the bridge's GroupID/GroupKey pair with an
// appliance via the one-time unsigned PUT to /Security/Commissioning/.
//
// The appliance accepts the pair only while in pairing mode. The response
// body, if any, is passed through untouched (commissioning responses are
// not encrypted).
func (c *Client) Commission(ctx context.Context, host string) ([]byte, error) {
	if err := ValidateHost(host); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(commissioningBody{
		GroupID:  c.creds.GroupIDHex(),
		GroupKey: c.creds.GroupKeyHex(),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding commissioning body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, host, commissioningPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Date", HTTPDate(time.Now()))
	req.Header.Set("Content-Type", "application/json")

	if c.logger != nil {
		c.logger.Debug("commissioning appliance", "host", host)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// newRequest builds an outbound request with the ambient headers every
// appliance exchange carries. The Go transport adds Accept-Encoding: gzip
// and transparently decompresses, so it is not set here.
func (c *Client) newRequest(ctx context.Context, method, host, path string, body io.Reader) (*http.Request, error) {
	hostport := host
	if c.port != 80 {
		hostport = net.JoinHostPort(host, strconv.Itoa(c.port))
	}

	req, err := http.NewRequestWithContext(ctx, method, "http://"+hostport, body)
	if err != nil {
		return nil, fmt.Errorf("building appliance request: %w", err)
	}
	// Set the path directly: device paths are signed unescaped and must
	// reach the wire as-is.
	req.URL.Path = path

	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("User-Agent", c.userAgent)
	req.Host = host

	return req, nil
}

// classifyTransportError maps a transport failure onto the package's
// availability errors: timeouts are ErrApplianceTimeout, everything else
// (connection refused, no route) is ErrApplianceUnavailable.
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", ErrApplianceTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrApplianceUnavailable, err)
}
