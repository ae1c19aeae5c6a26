package miele

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

// Encrypted response fixture: AES key is the first half of an all-zero
// 64-byte group key, IV material is sha256("miele-bridge-test").
const (
	respIVMaterialHex = "37233CC4D36943712FC758C2660C0576D51C4C41BD5445884D54C3AE648464BA"
	respWireHex       = "A91261FC06FD8F6C292EAD12278872832CE446EAD6AE56AA7154DA5287C356BDF1FBC042F2258EA156A984F199D874"
	respPlaintext     = `{"Devices":{"href":"/Devices"},"N":43}`
)

func zeroCredentials(t *testing.T) *Credentials {
	t.Helper()
	creds, err := NewCredentials("0001020304050607", strings.Repeat("00", GroupKeyBytes))
	if err != nil {
		t.Fatalf("NewCredentials() error = %v", err)
	}
	return creds
}

// testClient builds a client pointed at an httptest server and returns it
// with the server's loopback address.
func testClient(t *testing.T, creds *Credentials, srv *httptest.Server, opts Options) (*Client, string) {
	t.Helper()
	host, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	if err != nil {
		t.Fatalf("splitting server address: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parsing server port: %v", err)
	}
	opts.Port = port
	return NewClient(creds, opts), host
}

func TestClient_Get_SignsAndDecrypts(t *testing.T) {
	creds := zeroCredentials(t)

	var gotPath, gotAccept, gotAgent, gotDate, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotAgent = r.Header.Get("User-Agent")
		gotDate = r.Header.Get("Date")
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("X-Signature", "MieleH256:"+respIVMaterialHex)
		//nolint:errcheck
		w.Write(mustHex(t, respWireHex))
	}))
	defer srv.Close()

	client, host := testClient(t, creds, srv, Options{})

	body, err := client.Get(context.Background(), host, "/Devices/")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(body) != respPlaintext {
		t.Errorf("Get() body = %q, want %q", body, respPlaintext)
	}

	if gotPath != "/Devices/" {
		t.Errorf("request path = %q, want /Devices/ (trailing slash must survive)", gotPath)
	}
	if gotAccept != AcceptHeader {
		t.Errorf("Accept = %q, want %q", gotAccept, AcceptHeader)
	}
	if gotAgent != "Miele@mobile 2.3.3 Android" {
		t.Errorf("User-Agent = %q, want the mobile client string", gotAgent)
	}

	// The Authorization signature must cover the Date header that was
	// actually transmitted.
	prefix := "MieleH256 " + creds.GroupIDHex() + ":"
	if !strings.HasPrefix(gotAuth, prefix) {
		t.Fatalf("Authorization = %q, want prefix %q", gotAuth, prefix)
	}
	wantSig := Sign(creds.Key(), "GET", host, "/Devices/", AcceptHeader, gotDate)
	if got := strings.TrimPrefix(gotAuth, prefix); got != wantSig {
		t.Errorf("Authorization signature = %s, want %s", got, wantSig)
	}
}

func TestClient_Get_InvalidHost(t *testing.T) {
	client := NewClient(zeroCredentials(t), Options{})

	_, err := client.Get(context.Background(), "homeassistant.local", "/Devices/")
	if !errors.Is(err, ErrInvalidHost) {
		t.Errorf("Get() error = %v, want ErrInvalidHost", err)
	}
}

func TestClient_Get_StatusPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "signature mismatch", http.StatusForbidden)
	}))
	defer srv.Close()

	client, host := testClient(t, zeroCredentials(t), srv, Options{})

	_, err := client.Get(context.Background(), host, "/Devices/")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Get() error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusForbidden {
		t.Errorf("StatusError.Code = %d, want %d", statusErr.Code, http.StatusForbidden)
	}
	if !strings.Contains(statusErr.Body, "signature mismatch") {
		t.Errorf("StatusError.Body = %q, want the appliance body", statusErr.Body)
	}
}

func TestClient_Get_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, host := testClient(t, zeroCredentials(t), srv, Options{})

	body, err := client.Get(context.Background(), host, "/Devices/")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if body != nil {
		t.Errorf("Get() body = %q, want nil for 204", body)
	}
}

func TestClient_Get_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client, host := testClient(t, zeroCredentials(t), srv, Options{})
	srv.Close()

	_, err := client.Get(context.Background(), host, "/Devices/")
	if !errors.Is(err, ErrApplianceUnavailable) {
		t.Errorf("Get() error = %v, want ErrApplianceUnavailable", err)
	}
}

func TestClient_Get_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client, host := testClient(t, zeroCredentials(t), srv, Options{
		ConnectTimeout: 50 * time.Millisecond,
		RequestTimeout: time.Second,
	})

	_, err := client.Get(context.Background(), host, "/Devices/")
	if !errors.Is(err, ErrApplianceTimeout) {
		t.Errorf("Get() error = %v, want ErrApplianceTimeout", err)
	}
}

func TestClient_Get_UndecryptableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// No X-Signature header, so there is no IV to decrypt with.
		//nolint:errcheck
		w.Write([]byte("not encrypted"))
	}))
	defer srv.Close()

	client, host := testClient(t, zeroCredentials(t), srv, Options{})

	_, err := client.Get(context.Background(), host, "/Devices/")
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("Get() error = %v, want ErrDecryptionFailed", err)
	}
}

func TestClient_Commission(t *testing.T) {
	creds := zeroCredentials(t)

	var gotMethod, gotPath, gotContentType string
	var gotBody commissioningBody
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding commissioning body: %v", err)
		}
		//nolint:errcheck
		w.Write([]byte("registered"))
	}))
	defer srv.Close()

	client, host := testClient(t, creds, srv, Options{})

	body, err := client.Commission(context.Background(), host)
	if err != nil {
		t.Fatalf("Commission() error = %v", err)
	}
	if string(body) != "registered" {
		t.Errorf("Commission() body = %q, want %q", body, "registered")
	}

	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
	if gotPath != "/Security/Commissioning/" {
		t.Errorf("path = %q, want /Security/Commissioning/", gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotBody.GroupID != creds.GroupIDHex() {
		t.Errorf("body GroupID = %q, want %q", gotBody.GroupID, creds.GroupIDHex())
	}
	if gotBody.GroupKey != creds.GroupKeyHex() {
		t.Errorf("body GroupKey = %q, want %q", gotBody.GroupKey, creds.GroupKeyHex())
	}
}

func TestClient_Commission_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not in pairing mode", http.StatusConflict)
	}))
	defer srv.Close()

	client, host := testClient(t, zeroCredentials(t), srv, Options{})

	_, err := client.Commission(context.Background(), host)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Commission() error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusConflict {
		t.Errorf("StatusError.Code = %d, want %d", statusErr.Code, http.StatusConflict)
	}
}
