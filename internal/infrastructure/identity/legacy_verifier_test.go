package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/leverblum/boardsctrl/internal/core/domain"
)

func newTestVerifier(t *testing.T, srv *httptest.Server, opts ...Option) *LegacyVerifier {
	t.Helper()
	opts = append([]Option{WithHTTPClient(srv.Client())}, opts...)
	v, err := NewLegacyVerifier(Config{BaseURL: srv.URL + "/", Signature: "firma-123", Timeout: time.Second}, opts...)
	if err != nil {
		t.Fatalf("NewLegacyVerifier: %v", err)
	}
	return v
}

func TestLegacyVerifier_Accepted(t *testing.T) {
	defer goleak.VerifyNone(t)

	var got verifyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != verifyPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Mensaje":{"CodigoMensaje":0,"DescMensaje":"OK"},"Roles":[{"Descripcion":"Admin"}]}`))
	}))
	defer srv.Close()

	out, err := newTestVerifier(t, srv).Verify(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !out.Success || out.ResponseCode != 0 || out.Message != "OK" || out.HTTPStatus != http.StatusOK {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	if len(out.Roles) != 1 || out.Roles[0] != "Admin" {
		t.Fatalf("unexpected roles: %v", out.Roles)
	}
	if got.User != "alice" || got.Passwd != "secret" || got.IdAplicativo != 3 || got.Firma != "firma-123" {
		t.Fatalf("unexpected request body: %+v", got)
	}
}

func TestLegacyVerifier_RejectedByCode(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Mensaje":{"CodigoMensaje":2,"DescMensaje":"Clave errada"}}`))
	}))
	defer srv.Close()

	out, err := newTestVerifier(t, srv).Verify(context.Background(), "alice", "bad")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if out.Success || out.ResponseCode != 2 || out.Message != "Clave errada" {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestLegacyVerifier_MissingMessageIsRejection(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Roles":[]}`))
	}))
	defer srv.Close()

	out, err := newTestVerifier(t, srv).Verify(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if out.Success {
		t.Fatalf("a response without Mensaje must not succeed")
	}
}

func TestLegacyVerifier_Non2xxIsRejection(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	out, err := newTestVerifier(t, srv).Verify(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if out.Success || out.HTTPStatus != http.StatusUnauthorized || out.ResponseCode != -1 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
}

func TestLegacyVerifier_UndecodableBody(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	_, err := newTestVerifier(t, srv).Verify(context.Background(), "alice", "pw")
	if !errors.Is(err, domain.ErrExternalUnavailable) {
		t.Fatalf("expected ErrExternalUnavailable, got %v", err)
	}
}

func TestLegacyVerifier_Timeout(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	v, err := NewLegacyVerifier(
		Config{BaseURL: srv.URL, Signature: "firma", Timeout: 50 * time.Millisecond},
		WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewLegacyVerifier: %v", err)
	}

	_, err = v.Verify(context.Background(), "alice", "pw")
	if !errors.Is(err, domain.ErrExternalUnavailable) {
		t.Fatalf("expected ErrExternalUnavailable on timeout, got %v", err)
	}
}

func TestLegacyVerifier_CallerCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := newTestVerifier(t, srv).Verify(ctx, "alice", "pw")
	if !errors.Is(err, domain.ErrExternalUnavailable) {
		t.Fatalf("expected ErrExternalUnavailable, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation to be preserved in the chain, got %v", err)
	}
}

func TestLegacyVerifier_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	v, err := NewLegacyVerifier(Config{BaseURL: url, Signature: "firma", Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewLegacyVerifier: %v", err)
	}
	if _, err := v.Verify(context.Background(), "alice", "pw"); !errors.Is(err, domain.ErrExternalUnavailable) {
		t.Fatalf("expected ErrExternalUnavailable, got %v", err)
	}
}

func TestLegacyVerifier_Observer(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Mensaje":{"CodigoMensaje":1,"DescMensaje":"No"}}`))
	}))
	defer srv.Close()

	var (
		mu      sync.Mutex
		results []string
	)
	v := newTestVerifier(t, srv, WithObserver(func(result string, _ time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, result)
	}))

	_, _ = v.Verify(context.Background(), "alice", "pw")

	mu.Lock()
	defer mu.Unlock()
	if len(results) != 1 || results[0] != ResultRejected {
		t.Fatalf("expected one %q observation, got %v", ResultRejected, results)
	}
}

func TestNewLegacyVerifier_Validation(t *testing.T) {
	if _, err := NewLegacyVerifier(Config{Signature: "x"}); err == nil {
		t.Fatalf("expected error for empty base url")
	}
	if _, err := NewLegacyVerifier(Config{BaseURL: "http://example.invalid"}); err == nil {
		t.Fatalf("expected error for empty signature")
	}
}
