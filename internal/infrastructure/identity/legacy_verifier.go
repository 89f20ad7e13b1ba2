// Package identity is the client for the legacy Finanzauto identity service
// that confirms every login before a token is issued.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/leverblum/boardsctrl/internal/core/domain"
)

const (
	verifyPath     = "/Services/ApiWeb/api/RespuestaLg"
	defaultTimeout = 10 * time.Second
	defaultAppID   = 3
)

// Observation results passed to an Observer.
const (
	ResultAccepted    = "accepted"
	ResultRejected    = "rejected"
	ResultUnavailable = "unavailable"
)

// Config configures the legacy verifier.
type Config struct {
	BaseURL   string
	AppID     int
	Signature string
	Timeout   time.Duration
}

// Observer receives the result and latency of every call.
type Observer func(result string, elapsed time.Duration)

// Option customises a LegacyVerifier.
type Option func(*LegacyVerifier)

// WithHTTPClient replaces the default client. The configured timeout still
// bounds each call through the request context.
func WithHTTPClient(c *http.Client) Option {
	return func(v *LegacyVerifier) { v.client = c }
}

// WithObserver registers a latency observer.
func WithObserver(o Observer) Option {
	return func(v *LegacyVerifier) { v.observe = o }
}

// LegacyVerifier implements ports.IdentityVerifier over HTTP.
type LegacyVerifier struct {
	endpoint  string
	appID     int
	signature string
	timeout   time.Duration
	client    *http.Client
	observe   Observer
}

func NewLegacyVerifier(cfg Config, opts ...Option) (*LegacyVerifier, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("identity: empty base url")
	}
	if cfg.Signature == "" {
		return nil, errors.New("identity: empty signature")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	appID := cfg.AppID
	if appID == 0 {
		appID = defaultAppID
	}

	v := &LegacyVerifier{
		endpoint:  strings.TrimRight(cfg.BaseURL, "/") + verifyPath,
		appID:     appID,
		signature: cfg.Signature,
		timeout:   timeout,
		client:    &http.Client{Timeout: timeout},
		observe:   func(string, time.Duration) {},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

type verifyRequest struct {
	User         string `json:"User"`
	Passwd       string `json:"Passwd"`
	IdAplicativo int    `json:"IdAplicativo"`
	Firma        string `json:"Firma"`
}

type verifyResponse struct {
	Mensaje *struct {
		CodigoMensaje int    `json:"CodigoMensaje"`
		DescMensaje   string `json:"DescMensaje"`
	} `json:"Mensaje"`
	Roles []struct {
		Descripcion string `json:"Descripcion"`
	} `json:"Roles"`
}

// Verify posts the credentials once, without retry. Transport failures,
// timeouts, cancellation and undecodable bodies are returned wrapped in
// domain.ErrExternalUnavailable. A non-2xx status or a non-zero
// CodigoMensaje is a rejection.
func (v *LegacyVerifier) Verify(ctx context.Context, username, password string) (*domain.ExternalVerification, error) {
	start := time.Now()
	out, err := v.verify(ctx, username, password)

	result := ResultAccepted
	switch {
	case err != nil:
		result = ResultUnavailable
	case !out.Success:
		result = ResultRejected
	}
	v.observe(result, time.Since(start))

	return out, err
}

func (v *LegacyVerifier) verify(ctx context.Context, username, password string) (*domain.ExternalVerification, error) {
	body, err := json.Marshal(verifyRequest{
		User:         username,
		Passwd:       password,
		IdAplicativo: v.appID,
		Firma:        v.signature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", domain.ErrExternalUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrExternalUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExternalUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.ExternalVerification{
			Success:      false,
			ResponseCode: -1,
			Message:      http.StatusText(resp.StatusCode),
			HTTPStatus:   resp.StatusCode,
		}, nil
	}

	var payload verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrExternalUnavailable, err)
	}

	out := &domain.ExternalVerification{
		ResponseCode: -1,
		HTTPStatus:   resp.StatusCode,
	}
	if payload.Mensaje != nil {
		out.ResponseCode = payload.Mensaje.CodigoMensaje
		out.Message = payload.Mensaje.DescMensaje
		out.Success = payload.Mensaje.CodigoMensaje == 0
	}
	for _, r := range payload.Roles {
		out.Roles = append(out.Roles, r.Descripcion)
	}
	return out, nil
}
