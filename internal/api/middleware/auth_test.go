package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leverblum/boardsctrl/internal/core/domain"
	"github.com/leverblum/boardsctrl/internal/core/service"
)

func newIssuer(t *testing.T, secret string) *service.JWTIssuer {
	t.Helper()
	iss, err := service.NewJWTIssuer(service.TokenConfig{Secret: secret, Issuer: "boards", Audience: "boards-clients", TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewJWTIssuer: %v", err)
	}
	return iss
}

func runAuth(t *testing.T, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(newIssuer(t, "secret"))(next)
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func mustNotRun(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token, _, err := newIssuer(t, "secret").Issue("u-1", "alice", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	for _, header := range []string{"Bearer " + token, token, "bearer " + token} {
		called := false
		rec := runAuth(t, header, func(c echo.Context) error {
			called = true
			if c.Get(ContextUsername) != "alice" {
				t.Fatalf("username not set")
			}
			if c.Get(ContextRole) != domain.RoleAdmin {
				t.Fatalf("role not set")
			}
			if c.Get(ContextAccountID) != "u-1" {
				t.Fatalf("account_id not set")
			}
			return c.NoContent(http.StatusOK)
		})

		if !called {
			t.Fatalf("next not called for header %q", header)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	rec := runAuth(t, "", mustNotRun(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	rec := runAuth(t, "Bearer not-a-token", mustNotRun(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	token, _, _ := newIssuer(t, "other-secret").Issue("u-1", "alice", domain.RoleAdmin)

	rec := runAuth(t, "Bearer "+token, mustNotRun(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
