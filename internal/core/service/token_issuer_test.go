package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/leverblum/boardsctrl/internal/core/domain"
)

func TestJWTIssuer_RoundTrip(t *testing.T) {
	iss := newTestIssuer(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return now }

	token, exp, err := iss.Issue("u-1", "alice", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !exp.Equal(now.Add(time.Hour)) {
		t.Fatalf("expected exp %v, got %v", now.Add(time.Hour), exp)
	}

	claims, err := iss.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.AccountID != "u-1" || claims.Username != "alice" || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.IssuedAt.Equal(now) || !claims.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected times: iat=%v exp=%v", claims.IssuedAt, claims.ExpiresAt)
	}
}

func TestJWTIssuer_DefaultTTL(t *testing.T) {
	iss, err := NewJWTIssuer(TokenConfig{Secret: "secret"})
	if err != nil {
		t.Fatalf("NewJWTIssuer: %v", err)
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return now }

	_, exp, err := iss.Issue("u-1", "alice", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if exp.Sub(now) != 24*time.Hour {
		t.Fatalf("expected 24h TTL, got %v", exp.Sub(now))
	}
}

func TestJWTIssuer_EmptySecret(t *testing.T) {
	if _, err := NewJWTIssuer(TokenConfig{}); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestJWTIssuer_UniqueTokens(t *testing.T) {
	iss := newTestIssuer(t)
	now := time.Now()
	iss.now = func() time.Time { return now }

	a, _, _ := iss.Issue("u-1", "alice", domain.RoleAdmin)
	b, _, _ := iss.Issue("u-1", "alice", domain.RoleAdmin)
	if a == b {
		t.Fatalf("two tokens issued in the same second must differ")
	}
}

func TestJWTIssuer_Expired(t *testing.T) {
	iss := newTestIssuer(t)
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return issued }
	token, _, _ := iss.Issue("u-1", "alice", domain.RoleAdmin)

	iss.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := iss.Verify(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}

func TestJWTIssuer_Tampered(t *testing.T) {
	iss := newTestIssuer(t)
	token, _, _ := iss.Issue("u-1", "alice", domain.RoleUser)

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)

	if _, err := iss.Verify(strings.Join(parts, ".")); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for tampered token, got %v", err)
	}
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	other, _ := NewJWTIssuer(TokenConfig{Secret: "other", Issuer: "boards", Audience: "boards-clients"})
	token, _, _ := other.Issue("u-1", "alice", domain.RoleAdmin)

	if _, err := newTestIssuer(t).Verify(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestJWTIssuer_WrongAudienceAndIssuer(t *testing.T) {
	iss := newTestIssuer(t)

	for name, cfg := range map[string]TokenConfig{
		"audience": {Secret: "secret", Issuer: "boards", Audience: "someone-else"},
		"issuer":   {Secret: "secret", Issuer: "impostor", Audience: "boards-clients"},
	} {
		other, _ := NewJWTIssuer(cfg)
		token, _, _ := other.Issue("u-1", "alice", domain.RoleAdmin)
		if _, err := iss.Verify(token); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", name, err)
		}
	}
}

func TestJWTIssuer_RejectsOtherAlgorithms(t *testing.T) {
	iss := newTestIssuer(t)
	claims := jwt.MapClaims{
		"sub": "alice", "role": domain.RoleAdmin, "accountId": "u-1",
		"iss": "boards", "aud": "boards-clients",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := iss.Verify(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for alg=none, got %v", err)
	}
}

func TestJWTIssuer_MissingRoleClaim(t *testing.T) {
	iss := newTestIssuer(t)
	claims := jwt.MapClaims{
		"sub": "alice", "accountId": "u-1",
		"iss": "boards", "aud": "boards-clients",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))

	if _, err := iss.Verify(token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
