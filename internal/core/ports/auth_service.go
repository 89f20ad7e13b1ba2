package ports

import (
	"context"
	"time"

	"github.com/leverblum/boardsctrl/internal/core/domain"
)

// RegisterInput is the self-registration payload. Role is a role id or name.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Role     string
}

// AuthService registers accounts and logs them in.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.AuthResult, error)
}

// TokenIssuer signs bearer tokens.
type TokenIssuer interface {
	Issue(accountID, username, role string) (token string, expiresAt time.Time, err error)
}

// TokenVerifier validates bearer tokens and returns their claims.
// Any failure is reported as domain.ErrUnauthenticated.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// IdentityVerifier asks the external identity service to confirm a
// username/password pair. A returned error means the service could not be
// reached or answered unintelligibly; a rejection is reported through
// ExternalVerification.Success.
type IdentityVerifier interface {
	Verify(ctx context.Context, username, password string) (*domain.ExternalVerification, error)
}

// RateLimiter counts attempts per key in a fixed window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
