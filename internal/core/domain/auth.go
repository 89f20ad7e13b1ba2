package domain

import "time"

// AuthResult is the outcome of a successful login. It is never persisted.
type AuthResult struct {
	AccountID string    `json:"accountId"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Claims is the identity carried by a verified bearer token.
type Claims struct {
	AccountID string
	Username  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ExternalVerification is the answer of the legacy identity service.
// ResponseCode is the service's CodigoMensaje; zero means accepted.
type ExternalVerification struct {
	Success      bool
	ResponseCode int
	Message      string
	HTTPStatus   int
	Roles        []string
}
