package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/leverblum/boardsctrl/internal/api/metrics"
	"github.com/leverblum/boardsctrl/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextAccountID = "account_id"
	ContextUsername  = "username"
	ContextRole      = "role"
)

// Auth validates the token in the Authorization header and injects its
// claims into the context. The "Bearer " prefix is optional.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				metrics.AccessDeniedTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			token := raw
			if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
				token = strings.TrimSpace(raw[7:])
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextAccountID, claims.AccountID)
			c.Set(ContextUsername, claims.Username)
			c.Set(ContextRole, claims.Role)

			return next(c)
		}
	}
}
