package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/leverblum/boardsctrl/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Usuario no encontrado o inactivo"
	case errors.Is(err, domain.ErrRoleUnavailable):
		return http.StatusUnauthorized, "El rol del usuario no está disponible"
	case errors.Is(err, domain.ErrExternalRejected):
		return http.StatusUnauthorized, "Credenciales inválidas del servidor externo"
	case errors.Is(err, domain.ErrExternalUnavailable):
		return http.StatusUnauthorized, "Servicio de autenticación externo no disponible"
	case errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusBadRequest, "El usuario ya existe"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrTooManyRequests):
		return http.StatusTooManyRequests, "too many requests"
	}

	// Resource errors carry their own client-facing message.
	var re *domain.ResourceError
	if errors.As(err, &re) {
		switch {
		case errors.Is(re.Kind, domain.ErrNotFound):
			return http.StatusNotFound, re.Message
		case errors.Is(re.Kind, domain.ErrConflict), errors.Is(re.Kind, domain.ErrInvalidInput):
			return http.StatusBadRequest, re.Message
		}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
