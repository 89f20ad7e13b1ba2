package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/leverblum/boardsctrl/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Usuario no encontrado o inactivo"},
		{"role unavailable", domain.ErrRoleUnavailable, http.StatusUnauthorized, "El rol del usuario no está disponible"},
		{"external rejected", domain.ErrExternalRejected, http.StatusUnauthorized, "Credenciales inválidas del servidor externo"},
		{"external unavailable wrapped", fmt.Errorf("%w: dial tcp: timeout", domain.ErrExternalUnavailable), http.StatusUnauthorized, "Servicio de autenticación externo no disponible"},
		{"duplicate username", domain.ErrDuplicateUsername, http.StatusBadRequest, "El usuario ya existe"},
		{"unknown role", domain.ErrUnknownRole, http.StatusBadRequest, "Rol no encontrado"},
		{"not found", domain.ErrBoardNotFound, http.StatusNotFound, "El tablero no existe."},
		{"conflict", domain.Conflict("Ya existe"), http.StatusBadRequest, "Ya existe"},
		{"echo error", echo.NewHTTPError(http.StatusForbidden, "access forbidden"), http.StatusForbidden, "access forbidden"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tc.msg {
				t.Fatalf("expected message %q, got %q", tc.msg, body.Error)
			}
		})
	}
}
