package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/leverblum/boardsctrl/internal/api/middleware"
	"github.com/leverblum/boardsctrl/internal/core/domain"
)

// identity is the caller as established by the Auth middleware.
type identity struct {
	AccountID string `json:"accountId"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// ctxIdentity extracts the claims injected by the Auth middleware. A missing
// account id means the middleware did not run or the token was incomplete.
func ctxIdentity(c echo.Context) (identity, error) {
	id := identity{}
	id.AccountID, _ = c.Get(middleware.ContextAccountID).(string)
	id.Username, _ = c.Get(middleware.ContextUsername).(string)
	id.Role, _ = c.Get(middleware.ContextRole).(string)
	if id.AccountID == "" || id.Role == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// pageRequest reads pageNumber and pageSize from the query string.
func pageRequest(c echo.Context) (domain.PageRequest, error) {
	var p domain.PageRequest
	err := echo.QueryParamsBinder(c).
		Int("pageNumber", &p.Number).
		Int("pageSize", &p.Size).
		BindError()
	if err != nil {
		return domain.PageRequest{}, echo.NewHTTPError(http.StatusBadRequest, "pageNumber and pageSize must be integers")
	}
	return p.Normalize(), nil
}

// activateParam reads the optional ?activate=<bool> of the toggle endpoints.
// A nil result means toggle.
func activateParam(c echo.Context) (*bool, error) {
	raw := c.QueryParam("activate")
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "activate must be a boolean")
	}
	return &v, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
