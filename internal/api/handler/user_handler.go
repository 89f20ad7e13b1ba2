package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leverblum/boardsctrl/internal/core/ports"
)

// UserHandler manages accounts on behalf of administrators. Accounts created
// here carry no local password and authenticate through the external
// identity service alone.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"omitempty,email,max=100"`
	RoleID   string `json:"roleId" validate:"required"`
}

type updateUserRequest struct {
	Email  *string `json:"email" validate:"omitempty,email,max=100"`
	RoleID *string `json:"roleId" validate:"omitempty,min=1"`
}

func (h *UserHandler) List(c echo.Context) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}
	out, err := h.service.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Get(c echo.Context) error {
	out, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.service.Create(c.Request().Context(), ports.UserInput{
		Username: req.Username,
		Email:    req.Email,
		RoleID:   req.RoleID,
	}, id.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UserPatch{
		Email:  req.Email,
		RoleID: req.RoleID,
	}, id.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Toggle(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	active, err := activateParam(c)
	if err != nil {
		return err
	}
	if _, err := h.service.SetActive(c.Request().Context(), c.Param("id"), active, id.AccountID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
