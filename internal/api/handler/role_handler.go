package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leverblum/boardsctrl/internal/core/ports"
)

type RoleHandler struct {
	service ports.RoleService
}

func NewRoleHandler(service ports.RoleService) *RoleHandler {
	return &RoleHandler{service: service}
}

type createRoleRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type updateRoleRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
}

func (h *RoleHandler) List(c echo.Context) error {
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

func (h *RoleHandler) Get(c echo.Context) error {
	out, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RoleHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req createRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.service.Create(c.Request().Context(), ports.RoleInput{Name: req.Name}, id.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *RoleHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req updateRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.RolePatch{Name: req.Name}, id.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RoleHandler) Toggle(c echo.Context) error {
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
