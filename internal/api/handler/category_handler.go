package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leverblum/boardsctrl/internal/core/ports"
)

type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

type createCategoryRequest struct {
	Title string `json:"title" validate:"required,max=100"`
}

type updateCategoryRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1,max=100"`
}

func (h *CategoryHandler) List(c echo.Context) error {
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

func (h *CategoryHandler) Get(c echo.Context) error {
	out, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req createCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.service.Create(c.Request().Context(), ports.CategoryInput{Title: req.Title}, id.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req updateCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.CategoryPatch{Title: req.Title}, id.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Toggle flips the active flag, or sets it when ?activate is given.
func (h *CategoryHandler) Toggle(c echo.Context) error {
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
