package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leverblum/boardsctrl/internal/core/ports"
)

type BoardHandler struct {
	service ports.BoardService
}

func NewBoardHandler(service ports.BoardService) *BoardHandler {
	return &BoardHandler{service: service}
}

type createBoardRequest struct {
	CategoryID  string `json:"categoryId" validate:"required"`
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=255"`
}

type updateBoardRequest struct {
	CategoryID  *string `json:"categoryId" validate:"omitempty,min=1"`
	Title       *string `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

func (h *BoardHandler) List(c echo.Context) error {
	return h.list(c, ports.BoardFilter{})
}

// ListByCategory lists the boards of one category.
func (h *BoardHandler) ListByCategory(c echo.Context) error {
	return h.list(c, ports.BoardFilter{CategoryID: c.Param("categoryId")})
}

func (h *BoardHandler) list(c echo.Context, filter ports.BoardFilter) error {
	page, err := pageRequest(c)
	if err != nil {
		return err
	}
	out, err := h.service.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BoardHandler) Get(c echo.Context) error {
	out, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BoardHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req createBoardRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.service.Create(c.Request().Context(), ports.BoardInput{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
	}, id.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *BoardHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req updateBoardRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.BoardPatch{
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
	}, id.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BoardHandler) Toggle(c echo.Context) error {
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
