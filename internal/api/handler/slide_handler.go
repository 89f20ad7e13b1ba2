package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leverblum/boardsctrl/internal/core/ports"
)

type SlideHandler struct {
	service ports.SlideService
}

func NewSlideHandler(service ports.SlideService) *SlideHandler {
	return &SlideHandler{service: service}
}

type createSlideRequest struct {
	BoardID string `json:"boardId" validate:"required"`
	Title   string `json:"title" validate:"required,max=100"`
	URL     string `json:"url" validate:"required,url,max=255"`
	Time    int    `json:"time" validate:"gte=1,lte=1000"`
}

type updateSlideRequest struct {
	BoardID *string `json:"boardId" validate:"omitempty,min=1"`
	Title   *string `json:"title" validate:"omitempty,min=1,max=100"`
	URL     *string `json:"url" validate:"omitempty,url,max=255"`
	Time    *int    `json:"time" validate:"omitempty,gte=1,lte=1000"`
}

func (h *SlideHandler) List(c echo.Context) error {
	return h.list(c, ports.SlideFilter{})
}

// ListByBoard lists the slides of one board.
func (h *SlideHandler) ListByBoard(c echo.Context) error {
	return h.list(c, ports.SlideFilter{BoardID: c.Param("boardId")})
}

func (h *SlideHandler) list(c echo.Context, filter ports.SlideFilter) error {
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

func (h *SlideHandler) Get(c echo.Context) error {
	out, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SlideHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req createSlideRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.service.Create(c.Request().Context(), ports.SlideInput{
		BoardID: req.BoardID,
		Title:   req.Title,
		URL:     req.URL,
		Time:    req.Time,
	}, id.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *SlideHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	var req updateSlideRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.SlidePatch{
		BoardID: req.BoardID,
		Title:   req.Title,
		URL:     req.URL,
		Time:    req.Time,
	}, id.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SlideHandler) Toggle(c echo.Context) error {
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
