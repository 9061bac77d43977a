package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// PositionHandler manages staff job titles.
type PositionHandler struct {
	Positions *repository.PositionRepo
}

func NewPositionHandler(p *repository.PositionRepo) *PositionHandler {
	if p == nil {
		panic("nil repository passed to NewPositionHandler")
	}
	return &PositionHandler{Positions: p}
}

func (h *PositionHandler) List(c echo.Context) error {
	positions, err := h.Positions.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"positions": positions})
}

func (h *PositionHandler) Create(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	pos := &model.Position{Name: req.Name}
	if err := h.Positions.Create(c.Request().Context(), pos); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "position already exists"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, pos)
}

func (h *PositionHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid position id"})
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	pos := &model.Position{ID: id, Name: req.Name}
	if err := h.Positions.Update(c.Request().Context(), pos); err != nil {
		if errors.Is(err, repository.ErrPositionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "position not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "position already exists"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, pos)
}

func (h *PositionHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid position id"})
	}
	if err := h.Positions.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrPositionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "position not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "position has staff attached"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
