package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// StatusHandler manages the booking status vocabulary. Statuses are an
// open set; the engine only gives special meaning to the configured
// vacating names. A status still referenced by bookings cannot be
// deleted.
type StatusHandler struct {
	Statuses *repository.StatusRepo
}

func NewStatusHandler(st *repository.StatusRepo) *StatusHandler {
	if st == nil {
		panic("nil repository passed to NewStatusHandler")
	}
	return &StatusHandler{Statuses: st}
}

func (h *StatusHandler) List(c echo.Context) error {
	statuses, err := h.Statuses.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"statuses": statuses})
}

func (h *StatusHandler) Create(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.ToUpper(strings.TrimSpace(req.Name))
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	st := &model.BookingStatus{Name: req.Name}
	if err := h.Statuses.Create(c.Request().Context(), st); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "status already exists"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, st)
}

func (h *StatusHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status id"})
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.ToUpper(strings.TrimSpace(req.Name))
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	st := &model.BookingStatus{ID: id, Name: req.Name}
	if err := h.Statuses.Update(c.Request().Context(), st); err != nil {
		if errors.Is(err, repository.ErrStatusNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "status not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "status already exists"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *StatusHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status id"})
	}
	if err := h.Statuses.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrStatusNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "status not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "status is referenced by bookings"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
