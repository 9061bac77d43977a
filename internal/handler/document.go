package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// DocumentHandler manages document metadata tied to bookings.
type DocumentHandler struct {
	Documents *repository.DocumentRepo
}

func NewDocumentHandler(d *repository.DocumentRepo) *DocumentHandler {
	if d == nil {
		panic("nil repository passed to NewDocumentHandler")
	}
	return &DocumentHandler{Documents: d}
}

type documentReq struct {
	BookingID uint64 `json:"booking_id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
}

func (h *DocumentHandler) List(c echo.Context) error {
	docs, err := h.Documents.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"documents": docs})
}

func (h *DocumentHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid document id"})
	}
	doc, err := h.Documents.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) Create(c echo.Context) error {
	var req documentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.BookingID == 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id and name are required"})
	}
	doc := &model.Document{BookingID: req.BookingID, Name: req.Name, Path: req.Path}
	if err := h.Documents.Create(c.Request().Context(), doc); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "booking does not exist"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, doc)
}

func (h *DocumentHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid document id"})
	}
	var req documentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.BookingID == 0 || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id and name are required"})
	}
	doc := &model.Document{ID: id, BookingID: req.BookingID, Name: req.Name, Path: req.Path}
	if err := h.Documents.Update(c.Request().Context(), doc); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, doc)
}

func (h *DocumentHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid document id"})
	}
	if err := h.Documents.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "document not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
