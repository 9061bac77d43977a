package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// CleaningHandler tracks housekeeping visits. Cleanings have no effect
// on room availability.
type CleaningHandler struct {
	Cleanings *repository.CleaningRepo
}

func NewCleaningHandler(cl *repository.CleaningRepo) *CleaningHandler {
	if cl == nil {
		panic("nil repository passed to NewCleaningHandler")
	}
	return &CleaningHandler{Cleanings: cl}
}

type cleaningReq struct {
	RoomID  uint64  `json:"room_id"`
	Date    string  `json:"date"`
	Status  string  `json:"status"`
	StaffID *uint64 `json:"staff_id"`
}

func (h *CleaningHandler) List(c echo.Context) error {
	cleanings, err := h.Cleanings.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"cleanings": cleanings})
}

func (h *CleaningHandler) Create(c echo.Context) error {
	var req cleaningReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	date, err := model.ParseStayDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	cl := &model.Cleaning{
		RoomID:  req.RoomID,
		Date:    date,
		Status:  strings.TrimSpace(req.Status),
		StaffID: req.StaffID,
	}
	if err := h.Cleanings.Create(c.Request().Context(), cl); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "room does not exist"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, cl)
}

func (h *CleaningHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cleaning id"})
	}
	var req cleaningReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id is required"})
	}
	date, err := model.ParseStayDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	cl := &model.Cleaning{
		ID:      id,
		RoomID:  req.RoomID,
		Date:    date,
		Status:  strings.TrimSpace(req.Status),
		StaffID: req.StaffID,
	}
	if err := h.Cleanings.Update(c.Request().Context(), cl); err != nil {
		if errors.Is(err, repository.ErrCleaningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cleaning not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *CleaningHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cleaning id"})
	}
	if err := h.Cleanings.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCleaningNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cleaning not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
