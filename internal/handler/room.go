package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// RoomHandler exposes room inventory CRUD.
type RoomHandler struct {
	Rooms      *repository.RoomRepo
	Categories *repository.CategoryRepo
}

func NewRoomHandler(r *repository.RoomRepo, cat *repository.CategoryRepo) *RoomHandler {
	if r == nil || cat == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: r, Categories: cat}
}

type roomReq struct {
	Number     string `json:"number"`
	Floor      int32  `json:"floor"`
	Capacity   int32  `json:"capacity"`
	CategoryID uint64 `json:"category_id"`
}

func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}

func (h *RoomHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	room, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Number == "" || req.CategoryID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "number and category_id are required"})
	}
	if req.Capacity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be positive"})
	}
	ctx := c.Request().Context()
	if _, err := h.Categories.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "category does not exist"})
		}
		return dbError(c)
	}
	room := &model.Room{Number: req.Number, Floor: req.Floor, Capacity: req.Capacity, CategoryID: req.CategoryID}
	if err := h.Rooms.Create(ctx, room); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Number == "" || req.CategoryID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "number and category_id are required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Categories.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "category does not exist"})
		}
		return dbError(c)
	}
	room := &model.Room{ID: id, Number: req.Number, Floor: req.Floor, Capacity: req.Capacity, CategoryID: req.CategoryID}
	if err := h.Rooms.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, room)
}

// Delete refuses to remove a room that still has bookings attached.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "room has bookings attached"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
