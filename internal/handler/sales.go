package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// SalesHandler stores daily revenue rollups entered by operators.
type SalesHandler struct {
	Sales *repository.SalesRepo
}

func NewSalesHandler(s *repository.SalesRepo) *SalesHandler {
	if s == nil {
		panic("nil repository passed to NewSalesHandler")
	}
	return &SalesHandler{Sales: s}
}

type salesReq struct {
	Date                 string `json:"date"`
	TotalRevenueCents    uint64 `json:"total_revenue_cents"`
	RoomsSold            int32  `json:"rooms_sold"`
	ServicesRevenueCents uint64 `json:"services_revenue_cents"`
}

func (h *SalesHandler) List(c echo.Context) error {
	rows, err := h.Sales.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"sales": rows})
}

func (h *SalesHandler) Create(c echo.Context) error {
	var req salesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, err := model.ParseStayDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	if req.RoomsSold < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rooms_sold must not be negative"})
	}
	row := &model.SalesAnalysis{
		Date:                 date,
		TotalRevenueCents:    req.TotalRevenueCents,
		RoomsSold:            req.RoomsSold,
		ServicesRevenueCents: req.ServicesRevenueCents,
	}
	if err := h.Sales.Create(c.Request().Context(), row); err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, row)
}

func (h *SalesHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid analysis id"})
	}
	var req salesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	date, err := model.ParseStayDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}
	if req.RoomsSold < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rooms_sold must not be negative"})
	}
	row := &model.SalesAnalysis{
		ID:                   id,
		Date:                 date,
		TotalRevenueCents:    req.TotalRevenueCents,
		RoomsSold:            req.RoomsSold,
		ServicesRevenueCents: req.ServicesRevenueCents,
	}
	if err := h.Sales.Update(c.Request().Context(), row); err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "analysis not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, row)
}

func (h *SalesHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid analysis id"})
	}
	if err := h.Sales.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "analysis not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
