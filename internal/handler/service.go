package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// ServiceHandler covers the additional services catalog and the usage
// records tying services to clients and bookings.
type ServiceHandler struct {
	Services *repository.ServiceRepo
}

func NewServiceHandler(s *repository.ServiceRepo) *ServiceHandler {
	if s == nil {
		panic("nil repository passed to NewServiceHandler")
	}
	return &ServiceHandler{Services: s}
}

type serviceReq struct {
	Name        string `json:"name"`
	PriceCents  uint32 `json:"price_cents"`
	Description string `json:"description"`
}

func (h *ServiceHandler) List(c echo.Context) error {
	services, err := h.Services.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"services": services})
}

func (h *ServiceHandler) Create(c echo.Context) error {
	var req serviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	svc := &model.Service{Name: req.Name, PriceCents: req.PriceCents, Description: req.Description}
	if err := h.Services.Create(c.Request().Context(), svc); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "service already exists"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id"})
	}
	var req serviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	svc := &model.Service{ID: id, Name: req.Name, PriceCents: req.PriceCents, Description: req.Description}
	if err := h.Services.Update(c.Request().Context(), svc); err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "service already exists"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, svc)
}

// Delete removes a service together with its usage history.
func (h *ServiceHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid service id"})
	}
	if err := h.Services.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "service not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- service usage -----

type usageReq struct {
	ClientID  *uint64 `json:"client_id"`
	ServiceID uint64  `json:"service_id"`
	BookingID *uint64 `json:"booking_id"`
	Quantity  int32   `json:"quantity"`
	CostCents uint32  `json:"cost_cents"`
}

func (h *ServiceHandler) ListUsage(c echo.Context) error {
	usage, err := h.Services.ListUsage(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"usage": usage})
}

func (h *ServiceHandler) CreateUsage(c echo.Context) error {
	var req usageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ServiceID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "service_id is required"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}
	u := &model.ServiceUsage{
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		BookingID: req.BookingID,
		Quantity:  req.Quantity,
		CostCents: req.CostCents,
	}
	if err := h.Services.CreateUsage(c.Request().Context(), u); err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "service does not exist"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *ServiceHandler) UpdateUsage(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid usage id"})
	}
	var req usageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ServiceID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "service_id is required"})
	}
	if req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be positive"})
	}
	u := &model.ServiceUsage{
		ID:        id,
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		BookingID: req.BookingID,
		Quantity:  req.Quantity,
		CostCents: req.CostCents,
	}
	if err := h.Services.UpdateUsage(c.Request().Context(), u); err != nil {
		if errors.Is(err, repository.ErrUsageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "usage not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *ServiceHandler) DeleteUsage(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid usage id"})
	}
	if err := h.Services.DeleteUsage(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrUsageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "usage not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
