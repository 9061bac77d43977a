package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// PaymentHandler covers payments and the payment method vocabulary.
// Payments are plain keyed records against a booking; the engine never
// derives booking totals from them.
type PaymentHandler struct {
	Payments *repository.PaymentRepo
}

func NewPaymentHandler(p *repository.PaymentRepo) *PaymentHandler {
	if p == nil {
		panic("nil repository passed to NewPaymentHandler")
	}
	return &PaymentHandler{Payments: p}
}

type paymentReq struct {
	BookingID   uint64  `json:"booking_id"`
	AmountCents uint32  `json:"amount_cents"`
	MethodID    *uint64 `json:"method_id"`
}

func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.Payments.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": payments})
}

func (h *PaymentHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	p, err := h.Payments.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) Create(c echo.Context) error {
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.BookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id is required"})
	}
	p := &model.Payment{BookingID: req.BookingID, AmountCents: req.AmountCents, MethodID: req.MethodID}
	if err := h.Payments.Create(c.Request().Context(), p); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "booking does not exist"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PaymentHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.BookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking_id is required"})
	}
	p := &model.Payment{ID: id, BookingID: req.BookingID, AmountCents: req.AmountCents, MethodID: req.MethodID}
	if err := h.Payments.Update(c.Request().Context(), p); err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payment id"})
	}
	if err := h.Payments.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "payment not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- payment methods -----

func (h *PaymentHandler) ListMethods(c echo.Context) error {
	methods, err := h.Payments.ListMethods(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"methods": methods})
}

func (h *PaymentHandler) CreateMethod(c echo.Context) error {
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
	m := &model.PaymentMethod{Name: req.Name}
	if err := h.Payments.CreateMethod(c.Request().Context(), m); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "method already exists"})
		}
		return dbError(c)
	}
	return c.JSON(http.StatusCreated, m)
}

// DeleteMethod removes a method from the vocabulary; payments that
// used it keep their rows with the method reference nulled out.
func (h *PaymentHandler) DeleteMethod(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid method id"})
	}
	if err := h.Payments.DeleteMethod(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrPaymentMethodNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "method not found"})
		}
		return dbError(c)
	}
	return c.NoContent(http.StatusNoContent)
}
