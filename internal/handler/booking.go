package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	q "github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	publisher "github.com/iliyamo/hotel-reservation/internal/service"
)

// BookingHandler owns the reservation engine endpoints. Every mutation
// runs inside a single transaction that locks the target room row
// before scanning its existing claims, so two concurrent requests for
// the same room serialize and the loser sees the winner's claim. The
// Vacating set names the statuses under which a booking no longer
// blocks its room.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Rooms    *repository.RoomRepo
	Clients  *repository.ClientRepo
	Statuses *repository.StatusRepo
	Vacating map[string]bool
}

// NewBookingHandler constructs a BookingHandler. All repositories must
// be non-nil.
func NewBookingHandler(b *repository.BookingRepo, r *repository.RoomRepo, cl *repository.ClientRepo, st *repository.StatusRepo, vacating map[string]bool) *BookingHandler {
	if b == nil || r == nil || cl == nil || st == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: b, Rooms: r, Clients: cl, Statuses: st, Vacating: vacating}
}

type bookingReq struct {
	ClientID       *uint64 `json:"client_id"`
	RoomID         uint64  `json:"room_id"`
	Arrival        string  `json:"arrival"`
	Departure      string  `json:"departure"`
	StatusID       uint64  `json:"status_id"`
	TotalCostCents uint32  `json:"total_cost_cents"`
}

type bookingResp struct {
	ID             uint64  `json:"id"`
	ClientID       *uint64 `json:"client_id"`
	StaffID        *uint64 `json:"staff_id"`
	RoomID         uint64  `json:"room_id"`
	BookedAt       string  `json:"booked_at"`
	Arrival        string  `json:"arrival"`
	Departure      string  `json:"departure"`
	StatusID       uint64  `json:"status_id"`
	TotalCostCents uint32  `json:"total_cost_cents"`
}

func toBookingResp(b *model.Booking, roomID uint64) bookingResp {
	return bookingResp{
		ID:             b.ID,
		ClientID:       b.ClientID,
		StaffID:        b.StaffID,
		RoomID:         roomID,
		BookedAt:       b.BookedAt.UTC().Format(time.RFC3339),
		Arrival:        b.Arrival.Format(model.DateOnly),
		Departure:      b.Departure.Format(model.DateOnly),
		StatusID:       b.StatusID,
		TotalCostCents: b.TotalCostCents,
	}
}

// parseStay validates the arrival/departure pair before any I/O.
func parseStay(arrival, departure string) (model.StayRange, error) {
	a, err := model.ParseStayDate(arrival)
	if err != nil {
		return model.StayRange{}, model.ErrInvalidStayRange
	}
	d, err := model.ParseStayDate(departure)
	if err != nil {
		return model.StayRange{}, model.ErrInvalidStayRange
	}
	stay := model.StayRange{Arrival: a, Departure: d}
	if err := stay.Validate(); err != nil {
		return model.StayRange{}, err
	}
	return stay, nil
}

func conflictResponse(c echo.Context, roomID uint64, hit *repository.StayClaim) error {
	rc := &repository.RoomConflictError{RoomID: roomID, Stay: hit.Stay, WithBookingID: hit.BookingID}
	return c.JSON(http.StatusConflict, echo.Map{
		"error":               rc.Error(),
		"room_id":             roomID,
		"conflicting_booking": hit.BookingID,
		"arrival":             hit.Stay.Arrival.Format(model.DateOnly),
		"departure":           hit.Stay.Departure.Format(model.DateOnly),
	})
}

// retryableResponse tells the client the transaction lost a storage
// level race (deadlock, lock wait timeout) and may be retried as-is.
func retryableResponse(c echo.Context) error {
	c.Response().Header().Set("Retry-After", "1")
	return c.JSON(http.StatusConflict, echo.Map{"error": "transient conflict", "retryable": true})
}

// checkReferences verifies the client and status a booking points at
// exist. The checks run inside the mutation's transaction so a row
// deleted mid-request still surfaces as 422, not as a foreign key
// failure at insert time. Missing references map to 422 so they are
// distinguishable from a missing target booking (404).
func (h *BookingHandler) checkReferences(ctx context.Context, c echo.Context, tx *sql.Tx, clientID *uint64, statusID uint64) (ok bool, err error) {
	if clientID != nil {
		exists, err := h.Clients.ExistsTx(ctx, tx, *clientID)
		if err != nil {
			return false, dbError(c)
		}
		if !exists {
			return false, c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "client does not exist"})
		}
	}
	exists, err := h.Statuses.ExistsTx(ctx, tx, statusID)
	if err != nil {
		return false, dbError(c)
	}
	if !exists {
		return false, c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "booking status does not exist"})
	}
	return true, nil
}

// Create handles POST /v1/bookings. The stay range is validated before
// any I/O; the room row is locked for the duration of the transaction
// so the availability scan and the insert are atomic.
func (h *BookingHandler) Create(c echo.Context) error {
	staffID, err := getStaffID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RoomID == 0 || req.StatusID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id and status_id are required"})
	}
	stay, err := parseStay(req.Arrival, req.Departure)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Rooms.LockTx(ctx, tx, req.RoomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "room does not exist"})
		}
		if repository.IsRetryable(err) {
			return retryableResponse(c)
		}
		return dbError(c)
	}
	if ok, resp := h.checkReferences(ctx, c, tx, req.ClientID, req.StatusID); !ok {
		return resp
	}

	claims, err := h.Bookings.ClaimsForRoomTx(ctx, tx, req.RoomID)
	if err != nil {
		return dbError(c)
	}
	if hit := repository.FirstConflict(claims, stay, 0, h.Vacating); hit != nil {
		return conflictResponse(c, req.RoomID, hit)
	}

	b := &model.Booking{
		ClientID:       req.ClientID,
		StaffID:        &staffID,
		Arrival:        stay.Arrival,
		Departure:      stay.Departure,
		StatusID:       req.StatusID,
		TotalCostCents: req.TotalCostCents,
	}
	if err := h.Bookings.CreateTx(ctx, tx, b, req.RoomID); err != nil {
		if repository.IsRetryable(err) {
			return retryableResponse(c)
		}
		return dbError(c)
	}
	if err := tx.Commit(); err != nil {
		if repository.IsRetryable(err) {
			return retryableResponse(c)
		}
		return dbError(c)
	}
	committed = true

	h.publishCreated(b, req.RoomID)
	return c.JSON(http.StatusCreated, toBookingResp(b, req.RoomID))
}

// Update handles PUT /v1/bookings/:id. The availability scan excludes
// the booking's own claim so a stay can be shortened, extended or
// moved without colliding with itself.
func (h *BookingHandler) Update(c echo.Context) error {
	if _, err := getStaffID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req bookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.RoomID == 0 || req.StatusID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id and status_id are required"})
	}
	stay, err := parseStay(req.Arrival, req.Departure)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// The room lock must be the transaction's first read. A plain
	// SELECT here would pin the read view before the lock is granted
	// and the claims scan below would miss a create that committed
	// while we waited on the lock.
	if err := h.Rooms.LockTx(ctx, tx, req.RoomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "room does not exist"})
		}
		if repository.IsRetryable(err) {
			return retryableResponse(c)
		}
		return dbError(c)
	}

	existing, err := h.Bookings.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return dbError(c)
	}
	if ok, resp := h.checkReferences(ctx, c, tx, req.ClientID, req.StatusID); !ok {
		return resp
	}

	claims, err := h.Bookings.ClaimsForRoomTx(ctx, tx, req.RoomID)
	if err != nil {
		return dbError(c)
	}
	if hit := repository.FirstConflict(claims, stay, id, h.Vacating); hit != nil {
		return conflictResponse(c, req.RoomID, hit)
	}

	b := &model.Booking{
		ID:             id,
		ClientID:       req.ClientID,
		StaffID:        existing.StaffID,
		Arrival:        stay.Arrival,
		Departure:      stay.Departure,
		StatusID:       req.StatusID,
		TotalCostCents: req.TotalCostCents,
	}
	if err := h.Bookings.UpdateTx(ctx, tx, b, req.RoomID); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		if repository.IsRetryable(err) {
			return retryableResponse(c)
		}
		return dbError(c)
	}
	if err := tx.Commit(); err != nil {
		if repository.IsRetryable(err) {
			return retryableResponse(c)
		}
		return dbError(c)
	}
	committed = true

	return c.JSON(http.StatusOK, toBookingResp(b, req.RoomID))
}

// Delete handles DELETE /v1/bookings/:id. Dependent payments,
// documents and the room association go away with the booking;
// service usage rows keep their history with the booking reference
// nulled out.
func (h *BookingHandler) Delete(c echo.Context) error {
	if _, err := getStaffID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	existing, err := h.Bookings.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return dbError(c)
	}
	roomID, err := h.Bookings.RoomForBookingTx(ctx, tx, id)
	if err != nil && !errors.Is(err, repository.ErrBookingNotFound) {
		return dbError(c)
	}

	if err := h.Bookings.DeleteTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		if repository.IsRetryable(err) {
			return retryableResponse(c)
		}
		return dbError(c)
	}
	if err := tx.Commit(); err != nil {
		if repository.IsRetryable(err) {
			return retryableResponse(c)
		}
		return dbError(c)
	}
	committed = true

	h.publishCancelled(existing, roomID)
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	ctx := c.Request().Context()
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return dbError(c)
	}
	roomID := uint64(0)
	if rid, err := h.Bookings.RoomForBooking(ctx, id); err == nil {
		roomID = rid
	}
	return c.JSON(http.StatusOK, toBookingResp(b, roomID))
}

// List handles GET /v1/bookings.
func (h *BookingHandler) List(c echo.Context) error {
	rows, err := h.Bookings.List(c.Request().Context())
	if err != nil {
		return dbError(c)
	}
	out := make([]bookingResp, 0, len(rows))
	for i := range rows {
		out = append(out, toBookingResp(&rows[i].Booking, rows[i].RoomID))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// Availability handles GET /v1/rooms/:id/availability. It answers
// whether the room is free for the half-open [arrival, departure)
// range and names the first conflicting booking when it is not. The
// read runs outside a lock, so the answer is advisory; the create and
// update paths re-check under the room lock.
func (h *BookingHandler) Availability(c echo.Context) error {
	roomID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}
	stay, err := parseStay(c.QueryParam("arrival"), c.QueryParam("departure"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if _, err := h.Rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return dbError(c)
	}
	claims, err := h.Bookings.ClaimsForRoom(ctx, roomID)
	if err != nil {
		return dbError(c)
	}
	hit := repository.FirstConflict(claims, stay, 0, h.Vacating)
	if hit == nil {
		return c.JSON(http.StatusOK, echo.Map{
			"room_id":   roomID,
			"arrival":   stay.Arrival.Format(model.DateOnly),
			"departure": stay.Departure.Format(model.DateOnly),
			"available": true,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"room_id":   roomID,
		"arrival":   stay.Arrival.Format(model.DateOnly),
		"departure": stay.Departure.Format(model.DateOnly),
		"available": false,
		"conflict": echo.Map{
			"booking_id": hit.BookingID,
			"arrival":    hit.Stay.Arrival.Format(model.DateOnly),
			"departure":  hit.Stay.Departure.Format(model.DateOnly),
			"status":     hit.StatusName,
		},
	})
}

// publishCreated emits a booking.created event without blocking the
// request. Publish failures are logged inside the publisher.
func (h *BookingHandler) publishCreated(b *model.Booking, roomID uint64) {
	ev := q.BookingCreatedEvent{
		BookingID:      b.ID,
		RoomID:         roomID,
		Arrival:        b.Arrival.Format(model.DateOnly),
		Departure:      b.Departure.Format(model.DateOnly),
		TotalCostCents: b.TotalCostCents,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if b.ClientID != nil {
		ev.ClientID = *b.ClientID
	}
	statusID := b.StatusID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if room, err := h.Rooms.GetByID(ctx, roomID); err == nil {
			ev.RoomNumber = room.Number
		}
		if st, err := h.Statuses.GetByID(ctx, statusID); err == nil {
			ev.StatusName = st.Name
		}
		_ = publisher.PublishBookingCreated(ctx, ev)
	}()
}

func (h *BookingHandler) publishCancelled(b *model.Booking, roomID uint64) {
	ev := q.BookingCancelledEvent{
		BookingID:   b.ID,
		RoomID:      roomID,
		Arrival:     b.Arrival.Format(model.DateOnly),
		Departure:   b.Departure.Format(model.DateOnly),
		CancelledAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = publisher.PublishBookingCancelled(ctx, ev)
	}()
}
