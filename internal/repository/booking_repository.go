package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/hotel-reservation/internal/model"
)

// BookingRepo provides persistence for bookings and their room
// associations. Bookings and booking_rooms are the only mutable state
// the reservation engine owns; every mutation goes through the
// Tx-suffixed methods so the caller can wrap the availability check
// and the write into one atomic unit. The caller must commit or
// rollback the transaction.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// StayClaim is one booking's occupancy claim on a room, as read by the
// availability checker. StatusName carries the status vocabulary entry
// so the configured vacating set can be applied without a second
// lookup.
type StayClaim struct {
    BookingID  uint64
    RoomID     uint64
    Stay       model.StayRange
    StatusName string
}

// FirstConflict applies the overlap oracle to a set of existing claims
// and returns the first claim that blocks the candidate stay, or nil
// when the stay is admissible. Claims whose status is in the vacating
// set no longer hold the room and are skipped, as is the claim of
// excludeBookingID (non-zero during updates, so a booking's own
// current dates never self-conflict). The vacating set is keyed by
// upper-cased names, so stored status names are normalized the same
// way before the lookup.
func FirstConflict(claims []StayClaim, stay model.StayRange, excludeBookingID uint64, vacating map[string]bool) *StayClaim {
    for i := range claims {
        c := &claims[i]
        if c.BookingID == excludeBookingID {
            continue
        }
        if vacating[strings.ToUpper(c.StatusName)] {
            continue
        }
        if c.Stay.Overlaps(stay) {
            return c
        }
    }
    return nil
}

const claimsQuery = `SELECT b.id, br.room_id, b.arrival_date, b.departure_date, s.status_name
                     FROM booking_rooms br
                     JOIN bookings b ON b.id = br.booking_id
                     JOIN booking_statuses s ON s.id = b.booking_status_id
                     WHERE br.room_id = ?
                     ORDER BY b.id`

func scanClaims(rows *sql.Rows) ([]StayClaim, error) {
    defer rows.Close()
    var claims []StayClaim
    for rows.Next() {
        var c StayClaim
        if err := rows.Scan(&c.BookingID, &c.RoomID, &c.Stay.Arrival, &c.Stay.Departure, &c.StatusName); err != nil {
            return nil, err
        }
        claims = append(claims, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return claims, nil
}

// ClaimsForRoomTx retrieves every booking currently associated with
// the room, within the given transaction. Callers lock the room row
// first (RoomRepo.LockTx) so the returned snapshot stays consistent
// until the transaction's own write commits.
func (r *BookingRepo) ClaimsForRoomTx(ctx context.Context, tx *sql.Tx, roomID uint64) ([]StayClaim, error) {
    rows, err := tx.QueryContext(ctx, claimsQuery, roomID)
    if err != nil {
        return nil, err
    }
    return scanClaims(rows)
}

// ClaimsForRoom is the read-only variant used by pre-flight
// availability checks. The snapshot it sees may be stale by the time a
// booking is actually attempted; only the transactional path decides.
func (r *BookingRepo) ClaimsForRoom(ctx context.Context, roomID uint64) ([]StayClaim, error) {
    rows, err := r.db.QueryContext(ctx, claimsQuery, roomID)
    if err != nil {
        return nil, err
    }
    return scanClaims(rows)
}

const bookingColumns = `id, client_id, staff_id, booked_at, arrival_date, departure_date, booking_status_id, total_cost_cents`

func scanBooking(row *sql.Row) (*model.Booking, error) {
    var b model.Booking
    var clientID, staffID sql.NullInt64
    err := row.Scan(&b.ID, &clientID, &staffID, &b.BookedAt, &b.Arrival, &b.Departure, &b.StatusID, &b.TotalCostCents)
    if err != nil {
        return nil, err
    }
    if clientID.Valid {
        v := uint64(clientID.Int64)
        b.ClientID = &v
    }
    if staffID.Valid {
        v := uint64(staffID.Int64)
        b.StaffID = &v
    }
    return &b, nil
}

// GetByID retrieves a booking by its ID. It returns ErrBookingNotFound
// when no row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    return b, nil
}

// GetByIDTx is GetByID inside a transaction, used when re-validating a
// booking during update or delete.
func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    b, err := scanBooking(tx.QueryRowContext(ctx, q, id))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }
    return b, nil
}

// BookingWithRoom pairs a booking with the room it currently occupies.
// Listing joins through booking_rooms so callers see the association
// the engine maintains, not just the booking row.
type BookingWithRoom struct {
    model.Booking
    RoomID uint64
}

// List returns all bookings with their room association in stable
// booking-id order.
func (r *BookingRepo) List(ctx context.Context) ([]BookingWithRoom, error) {
    const q = `SELECT b.id, b.client_id, b.staff_id, b.booked_at, b.arrival_date, b.departure_date,
                      b.booking_status_id, b.total_cost_cents, br.room_id
               FROM bookings b
               JOIN booking_rooms br ON br.booking_id = b.id
               ORDER BY b.id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]BookingWithRoom, 0)
    for rows.Next() {
        var bw BookingWithRoom
        var clientID, staffID sql.NullInt64
        if err := rows.Scan(&bw.ID, &clientID, &staffID, &bw.BookedAt, &bw.Arrival, &bw.Departure,
            &bw.StatusID, &bw.TotalCostCents, &bw.RoomID); err != nil {
            return nil, err
        }
        if clientID.Valid {
            v := uint64(clientID.Int64)
            bw.ClientID = &v
        }
        if staffID.Valid {
            v := uint64(staffID.Int64)
            bw.StaffID = &v
        }
        out = append(out, bw)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// CreateTx inserts a new booking together with its room association in
// the scope of an existing transaction. The booking row and the
// booking_rooms row live or die together: if either insert fails the
// caller's rollback removes both, so an orphaned booking without a
// room is never observable. On success the generated ID and the
// DB-assigned booked_at timestamp are populated on b.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking, roomID uint64) error {
    const q = `INSERT INTO bookings (client_id, staff_id, arrival_date, departure_date, booking_status_id, total_cost_cents)
               VALUES (?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, nullableID(b.ClientID), nullableID(b.StaffID),
        b.Arrival, b.Departure, b.StatusID, b.TotalCostCents)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    if _, err := tx.ExecContext(ctx,
        `INSERT INTO booking_rooms (booking_id, room_id) VALUES (?, ?)`, b.ID, roomID); err != nil {
        return err
    }
    // Read the row back so booked_at and defaults are populated.
    const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    got, err := scanBooking(tx.QueryRowContext(ctx, sel, b.ID))
    if err != nil {
        return err
    }
    *b = *got
    return nil
}

// UpdateTx rewrites a booking's fields and replaces its room
// association (delete old, insert new) as a single unit inside the
// given transaction. Partial application is never observable: either
// the booking row and booking_rooms both reflect the new stay after
// commit, or neither does after rollback.
func (r *BookingRepo) UpdateTx(ctx context.Context, tx *sql.Tx, b *model.Booking, roomID uint64) error {
    const q = `UPDATE bookings
               SET client_id = ?, arrival_date = ?, departure_date = ?, booking_status_id = ?, total_cost_cents = ?
               WHERE id = ?`
    res, err := tx.ExecContext(ctx, q, nullableID(b.ClientID), b.Arrival, b.Departure,
        b.StatusID, b.TotalCostCents, b.ID)
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        // The UPDATE matches zero rows both when the booking is gone
        // and when nothing changed; distinguish by re-reading.
        if _, err := r.GetByIDTx(ctx, tx, b.ID); err != nil {
            return err
        }
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM booking_rooms WHERE booking_id = ?`, b.ID); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx,
        `INSERT INTO booking_rooms (booking_id, room_id) VALUES (?, ?)`, b.ID, roomID); err != nil {
        return err
    }
    const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    got, err := scanBooking(tx.QueryRowContext(ctx, sel, b.ID))
    if err != nil {
        return err
    }
    *b = *got
    return nil
}

// DeleteTx removes a booking and everything hanging off it inside the
// given transaction. Referential policy per relationship: the room
// association, payments and documents cascade away with the booking;
// service usage keeps its rows but nulls out the booking reference so
// consumption history survives. Returns ErrBookingNotFound when the
// booking does not exist.
func (r *BookingRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    if _, err := tx.ExecContext(ctx, `UPDATE service_usage SET booking_id = NULL WHERE booking_id = ?`, id); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE booking_id = ?`, id); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE booking_id = ?`, id); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `DELETE FROM booking_rooms WHERE booking_id = ?`, id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrBookingNotFound
    }
    return nil
}

// RoomForBookingTx returns the room a booking currently occupies.
func (r *BookingRepo) RoomForBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (uint64, error) {
    var roomID uint64
    err := tx.QueryRowContext(ctx,
        `SELECT room_id FROM booking_rooms WHERE booking_id = ?`, bookingID).Scan(&roomID)
    if err == sql.ErrNoRows {
        return 0, ErrBookingNotFound
    }
    if err != nil {
        return 0, err
    }
    return roomID, nil
}

// RoomForBooking is RoomForBookingTx against the pool, for reads that
// do not run inside a transaction.
func (r *BookingRepo) RoomForBooking(ctx context.Context, bookingID uint64) (uint64, error) {
    var roomID uint64
    err := r.db.QueryRowContext(ctx,
        `SELECT room_id FROM booking_rooms WHERE booking_id = ?`, bookingID).Scan(&roomID)
    if err == sql.ErrNoRows {
        return 0, ErrBookingNotFound
    }
    if err != nil {
        return 0, err
    }
    return roomID, nil
}

// nullableID converts an optional reference into a driver value.
func nullableID(v *uint64) interface{} {
    if v == nil {
        return nil
    }
    return *v
}
