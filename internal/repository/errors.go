// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and pick
// the right HTTP status. The booking engine additionally distinguishes
// a business rejection (RoomConflictError: a concrete overlapping stay
// exists) from a transient concurrency loss (ErrTxConflict: the atomic
// write lost a race and may be retried with a fresh availability check).
package repository

import (
    "errors"
    "fmt"

    "github.com/go-sql-driver/mysql"

    "github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrBookingNotFound indicates that a booking was not located in the DB.
var ErrBookingNotFound = errors.New("booking not found")

// ErrRoomNotFound indicates that a room was not located in the DB.
var ErrRoomNotFound = errors.New("room not found")

// ErrClientNotFound indicates that a client was not located in the DB.
var ErrClientNotFound = errors.New("client not found")

// ErrStatusNotFound indicates that a booking status was not located in the DB.
var ErrStatusNotFound = errors.New("booking status not found")

// ErrStaffNotFound indicates that a staff account was not located in the DB.
var ErrStaffNotFound = errors.New("staff not found")

// ErrConflict is returned when a create, update or delete cannot be
// performed because of conflicting state, such as inserting a duplicate
// unique value or deleting a row that other records still reference.
// Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrTxConflict is returned when the storage engine aborts the atomic
// check-and-write because another transaction won the race (deadlock or
// lock wait timeout). Unlike a RoomConflictError the caller may safely
// retry the whole operation after a fresh availability check.
var ErrTxConflict = errors.New("transaction conflict, retry")

// RoomConflictError is the business rejection of a stay: an existing
// non-vacating booking already holds the room for an overlapping date
// range. It names the room, the requested dates and the booking that
// blocks them so callers can report something actionable. Blind
// repetition will fail again; the caller must pick different dates or
// a different room.
type RoomConflictError struct {
    RoomID        uint64
    Stay          model.StayRange
    WithBookingID uint64
}

func (e *RoomConflictError) Error() string {
    return fmt.Sprintf("room %d is occupied for %s to %s (booking %d)",
        e.RoomID,
        e.Stay.Arrival.Format(model.DateOnly),
        e.Stay.Departure.Format(model.DateOnly),
        e.WithBookingID)
}

// IsRetryable reports whether err is a transient concurrency failure.
// MySQL signals a lost race as error 1213 (deadlock victim) or 1205
// (lock wait timeout); both roll the transaction back completely, so
// repeating the operation is safe.
func IsRetryable(err error) bool {
    if errors.Is(err, ErrTxConflict) {
        return true
    }
    var me *mysql.MySQLError
    if errors.As(err, &me) {
        return me.Number == 1213 || me.Number == 1205
    }
    return false
}

// isDuplicateKey reports whether err is a MySQL unique constraint
// violation (error 1062).
func isDuplicateKey(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == 1062
}

// isReferenced reports whether err is a MySQL foreign key restriction
// (error 1451: the row is still referenced by dependent records).
func isReferenced(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == 1451
}
