package model

import "time"

// Booking records a client's stay in one room for a date range.  It is
// the root entity of the reservation engine: every mutation of a
// booking and its room association happens through a single
// transaction so that no overlapping confirmed stays can ever hold the
// same room.
//
// Fields:
//  ID             – primary key identifier.
//  ClientID       – client who owns the booking; nullable because a
//                   client record may be removed independently.
//  StaffID        – staff member who created the booking; nullable.
//  BookedAt       – timestamp the booking row was created.
//  Arrival        – first night of the stay (DATE).
//  Departure      – checkout day; the room is free again from this
//                   date on (half-open range).
//  StatusID       – reference into the booking_statuses vocabulary.
//  TotalCostCents – total price in cents, non-negative.
type Booking struct {
    ID             uint64    // bookings.id
    ClientID       *uint64   // bookings.client_id (nullable)
    StaffID        *uint64   // bookings.staff_id (nullable)
    BookedAt       time.Time // bookings.booked_at
    Arrival        time.Time // bookings.arrival_date
    Departure      time.Time // bookings.departure_date
    StatusID       uint64    // bookings.booking_status_id
    TotalCostCents uint32    // bookings.total_cost_cents
}

// Stay returns the booking's occupancy range.
func (b Booking) Stay() StayRange {
    return StayRange{Arrival: b.Arrival, Departure: b.Departure}
}

// BookingRoom is the durable occupancy claim a booking holds on a
// room.  The pair (BookingID, RoomID) forms the composite primary
// key.  The row is created in the same transaction as its booking,
// replaced in the same transaction as a date or room amendment, and
// removed when the booking is deleted.
type BookingRoom struct {
    BookingID uint64 // booking_rooms.booking_id
    RoomID    uint64 // booking_rooms.room_id
}

// BookingStatus is one entry of the open status vocabulary.  The
// engine treats statuses as opaque references except for the
// configured vacating set, under which a booking no longer holds its
// room against new claims.
type BookingStatus struct {
    ID   uint64 // booking_statuses.id
    Name string // booking_statuses.status_name (unique)
}
