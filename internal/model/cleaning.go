package model

import "time"

// Cleaning records a housekeeping visit to a room.  It has no effect
// on availability; it is plain keyed-record storage kept alongside
// the inventory.
type Cleaning struct {
    ID      uint64    // cleanings.id
    RoomID  uint64    // cleanings.room_id
    Date    time.Time // cleanings.cleaning_date
    Status  string    // cleanings.cleaning_status
    StaffID *uint64   // cleanings.staff_id (nullable)
}
