package model

import "time"

// Document is metadata about a file generated for a booking
// (invoice, registration card, ...).  Documents are removed together
// with their booking.
type Document struct {
    ID        uint64    // documents.id
    BookingID uint64    // documents.booking_id
    Name      string    // documents.doc_name
    Path      string    // documents.doc_path
    CreatedAt time.Time // documents.created_at
}
