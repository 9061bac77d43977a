package model

import "time"

// PaymentMethod is one entry of the payment method vocabulary
// (cash, card, transfer, ...).
type PaymentMethod struct {
    ID   uint64 // payment_methods.id
    Name string // payment_methods.method_name (unique)
}

// Payment records money received against a booking.  Payments are
// plain keyed records: the engine never derives totals from them.
// When the owning booking is deleted the payment rows are removed
// with it (cascade policy at the storage boundary).
type Payment struct {
    ID          uint64    // payments.id
    BookingID   uint64    // payments.booking_id
    PaidAt      time.Time // payments.paid_at
    AmountCents uint32    // payments.amount_cents
    MethodID    *uint64   // payments.payment_method_id (nullable)
}
