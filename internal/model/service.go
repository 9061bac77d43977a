package model

import "time"

// Service is an additional hotel service offered to guests
// (breakfast, laundry, spa, ...).
type Service struct {
    ID          uint64 // services.id
    Name        string // services.service_name (unique)
    PriceCents  uint32 // services.price_cents
    Description string // services.description
}

// ServiceUsage records a client consuming a service, optionally tied
// to a booking.  Quantity must be positive.  When the referenced
// booking is deleted the BookingID is nulled out rather than removing
// the usage row, so consumption history survives booking removal.
type ServiceUsage struct {
    ID        uint64    // service_usage.id
    ClientID  *uint64   // service_usage.client_id (nullable)
    ServiceID uint64    // service_usage.service_id
    BookingID *uint64   // service_usage.booking_id (nullable)
    UsedAt    time.Time // service_usage.used_at
    Quantity  int32     // service_usage.quantity (> 0)
    CostCents uint32    // service_usage.cost_cents
}
