package model

import "time"

// Client is a hotel guest on whose behalf bookings are made.  The
// reservation engine stores the reference but does not otherwise
// validate client data beyond existence.
type Client struct {
    ID           uint64    // clients.id
    FirstName    string    // clients.first_name
    LastName     string    // clients.last_name
    Phone        string    // clients.phone (unique)
    Email        string    // clients.email (unique)
    RegisteredAt time.Time // clients.registered_at
}
