// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published after a booking and its room claim are
// committed. It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the primary database.
type BookingCreatedEvent struct {
	BookingID      uint64 `json:"booking_id"`
	ClientID       uint64 `json:"client_id,omitempty"`
	RoomID         uint64 `json:"room_id"`
	RoomNumber     string `json:"room_number"`
	Arrival        string `json:"arrival"`
	Departure      string `json:"departure"`
	StatusName     string `json:"status"`
	TotalCostCents uint32 `json:"total_cost_cents"`
	CreatedAt      string `json:"created_at"`
}

// BookingCancelledEvent is published when a booking is deleted or moved
// into a vacating status, freeing its room for the stay interval.
type BookingCancelledEvent struct {
	BookingID   uint64 `json:"booking_id"`
	RoomID      uint64 `json:"room_id"`
	Arrival     string `json:"arrival"`
	Departure   string `json:"departure"`
	CancelledAt string `json:"cancelled_at"`
}
