package handler

import (
	"testing"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

func TestParseStay(t *testing.T) {
	cases := []struct {
		name      string
		arrival   string
		departure string
		wantErr   bool
	}{
		{"valid one night", "2026-03-10", "2026-03-11", false},
		{"valid week", "2026-03-10", "2026-03-17", false},
		{"zero nights", "2026-03-10", "2026-03-10", true},
		{"reversed", "2026-03-17", "2026-03-10", true},
		{"garbage arrival", "not-a-date", "2026-03-11", true},
		{"garbage departure", "2026-03-10", "11.03.2026", true},
		{"empty", "", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stay, err := parseStay(tc.arrival, tc.departure)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseStay(%q, %q) succeeded, want error", tc.arrival, tc.departure)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseStay(%q, %q): %v", tc.arrival, tc.departure, err)
			}
			if got := stay.Arrival.Format(model.DateOnly); got != tc.arrival {
				t.Errorf("arrival = %s, want %s", got, tc.arrival)
			}
			if got := stay.Departure.Format(model.DateOnly); got != tc.departure {
				t.Errorf("departure = %s, want %s", got, tc.departure)
			}
		})
	}
}

func TestToBookingResp(t *testing.T) {
	clientID := uint64(7)
	b := &model.Booking{
		ID:             3,
		ClientID:       &clientID,
		BookedAt:       time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		Arrival:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Departure:      time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		StatusID:       1,
		TotalCostCents: 25000,
	}
	resp := toBookingResp(b, 42)
	if resp.ID != 3 || resp.RoomID != 42 {
		t.Errorf("ids = (%d, %d), want (3, 42)", resp.ID, resp.RoomID)
	}
	if resp.ClientID == nil || *resp.ClientID != 7 {
		t.Errorf("client_id = %v, want 7", resp.ClientID)
	}
	if resp.Arrival != "2026-03-10" || resp.Departure != "2026-03-12" {
		t.Errorf("stay = %s..%s", resp.Arrival, resp.Departure)
	}
	if resp.BookedAt != "2026-03-01T12:30:00Z" {
		t.Errorf("booked_at = %s", resp.BookedAt)
	}
}
