package repository

import (
    "testing"
    "time"

    "github.com/iliyamo/hotel-reservation/internal/model"
)

func date(s string) time.Time {
    t, err := time.Parse(model.DateOnly, s)
    if err != nil {
        panic(err)
    }
    return t
}

func claim(id uint64, arrival, departure, status string) StayClaim {
    return StayClaim{
        BookingID:  id,
        RoomID:     1,
        Stay:       model.StayRange{Arrival: date(arrival), Departure: date(departure)},
        StatusName: status,
    }
}

func TestFirstConflict(t *testing.T) {
    vacating := map[string]bool{"CANCELLED": true}
    existing := []StayClaim{
        claim(1, "2024-06-01", "2024-06-05", "CONFIRMED"),
        claim(2, "2024-06-10", "2024-06-12", "CONFIRMED"),
        claim(3, "2024-06-20", "2024-06-25", "CANCELLED"),
        claim(4, "2024-06-26", "2024-06-29", "Cancelled"),
    }

    tests := []struct {
        name    string
        stay    model.StayRange
        exclude uint64
        wantID  uint64 // 0 means no conflict expected
    }{
        {
            name:   "overlapping stay is rejected",
            stay:   model.StayRange{Arrival: date("2024-06-03"), Departure: date("2024-06-07")},
            wantID: 1,
        },
        {
            name:   "turnover day reuse succeeds",
            stay:   model.StayRange{Arrival: date("2024-06-05"), Departure: date("2024-06-08")},
            wantID: 0,
        },
        {
            name:   "gap between bookings succeeds",
            stay:   model.StayRange{Arrival: date("2024-06-06"), Departure: date("2024-06-10")},
            wantID: 0,
        },
        {
            name:    "excluded booking does not self-conflict",
            stay:    model.StayRange{Arrival: date("2024-06-02"), Departure: date("2024-06-04")},
            exclude: 1,
            wantID:  0,
        },
        {
            name:    "excluding one booking still hits another",
            stay:    model.StayRange{Arrival: date("2024-06-04"), Departure: date("2024-06-11")},
            exclude: 1,
            wantID:  2,
        },
        {
            name:   "vacating status frees the room",
            stay:   model.StayRange{Arrival: date("2024-06-21"), Departure: date("2024-06-23")},
            wantID: 0,
        },
        {
            name:   "vacating match ignores stored case",
            stay:   model.StayRange{Arrival: date("2024-06-27"), Departure: date("2024-06-28")},
            wantID: 0,
        },
        {
            name:   "covers two claims, first wins",
            stay:   model.StayRange{Arrival: date("2024-06-01"), Departure: date("2024-06-30")},
            wantID: 1,
        },
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            got := FirstConflict(existing, tt.stay, tt.exclude, vacating)
            if tt.wantID == 0 {
                if got != nil {
                    t.Fatalf("FirstConflict returned booking %d, want none", got.BookingID)
                }
                return
            }
            if got == nil {
                t.Fatalf("FirstConflict returned none, want booking %d", tt.wantID)
            }
            if got.BookingID != tt.wantID {
                t.Errorf("FirstConflict returned booking %d, want %d", got.BookingID, tt.wantID)
            }
        })
    }
}

func TestFirstConflictEmpty(t *testing.T) {
    stay := model.StayRange{Arrival: date("2024-06-01"), Departure: date("2024-06-05")}
    if got := FirstConflict(nil, stay, 0, nil); got != nil {
        t.Errorf("FirstConflict on empty claims = %v, want nil", got)
    }
}

func TestRoomConflictErrorMessage(t *testing.T) {
    err := &RoomConflictError{
        RoomID:        7,
        Stay:          model.StayRange{Arrival: date("2024-06-01"), Departure: date("2024-06-05")},
        WithBookingID: 42,
    }
    want := "room 7 is occupied for 2024-06-01 to 2024-06-05 (booking 42)"
    if err.Error() != want {
        t.Errorf("Error() = %q, want %q", err.Error(), want)
    }
}
