package model

import (
    "errors"
    "time"
)

// ErrInvalidStayRange is returned when a stay's departure date is not
// strictly after its arrival date.  Validation happens before any
// database access so a rejected range never touches storage.
var ErrInvalidStayRange = errors.New("departure date must be after arrival date")

// StayRange is a half-open occupancy interval [Arrival, Departure).
// The departure date is the day the guest vacates: the room becomes
// available again starting that date, so a stay departing on a given
// day never conflicts with a stay arriving on the same day.
type StayRange struct {
    Arrival   time.Time // first occupied night
    Departure time.Time // checkout day, not occupied
}

// Validate checks the fundamental stay invariant: Departure > Arrival.
// A zero-night or negative range returns ErrInvalidStayRange.
func (s StayRange) Validate() error {
    if !s.Departure.After(s.Arrival) {
        return ErrInvalidStayRange
    }
    return nil
}

// Overlaps reports whether two half-open stay ranges intersect.
// Two stays overlap iff a.Arrival < b.Departure AND b.Arrival < a.Departure.
// Back-to-back turnover (one stay departing the day the other arrives)
// is not an overlap.
func (s StayRange) Overlaps(o StayRange) bool {
    return s.Arrival.Before(o.Departure) && o.Arrival.Before(s.Departure)
}

// Nights returns the number of occupied nights in the range.  The
// result is only meaningful for a valid range.
func (s StayRange) Nights() int {
    return int(s.Departure.Sub(s.Arrival).Hours() / 24)
}

// DateOnly is the wire and storage format for stay dates.
const DateOnly = "2006-01-02"

// ParseStayDate parses a YYYY-MM-DD date in UTC.
func ParseStayDate(s string) (time.Time, error) {
    return time.Parse(DateOnly, s)
}
