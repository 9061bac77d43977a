package model

import (
    "testing"
    "time"
)

func day(s string) time.Time {
    t, err := time.Parse(DateOnly, s)
    if err != nil {
        panic(err)
    }
    return t
}

func stay(arrival, departure string) StayRange {
    return StayRange{Arrival: day(arrival), Departure: day(departure)}
}

func TestOverlaps(t *testing.T) {
    tests := []struct {
        name string
        a    StayRange
        b    StayRange
        want bool
    }{
        {
            name: "disjoint ranges",
            a:    stay("2024-06-01", "2024-06-05"),
            b:    stay("2024-06-10", "2024-06-12"),
            want: false,
        },
        {
            name: "back-to-back turnover is allowed",
            a:    stay("2024-06-01", "2024-06-05"),
            b:    stay("2024-06-05", "2024-06-08"),
            want: false,
        },
        {
            name: "back-to-back reversed",
            a:    stay("2024-06-05", "2024-06-08"),
            b:    stay("2024-06-01", "2024-06-05"),
            want: false,
        },
        {
            name: "partial overlap",
            a:    stay("2024-06-01", "2024-06-05"),
            b:    stay("2024-06-03", "2024-06-07"),
            want: true,
        },
        {
            name: "contained range",
            a:    stay("2024-06-01", "2024-06-10"),
            b:    stay("2024-06-03", "2024-06-05"),
            want: true,
        },
        {
            name: "identical ranges",
            a:    stay("2024-06-01", "2024-06-05"),
            b:    stay("2024-06-01", "2024-06-05"),
            want: true,
        },
        {
            name: "one night shared",
            a:    stay("2024-06-01", "2024-06-05"),
            b:    stay("2024-06-04", "2024-06-09"),
            want: true,
        },
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            if got := tt.a.Overlaps(tt.b); got != tt.want {
                t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
            }
            // overlap must be symmetric
            if got := tt.b.Overlaps(tt.a); got != tt.want {
                t.Errorf("Overlaps(%v, %v) = %v, want %v (asymmetric)", tt.b, tt.a, got, tt.want)
            }
        })
    }
}

func TestStayRangeValidate(t *testing.T) {
    tests := []struct {
        name    string
        s       StayRange
        wantErr bool
    }{
        {name: "one night", s: stay("2024-06-01", "2024-06-02"), wantErr: false},
        {name: "week", s: stay("2024-06-01", "2024-06-08"), wantErr: false},
        {name: "zero nights", s: stay("2024-06-01", "2024-06-01"), wantErr: true},
        {name: "reversed", s: stay("2024-06-05", "2024-06-01"), wantErr: true},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            err := tt.s.Validate()
            if (err != nil) != tt.wantErr {
                t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
            }
            if tt.wantErr && err != ErrInvalidStayRange {
                t.Errorf("Validate() error = %v, want ErrInvalidStayRange", err)
            }
        })
    }
}

func TestNights(t *testing.T) {
    if got := stay("2024-06-01", "2024-06-05").Nights(); got != 4 {
        t.Errorf("Nights() = %d, want 4", got)
    }
}
