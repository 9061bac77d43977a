package model

import "time"

// SalesAnalysis is a daily revenue rollup entered by operators.  The
// engine stores the rows as given and never recomputes them.
type SalesAnalysis struct {
    ID                   uint64    // sales_analysis.id
    Date                 time.Time // sales_analysis.analysis_date
    TotalRevenueCents    uint64    // sales_analysis.total_revenue_cents
    RoomsSold            int32     // sales_analysis.rooms_sold (>= 0)
    ServicesRevenueCents uint64    // sales_analysis.services_revenue_cents (>= 0)
}
