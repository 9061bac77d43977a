package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrAnalysisNotFound indicates that a sales analysis row was not located in the DB.
var ErrAnalysisNotFound = errors.New("sales analysis not found")

// SalesRepo persists operator-entered daily revenue rollups. The rows
// are stored exactly as given; no totals are computed here.
type SalesRepo struct{ db *sql.DB }

// NewSalesRepo constructs a SalesRepo with the given DB handle.
func NewSalesRepo(db *sql.DB) *SalesRepo { return &SalesRepo{db: db} }

const salesColumns = `id, analysis_date, total_revenue_cents, rooms_sold, services_revenue_cents`

// GetByID returns a rollup row or ErrAnalysisNotFound.
func (r *SalesRepo) GetByID(ctx context.Context, id uint64) (*model.SalesAnalysis, error) {
    var m model.SalesAnalysis
    err := r.db.QueryRowContext(ctx,
        `SELECT `+salesColumns+` FROM sales_analysis WHERE id = ?`, id).
        Scan(&m.ID, &m.Date, &m.TotalRevenueCents, &m.RoomsSold, &m.ServicesRevenueCents)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrAnalysisNotFound
        }
        return nil, err
    }
    return &m, nil
}

// List returns all rollup rows in stable id order.
func (r *SalesRepo) List(ctx context.Context) ([]model.SalesAnalysis, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT `+salesColumns+` FROM sales_analysis ORDER BY id`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.SalesAnalysis, 0)
    for rows.Next() {
        var m model.SalesAnalysis
        if err := rows.Scan(&m.ID, &m.Date, &m.TotalRevenueCents, &m.RoomsSold, &m.ServicesRevenueCents); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Create inserts a rollup row.
func (r *SalesRepo) Create(ctx context.Context, m *model.SalesAnalysis) error {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO sales_analysis (analysis_date, total_revenue_cents, rooms_sold, services_revenue_cents)
         VALUES (?, ?, ?, ?)`,
        m.Date, m.TotalRevenueCents, m.RoomsSold, m.ServicesRevenueCents)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    return nil
}

// Update rewrites a rollup row.
func (r *SalesRepo) Update(ctx context.Context, m *model.SalesAnalysis) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE sales_analysis SET analysis_date = ?, total_revenue_cents = ?, rooms_sold = ?, services_revenue_cents = ?
         WHERE id = ?`,
        m.Date, m.TotalRevenueCents, m.RoomsSold, m.ServicesRevenueCents, m.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        if _, err := r.GetByID(ctx, m.ID); err != nil {
            return err
        }
    }
    return nil
}

// Delete removes a rollup row.
func (r *SalesRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM sales_analysis WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrAnalysisNotFound
    }
    return nil
}
