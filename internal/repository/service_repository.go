package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrServiceNotFound indicates that an additional service was not located in the DB.
var ErrServiceNotFound = errors.New("service not found")

// ErrUsageNotFound indicates that a service usage record was not located in the DB.
var ErrUsageNotFound = errors.New("service usage not found")

// ServiceRepo persists additional services and their usage ledger.
type ServiceRepo struct{ db *sql.DB }

// NewServiceRepo constructs a ServiceRepo with the given DB handle.
func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{db: db} }

// GetByID returns a service or ErrServiceNotFound.
func (r *ServiceRepo) GetByID(ctx context.Context, id uint64) (*model.Service, error) {
    var m model.Service
    err := r.db.QueryRowContext(ctx,
        `SELECT id, service_name, price_cents, description FROM services WHERE id = ?`, id).
        Scan(&m.ID, &m.Name, &m.PriceCents, &m.Description)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrServiceNotFound
        }
        return nil, err
    }
    return &m, nil
}

// List returns all services in stable id order.
func (r *ServiceRepo) List(ctx context.Context) ([]model.Service, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, service_name, price_cents, description FROM services ORDER BY id`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Service, 0)
    for rows.Next() {
        var m model.Service
        if err := rows.Scan(&m.ID, &m.Name, &m.PriceCents, &m.Description); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Create inserts a new service; names are unique.
func (r *ServiceRepo) Create(ctx context.Context, m *model.Service) error {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO services (service_name, price_cents, description) VALUES (?, ?, ?)`,
        m.Name, m.PriceCents, m.Description)
    if err != nil {
        if isDuplicateKey(err) {
            return ErrConflict
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    return nil
}

// Update rewrites a service's attributes.
func (r *ServiceRepo) Update(ctx context.Context, m *model.Service) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE services SET service_name = ?, price_cents = ?, description = ? WHERE id = ?`,
        m.Name, m.PriceCents, m.Description, m.ID)
    if err != nil {
        if isDuplicateKey(err) {
            return ErrConflict
        }
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        if _, err := r.GetByID(ctx, m.ID); err != nil {
            return err
        }
    }
    return nil
}

// Delete removes a service together with its usage records (cascade).
func (r *ServiceRepo) Delete(ctx context.Context, id uint64) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if _, err := tx.ExecContext(ctx, `DELETE FROM service_usage WHERE service_id = ?`, id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, `DELETE FROM services WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrServiceNotFound
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

const usageColumns = `id, client_id, service_id, booking_id, used_at, quantity, cost_cents`

func scanUsage(scan func(dest ...interface{}) error) (*model.ServiceUsage, error) {
    var m model.ServiceUsage
    var clientID, bookingID sql.NullInt64
    if err := scan(&m.ID, &clientID, &m.ServiceID, &bookingID, &m.UsedAt, &m.Quantity, &m.CostCents); err != nil {
        return nil, err
    }
    if clientID.Valid {
        v := uint64(clientID.Int64)
        m.ClientID = &v
    }
    if bookingID.Valid {
        v := uint64(bookingID.Int64)
        m.BookingID = &v
    }
    return &m, nil
}

// GetUsageByID returns a usage record or ErrUsageNotFound.
func (r *ServiceRepo) GetUsageByID(ctx context.Context, id uint64) (*model.ServiceUsage, error) {
    m, err := scanUsage(r.db.QueryRowContext(ctx,
        `SELECT `+usageColumns+` FROM service_usage WHERE id = ?`, id).Scan)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrUsageNotFound
        }
        return nil, err
    }
    return m, nil
}

// ListUsage returns all usage records in stable id order.
func (r *ServiceRepo) ListUsage(ctx context.Context) ([]model.ServiceUsage, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT `+usageColumns+` FROM service_usage ORDER BY id`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.ServiceUsage, 0)
    for rows.Next() {
        m, err := scanUsage(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, *m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// CreateUsage records a client consuming a service. Quantity must be
// positive; the referenced service must exist.
func (r *ServiceRepo) CreateUsage(ctx context.Context, m *model.ServiceUsage) error {
    if _, err := r.GetByID(ctx, m.ServiceID); err != nil {
        return err
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO service_usage (client_id, service_id, booking_id, quantity, cost_cents)
         VALUES (?, ?, ?, ?, ?)`,
        nullableID(m.ClientID), m.ServiceID, nullableID(m.BookingID), m.Quantity, m.CostCents)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    got, err := scanUsage(r.db.QueryRowContext(ctx,
        `SELECT `+usageColumns+` FROM service_usage WHERE id = ?`, m.ID).Scan)
    if err != nil {
        return err
    }
    *m = *got
    return nil
}

// UpdateUsage rewrites a usage record.
func (r *ServiceRepo) UpdateUsage(ctx context.Context, m *model.ServiceUsage) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE service_usage SET client_id = ?, service_id = ?, booking_id = ?, quantity = ?, cost_cents = ?
         WHERE id = ?`,
        nullableID(m.ClientID), m.ServiceID, nullableID(m.BookingID), m.Quantity, m.CostCents, m.ID)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        if _, err := r.GetUsageByID(ctx, m.ID); err != nil {
            return err
        }
    }
    return nil
}

// DeleteUsage removes a usage record.
func (r *ServiceRepo) DeleteUsage(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM service_usage WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrUsageNotFound
    }
    return nil
}
