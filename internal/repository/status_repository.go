package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-reservation/internal/model"
)

// StatusRepo manages the open booking status vocabulary. Operators may
// extend it at runtime; the engine never hard-codes status names
// beyond the configured vacating set.
type StatusRepo struct{ db *sql.DB }

// NewStatusRepo constructs a StatusRepo with the given DB handle.
func NewStatusRepo(db *sql.DB) *StatusRepo { return &StatusRepo{db: db} }

// Exists reports whether a status with the given id is defined.
func (r *StatusRepo) Exists(ctx context.Context, id uint64) (bool, error) {
    var got uint64
    err := r.db.QueryRowContext(ctx, `SELECT id FROM booking_statuses WHERE id = ?`, id).Scan(&got)
    if errors.Is(err, sql.ErrNoRows) {
        return false, nil
    }
    if err != nil {
        return false, err
    }
    return true, nil
}

// ExistsTx is Exists inside an open transaction, so the answer stays
// consistent with the rest of the mutation it guards.
func (r *StatusRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
    var got uint64
    err := tx.QueryRowContext(ctx, `SELECT id FROM booking_statuses WHERE id = ?`, id).Scan(&got)
    if errors.Is(err, sql.ErrNoRows) {
        return false, nil
    }
    if err != nil {
        return false, err
    }
    return true, nil
}

// GetByID returns a status entry or ErrStatusNotFound.
func (r *StatusRepo) GetByID(ctx context.Context, id uint64) (*model.BookingStatus, error) {
    var m model.BookingStatus
    err := r.db.QueryRowContext(ctx,
        `SELECT id, status_name FROM booking_statuses WHERE id = ?`, id).Scan(&m.ID, &m.Name)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrStatusNotFound
        }
        return nil, err
    }
    return &m, nil
}

// List returns the whole vocabulary in stable id order.
func (r *StatusRepo) List(ctx context.Context) ([]model.BookingStatus, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT id, status_name FROM booking_statuses ORDER BY id`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.BookingStatus, 0)
    for rows.Next() {
        var m model.BookingStatus
        if err := rows.Scan(&m.ID, &m.Name); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Create inserts a new status name. Names are unique.
func (r *StatusRepo) Create(ctx context.Context, m *model.BookingStatus) error {
    res, err := r.db.ExecContext(ctx, `INSERT INTO booking_statuses (status_name) VALUES (?)`, m.Name)
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

// Update renames a status entry.
func (r *StatusRepo) Update(ctx context.Context, m *model.BookingStatus) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE booking_statuses SET status_name = ? WHERE id = ?`, m.Name, m.ID)
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

// Delete removes a status entry. Statuses still referenced by
// bookings cannot be removed (ErrConflict).
func (r *StatusRepo) Delete(ctx context.Context, id uint64) error {
    var n uint64
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM bookings WHERE booking_status_id = ?`, id).Scan(&n); err != nil {
        return err
    }
    if n > 0 {
        return ErrConflict
    }
    res, err := r.db.ExecContext(ctx, `DELETE FROM booking_statuses WHERE id = ?`, id)
    if err != nil {
        if isReferenced(err) {
            return ErrConflict
        }
        return err
    }
    if affected, err := res.RowsAffected(); err != nil {
        return err
    } else if affected == 0 {
        return ErrStatusNotFound
    }
    return nil
}
