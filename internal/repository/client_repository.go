package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-reservation/internal/model"
)

// ClientRepo provides CRUD operations for hotel guests. The booking
// engine only needs Exists; the rest serves the guest registry
// endpoints.
type ClientRepo struct {
    db *sql.DB
}

// NewClientRepo constructs a ClientRepo with the given DB handle.
func NewClientRepo(db *sql.DB) *ClientRepo {
    return &ClientRepo{db: db}
}

const clientColumns = `id, first_name, last_name, phone, email, registered_at`

// Exists reports whether a client with the given id is registered.
func (r *ClientRepo) Exists(ctx context.Context, id uint64) (bool, error) {
    var got uint64
    err := r.db.QueryRowContext(ctx, `SELECT id FROM clients WHERE id = ?`, id).Scan(&got)
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
func (r *ClientRepo) ExistsTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
    var got uint64
    err := tx.QueryRowContext(ctx, `SELECT id FROM clients WHERE id = ?`, id).Scan(&got)
    if errors.Is(err, sql.ErrNoRows) {
        return false, nil
    }
    if err != nil {
        return false, err
    }
    return true, nil
}

// GetByID retrieves a client by id, returning ErrClientNotFound when
// no row exists.
func (r *ClientRepo) GetByID(ctx context.Context, id uint64) (*model.Client, error) {
    const q = `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
    var m model.Client
    err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.FirstName, &m.LastName, &m.Phone, &m.Email, &m.RegisteredAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrClientNotFound
        }
        return nil, err
    }
    return &m, nil
}

// List returns all clients in stable id order.
func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
    const q = `SELECT ` + clientColumns + ` FROM clients ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Client, 0)
    for rows.Next() {
        var m model.Client
        if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Phone, &m.Email, &m.RegisteredAt); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Create inserts a new client. Phone and email are unique; duplicates
// return ErrConflict. On success the generated ID and registration
// timestamp are populated.
func (r *ClientRepo) Create(ctx context.Context, m *model.Client) error {
    const q = `INSERT INTO clients (first_name, last_name, phone, email) VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, m.FirstName, m.LastName, m.Phone, m.Email)
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
    const sel = `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, m.ID).Scan(&m.ID, &m.FirstName, &m.LastName, &m.Phone, &m.Email, &m.RegisteredAt)
}

// Update rewrites a client's attributes.
func (r *ClientRepo) Update(ctx context.Context, m *model.Client) error {
    const q = `UPDATE clients SET first_name = ?, last_name = ?, phone = ?, email = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, m.FirstName, m.LastName, m.Phone, m.Email, m.ID)
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

// Delete removes a client. Bookings referencing the client keep their
// rows with the reference nulled out, mirroring the nullable owning
// reference on bookings.
func (r *ClientRepo) Delete(ctx context.Context, id uint64) error {
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
    if _, err := tx.ExecContext(ctx, `UPDATE bookings SET client_id = NULL WHERE client_id = ?`, id); err != nil {
        return err
    }
    if _, err := tx.ExecContext(ctx, `UPDATE service_usage SET client_id = NULL WHERE client_id = ?`, id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrClientNotFound
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
