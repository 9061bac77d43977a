package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrDocumentNotFound indicates that a document record was not located in the DB.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentRepo persists document metadata attached to bookings.
type DocumentRepo struct{ db *sql.DB }

// NewDocumentRepo constructs a DocumentRepo with the given DB handle.
func NewDocumentRepo(db *sql.DB) *DocumentRepo { return &DocumentRepo{db: db} }

const documentColumns = `id, booking_id, doc_name, doc_path, created_at`

// GetByID returns a document or ErrDocumentNotFound.
func (r *DocumentRepo) GetByID(ctx context.Context, id uint64) (*model.Document, error) {
    var m model.Document
    err := r.db.QueryRowContext(ctx,
        `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id).
        Scan(&m.ID, &m.BookingID, &m.Name, &m.Path, &m.CreatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrDocumentNotFound
        }
        return nil, err
    }
    return &m, nil
}

// List returns all documents in stable id order.
func (r *DocumentRepo) List(ctx context.Context) ([]model.Document, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY id`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Document, 0)
    for rows.Next() {
        var m model.Document
        if err := rows.Scan(&m.ID, &m.BookingID, &m.Name, &m.Path, &m.CreatedAt); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Create inserts a document record for an existing booking.
func (r *DocumentRepo) Create(ctx context.Context, m *model.Document) error {
    var got uint64
    err := r.db.QueryRowContext(ctx, `SELECT id FROM bookings WHERE id = ?`, m.BookingID).Scan(&got)
    if errors.Is(err, sql.ErrNoRows) {
        return ErrBookingNotFound
    }
    if err != nil {
        return err
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO documents (booking_id, doc_name, doc_path) VALUES (?, ?, ?)`,
        m.BookingID, m.Name, m.Path)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    return r.db.QueryRowContext(ctx,
        `SELECT `+documentColumns+` FROM documents WHERE id = ?`, m.ID).
        Scan(&m.ID, &m.BookingID, &m.Name, &m.Path, &m.CreatedAt)
}

// Update rewrites a document's metadata.
func (r *DocumentRepo) Update(ctx context.Context, m *model.Document) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE documents SET booking_id = ?, doc_name = ?, doc_path = ? WHERE id = ?`,
        m.BookingID, m.Name, m.Path, m.ID)
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

// Delete removes a document record.
func (r *DocumentRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrDocumentNotFound
    }
    return nil
}
