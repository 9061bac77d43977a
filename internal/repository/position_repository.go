package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrPositionNotFound indicates that a staff position was not located in the DB.
var ErrPositionNotFound = errors.New("position not found")

// PositionRepo provides CRUD operations for staff positions.
type PositionRepo struct{ db *sql.DB }

// NewPositionRepo constructs a PositionRepo with the given DB handle.
func NewPositionRepo(db *sql.DB) *PositionRepo { return &PositionRepo{db: db} }

// GetByID returns a position or ErrPositionNotFound.
func (r *PositionRepo) GetByID(ctx context.Context, id uint64) (*model.Position, error) {
    var m model.Position
    err := r.db.QueryRowContext(ctx,
        `SELECT id, position_name FROM positions WHERE id = ?`, id).Scan(&m.ID, &m.Name)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrPositionNotFound
        }
        return nil, err
    }
    return &m, nil
}

// List returns all positions in stable id order.
func (r *PositionRepo) List(ctx context.Context) ([]model.Position, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT id, position_name FROM positions ORDER BY id`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Position, 0)
    for rows.Next() {
        var m model.Position
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

// Create inserts a new position; names are unique.
func (r *PositionRepo) Create(ctx context.Context, m *model.Position) error {
    res, err := r.db.ExecContext(ctx, `INSERT INTO positions (position_name) VALUES (?)`, m.Name)
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

// Update renames a position.
func (r *PositionRepo) Update(ctx context.Context, m *model.Position) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE positions SET position_name = ? WHERE id = ?`, m.Name, m.ID)
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

// Delete removes a position unless staff still reference it.
func (r *PositionRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM positions WHERE id = ?`, id)
    if err != nil {
        if isReferenced(err) {
            return ErrConflict
        }
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrPositionNotFound
    }
    return nil
}
