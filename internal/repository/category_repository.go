package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrCategoryNotFound indicates that a room category was not located in the DB.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepo provides CRUD operations for room categories.
type CategoryRepo struct{ db *sql.DB }

// NewCategoryRepo constructs a CategoryRepo with the given DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// GetByID returns a category or ErrCategoryNotFound.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
    var m model.Category
    err := r.db.QueryRowContext(ctx,
        `SELECT id, category_name, description FROM categories WHERE id = ?`, id).
        Scan(&m.ID, &m.Name, &m.Description)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrCategoryNotFound
        }
        return nil, err
    }
    return &m, nil
}

// List returns all categories in stable id order.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT id, category_name, description FROM categories ORDER BY id`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Category, 0)
    for rows.Next() {
        var m model.Category
        if err := rows.Scan(&m.ID, &m.Name, &m.Description); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Create inserts a new category; names are unique.
func (r *CategoryRepo) Create(ctx context.Context, m *model.Category) error {
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO categories (category_name, description) VALUES (?, ?)`, m.Name, m.Description)
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

// Update rewrites a category's name and description.
func (r *CategoryRepo) Update(ctx context.Context, m *model.Category) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE categories SET category_name = ?, description = ? WHERE id = ?`, m.Name, m.Description, m.ID)
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

// Delete removes a category unless rooms still reference it.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
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
        return ErrCategoryNotFound
    }
    return nil
}
