package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrCleaningNotFound indicates that a cleaning record was not located in the DB.
var ErrCleaningNotFound = errors.New("cleaning not found")

// CleaningRepo persists housekeeping records.
type CleaningRepo struct{ db *sql.DB }

// NewCleaningRepo constructs a CleaningRepo with the given DB handle.
func NewCleaningRepo(db *sql.DB) *CleaningRepo { return &CleaningRepo{db: db} }

const cleaningColumns = `id, room_id, cleaning_date, cleaning_status, staff_id`

func scanCleaning(scan func(dest ...interface{}) error) (*model.Cleaning, error) {
    var m model.Cleaning
    var staffID sql.NullInt64
    if err := scan(&m.ID, &m.RoomID, &m.Date, &m.Status, &staffID); err != nil {
        return nil, err
    }
    if staffID.Valid {
        v := uint64(staffID.Int64)
        m.StaffID = &v
    }
    return &m, nil
}

// GetByID returns a cleaning record or ErrCleaningNotFound.
func (r *CleaningRepo) GetByID(ctx context.Context, id uint64) (*model.Cleaning, error) {
    m, err := scanCleaning(r.db.QueryRowContext(ctx,
        `SELECT `+cleaningColumns+` FROM cleanings WHERE id = ?`, id).Scan)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrCleaningNotFound
        }
        return nil, err
    }
    return m, nil
}

// List returns all cleaning records in stable id order.
func (r *CleaningRepo) List(ctx context.Context) ([]model.Cleaning, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT `+cleaningColumns+` FROM cleanings ORDER BY id`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Cleaning, 0)
    for rows.Next() {
        m, err := scanCleaning(rows.Scan)
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

// Create inserts a cleaning record for an existing room.
func (r *CleaningRepo) Create(ctx context.Context, m *model.Cleaning) error {
    var got uint64
    err := r.db.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = ?`, m.RoomID).Scan(&got)
    if errors.Is(err, sql.ErrNoRows) {
        return ErrRoomNotFound
    }
    if err != nil {
        return err
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO cleanings (room_id, cleaning_date, cleaning_status, staff_id) VALUES (?, ?, ?, ?)`,
        m.RoomID, m.Date, m.Status, nullableID(m.StaffID))
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

// Update rewrites a cleaning record.
func (r *CleaningRepo) Update(ctx context.Context, m *model.Cleaning) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE cleanings SET room_id = ?, cleaning_date = ?, cleaning_status = ?, staff_id = ? WHERE id = ?`,
        m.RoomID, m.Date, m.Status, nullableID(m.StaffID), m.ID)
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

// Delete removes a cleaning record.
func (r *CleaningRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM cleanings WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrCleaningNotFound
    }
    return nil
}
