package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-reservation/internal/model"
)

// RoomRepo provides read and write access to the room inventory. The
// reservation engine itself only reads rooms (existence checks and the
// per-room lock); the CRUD methods serve the inventory management
// endpoints.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
    return &RoomRepo{db: db}
}

const roomColumns = `id, room_number, floor, capacity, category_id`

// LockTx takes an exclusive lock on the room row for the lifetime of
// the transaction. Every booking mutation locks its room before any
// other read in the same transaction, which serializes the
// check-then-write sequence per room: two concurrent attempts on the
// same room queue up here, and the loser's read view is only
// established once the winner has committed, so the later claims scan
// sees the winner's booking. Callers must not issue a consistent read
// ahead of this lock. Returns ErrRoomNotFound when the room does not
// exist.
func (r *RoomRepo) LockTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    var got uint64
    err := tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = ? FOR UPDATE`, id).Scan(&got)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrRoomNotFound
        }
        return err
    }
    return nil
}

// GetByID retrieves a room by its ID. It returns ErrRoomNotFound when
// no row is found.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
    const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
    var m model.Room
    err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Number, &m.Floor, &m.Capacity, &m.CategoryID)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, err
    }
    return &m, nil
}

// List returns all rooms in stable id order.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
    const q = `SELECT ` + roomColumns + ` FROM rooms ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Room, 0)
    for rows.Next() {
        var m model.Room
        if err := rows.Scan(&m.ID, &m.Number, &m.Floor, &m.Capacity, &m.CategoryID); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Create inserts a new room. Room numbers are unique; inserting a
// duplicate returns ErrConflict. After insert the ID field of the
// room is populated.
func (r *RoomRepo) Create(ctx context.Context, m *model.Room) error {
    const q = `INSERT INTO rooms (room_number, floor, capacity, category_id) VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, m.Number, m.Floor, m.Capacity, m.CategoryID)
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

// Update rewrites a room's attributes. Returns ErrRoomNotFound when
// the room does not exist and ErrConflict on a duplicate room number.
func (r *RoomRepo) Update(ctx context.Context, m *model.Room) error {
    const q = `UPDATE rooms SET room_number = ?, floor = ?, capacity = ?, category_id = ? WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q, m.Number, m.Floor, m.Capacity, m.CategoryID, m.ID)
    if err != nil {
        if isDuplicateKey(err) {
            return ErrConflict
        }
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        // zero rows can also mean "no change"; confirm existence
        if _, err := r.GetByID(ctx, m.ID); err != nil {
            return err
        }
    }
    return nil
}

// Delete removes a room. Rooms still referenced by bookings cannot be
// removed; that surfaces as ErrConflict. Returns ErrRoomNotFound when
// the room does not exist.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
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
        return ErrRoomNotFound
    }
    return nil
}
