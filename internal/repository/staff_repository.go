package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/hotel-reservation/internal/model"
    "github.com/iliyamo/hotel-reservation/internal/utils"
)

// ErrLoginExists is returned when a staff login, phone or email is already taken.
var ErrLoginExists = errors.New("login already exists")

// StaffRepo persists staff accounts and the lockout counters used by
// the login flow.
type StaffRepo struct{ DB *sql.DB }

// NewStaffRepo constructs a StaffRepo with the given DB handle.
func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{DB: db} }

const staffColumns = `id, first_name, last_name, phone, email, login, password_hash,
                      position_id, created_at, failed_attempts, blocked`

func scanStaff(row *sql.Row) (model.Staff, error) {
    var s model.Staff
    var posID sql.NullInt64
    err := row.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Phone, &s.Email, &s.Login,
        &s.PasswordHash, &posID, &s.CreatedAt, &s.FailedAttempts, &s.Blocked)
    if err != nil {
        return model.Staff{}, err
    }
    if posID.Valid {
        v := uint64(posID.Int64)
        s.PositionID = &v
    }
    return s, nil
}

// Create inserts a staff account with a bcrypt-hashed password and
// returns its ID.
func (r *StaffRepo) Create(ctx context.Context, s *model.Staff, password string, cost int) error {
    s.Login = strings.TrimSpace(s.Login)
    hash, err := utils.HashPassword(password, cost)
    if err != nil {
        return err
    }
    res, err := r.DB.ExecContext(ctx,
        `INSERT INTO staff (first_name, last_name, phone, email, login, password_hash, position_id)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
        s.FirstName, s.LastName, s.Phone, s.Email, s.Login, hash, nullableID(s.PositionID))
    if err != nil {
        if isDuplicateKey(err) {
            return ErrLoginExists
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    s.PasswordHash = hash
    return nil
}

// GetByLogin fetches a staff account by its sign-in name.
func (r *StaffRepo) GetByLogin(ctx context.Context, login string) (model.Staff, error) {
    login = strings.TrimSpace(login)
    s, err := scanStaff(r.DB.QueryRowContext(ctx,
        `SELECT `+staffColumns+` FROM staff WHERE login = ? LIMIT 1`, login))
    if errors.Is(err, sql.ErrNoRows) {
        return model.Staff{}, ErrStaffNotFound
    }
    return s, err
}

// GetByID fetches a staff account by id.
func (r *StaffRepo) GetByID(ctx context.Context, id uint64) (model.Staff, error) {
    s, err := scanStaff(r.DB.QueryRowContext(ctx,
        `SELECT `+staffColumns+` FROM staff WHERE id = ? LIMIT 1`, id))
    if errors.Is(err, sql.ErrNoRows) {
        return model.Staff{}, ErrStaffNotFound
    }
    return s, err
}

// RecordFailure bumps the failed-attempt counter and blocks the
// account once the limit is reached. The increment runs as a single
// UPDATE so concurrent failed logins never lose a count. The counter
// resets when the account is blocked so an unblock starts clean.
// Returns the new blocked state.
func (r *StaffRepo) RecordFailure(ctx context.Context, id uint64, limit int32) (bool, error) {
    res, err := r.DB.ExecContext(ctx,
        `UPDATE staff SET failed_attempts = failed_attempts + 1 WHERE id = ?`, id)
    if err != nil {
        return false, err
    }
    if n, err := res.RowsAffected(); err != nil {
        return false, err
    } else if n == 0 {
        return false, ErrStaffNotFound
    }
    var attempts int32
    if err := r.DB.QueryRowContext(ctx,
        `SELECT failed_attempts FROM staff WHERE id = ?`, id).Scan(&attempts); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return false, ErrStaffNotFound
        }
        return false, err
    }
    if attempts >= limit {
        _, err := r.DB.ExecContext(ctx,
            `UPDATE staff SET blocked = 1, failed_attempts = 0 WHERE id = ? AND failed_attempts >= ?`,
            id, limit)
        return true, err
    }
    return false, nil
}

// ResetFailures clears the failed-attempt counter after a successful login.
func (r *StaffRepo) ResetFailures(ctx context.Context, id uint64) error {
    _, err := r.DB.ExecContext(ctx, `UPDATE staff SET failed_attempts = 0 WHERE id = ?`, id)
    return err
}

// SetBlocked blocks or unblocks an account. Unblocking also clears
// the failure counter.
func (r *StaffRepo) SetBlocked(ctx context.Context, id uint64, blocked bool) error {
    var q string
    if blocked {
        q = `UPDATE staff SET blocked = 1 WHERE id = ?`
    } else {
        q = `UPDATE staff SET blocked = 0, failed_attempts = 0 WHERE id = ?`
    }
    res, err := r.DB.ExecContext(ctx, q, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        if _, err := r.GetByID(ctx, id); err != nil {
            return err
        }
    }
    return nil
}

// UpdatePassword replaces the stored hash with a hash of the new password.
func (r *StaffRepo) UpdatePassword(ctx context.Context, id uint64, newPassword string, cost int) error {
    hash, err := utils.HashPassword(newPassword, cost)
    if err != nil {
        return err
    }
    res, err := r.DB.ExecContext(ctx, `UPDATE staff SET password_hash = ? WHERE id = ?`, hash, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        if _, err := r.GetByID(ctx, id); err != nil {
            return err
        }
    }
    return nil
}
