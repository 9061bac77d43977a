package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/hotel-reservation/internal/model"
)

// ErrPaymentNotFound indicates that a payment was not located in the DB.
var ErrPaymentNotFound = errors.New("payment not found")

// ErrPaymentMethodNotFound indicates an unknown payment method.
var ErrPaymentMethodNotFound = errors.New("payment method not found")

// PaymentRepo persists payments and the payment method vocabulary.
// Payments are a simple ledger keyed by booking; the engine never
// derives totals from them.
type PaymentRepo struct{ db *sql.DB }

// NewPaymentRepo constructs a PaymentRepo with the given DB handle.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

const paymentColumns = `id, booking_id, paid_at, amount_cents, payment_method_id`

func scanPayment(row *sql.Row) (*model.Payment, error) {
    var m model.Payment
    var methodID sql.NullInt64
    if err := row.Scan(&m.ID, &m.BookingID, &m.PaidAt, &m.AmountCents, &methodID); err != nil {
        return nil, err
    }
    if methodID.Valid {
        v := uint64(methodID.Int64)
        m.MethodID = &v
    }
    return &m, nil
}

// GetByID returns a payment or ErrPaymentNotFound.
func (r *PaymentRepo) GetByID(ctx context.Context, id uint64) (*model.Payment, error) {
    m, err := scanPayment(r.db.QueryRowContext(ctx,
        `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrPaymentNotFound
    }
    return m, err
}

// List returns all payments in stable id order.
func (r *PaymentRepo) List(ctx context.Context) ([]model.Payment, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY id`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Payment, 0)
    for rows.Next() {
        var m model.Payment
        var methodID sql.NullInt64
        if err := rows.Scan(&m.ID, &m.BookingID, &m.PaidAt, &m.AmountCents, &methodID); err != nil {
            return nil, err
        }
        if methodID.Valid {
            v := uint64(methodID.Int64)
            m.MethodID = &v
        }
        out = append(out, m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Create inserts a payment against a booking. A nonexistent booking
// reference surfaces as ErrBookingNotFound.
func (r *PaymentRepo) Create(ctx context.Context, m *model.Payment) error {
    var got uint64
    err := r.db.QueryRowContext(ctx, `SELECT id FROM bookings WHERE id = ?`, m.BookingID).Scan(&got)
    if errors.Is(err, sql.ErrNoRows) {
        return ErrBookingNotFound
    }
    if err != nil {
        return err
    }
    res, err := r.db.ExecContext(ctx,
        `INSERT INTO payments (booking_id, amount_cents, payment_method_id) VALUES (?, ?, ?)`,
        m.BookingID, m.AmountCents, nullableID(m.MethodID))
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    got2, err := scanPayment(r.db.QueryRowContext(ctx,
        `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, m.ID))
    if err != nil {
        return err
    }
    *m = *got2
    return nil
}

// Update rewrites a payment's amount and method.
func (r *PaymentRepo) Update(ctx context.Context, m *model.Payment) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE payments SET booking_id = ?, amount_cents = ?, payment_method_id = ? WHERE id = ?`,
        m.BookingID, m.AmountCents, nullableID(m.MethodID), m.ID)
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

// Delete removes a payment.
func (r *PaymentRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrPaymentNotFound
    }
    return nil
}

// ListMethods returns the payment method vocabulary.
func (r *PaymentRepo) ListMethods(ctx context.Context) ([]model.PaymentMethod, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT id, method_name FROM payment_methods ORDER BY id`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.PaymentMethod, 0)
    for rows.Next() {
        var m model.PaymentMethod
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

// CreateMethod inserts a payment method; names are unique.
func (r *PaymentRepo) CreateMethod(ctx context.Context, m *model.PaymentMethod) error {
    res, err := r.db.ExecContext(ctx, `INSERT INTO payment_methods (method_name) VALUES (?)`, m.Name)
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

// DeleteMethod removes a payment method; payments referencing it keep
// their rows with the method nulled out.
func (r *PaymentRepo) DeleteMethod(ctx context.Context, id uint64) error {
    if _, err := r.db.ExecContext(ctx,
        `UPDATE payments SET payment_method_id = NULL WHERE payment_method_id = ?`, id); err != nil {
        return err
    }
    res, err := r.db.ExecContext(ctx, `DELETE FROM payment_methods WHERE id = ?`, id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrPaymentMethodNotFound
    }
    return nil
}
