package repository

import (
	"context"
	"database/sql"

	"github.com/nartchai/hotel-management-api/internal/model"
)

// PaymentRepository provides access to the payments table. Writes run inside
// a caller-owned transaction so the booking status change that a completed
// payment triggers commits atomically with the payment itself.
type PaymentRepository struct {
	DB *sql.DB
}

// NewPaymentRepository creates a new PaymentRepository instance.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

const paymentColumns = `id, booking_id, amount, payment_method, payment_status, transaction_id, payment_date, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*model.Payment, error) {
	var p model.Payment
	var txnID sql.NullString
	err := row.Scan(&p.ID, &p.BookingID, &p.Amount, &p.PaymentMethod, &p.PaymentStatus, &txnID, &p.PaymentDate, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.TransactionID = txnID.String
	return &p, nil
}

// GetAll returns every payment, newest first.
func (r *PaymentRepository) GetAll(ctx context.Context) ([]model.Payment, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY payment_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// GetByID returns one payment or ErrPaymentNotFound.
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id)
	p, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	return p, err
}

// GetByBookingID returns the payment of a booking or ErrPaymentNotFound.
func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID int64) (*model.Payment, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE booking_id = ?`, bookingID)
	p, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	return p, err
}

// CreateTx inserts a payment inside tx and returns its new ID. The unique
// key on booking_id maps a second payment to ErrConflict; a missing booking
// maps to ErrBookingNotFound.
func (r *PaymentRepository) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Payment) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO payments (booking_id, amount, payment_method, payment_status, transaction_id)
		VALUES (?, ?, ?, ?, ?)`,
		p.BookingID, p.Amount, p.PaymentMethod, p.PaymentStatus, p.TransactionID,
	)
	switch {
	case err == nil:
	case IsDuplicateEntry(err):
		return 0, ErrConflict
	case IsForeignKeyViolation(err):
		return 0, ErrBookingNotFound
	default:
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateTx applies a partial update to a payment inside tx with COALESCE
// semantics and returns the booking ID the payment belongs to, which the
// caller needs for the status synchronization.
func (r *PaymentRepository) UpdateTx(ctx context.Context, tx *sql.Tx, id int64, amount *float64, method, status, transactionID *string) (int64, error) {
	var bookingID int64
	err := tx.QueryRowContext(ctx, `SELECT booking_id FROM payments WHERE id = ? FOR UPDATE`, id).Scan(&bookingID)
	if err == sql.ErrNoRows {
		return 0, ErrPaymentNotFound
	}
	if err != nil {
		return 0, err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE payments SET
			amount = COALESCE(?, amount),
			payment_method = COALESCE(?, payment_method),
			payment_status = COALESCE(?, payment_status),
			transaction_id = COALESCE(?, transaction_id)
		WHERE id = ?`,
		amount, method, status, transactionID, id,
	)
	if err != nil {
		return 0, err
	}
	return bookingID, nil
}

// Delete removes a payment.
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
