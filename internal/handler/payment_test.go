package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nartchai/hotel-management-api/internal/queue"
	"github.com/nartchai/hotel-management-api/internal/repository"
)

func duplicateEntryErr() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) PublishBookingConfirmed(ctx context.Context, evt queue.BookingConfirmedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func newPaymentHandler(t *testing.T, pub ConfirmationPublisher) (*PaymentHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mk, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	h := NewPaymentHandler(db,
		repository.NewPaymentRepository(db),
		repository.NewBookingRepository(db),
		pub,
	)
	return h, mk
}

var paymentCols = []string{"id", "booking_id", "amount", "payment_method", "payment_status",
	"transaction_id", "payment_date", "updated_at"}

var bookingLockCols = []string{"id", "customer_id", "check_in_date", "check_out_date",
	"total_amount", "status", "special_requests", "created_at", "updated_at"}

func expectBookingLock(mk sqlmock.Sqlmock, bookingID int64, status string) {
	now := time.Now()
	mk.ExpectQuery(`FROM bookings WHERE id = \? FOR UPDATE`).
		WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows(bookingLockCols).
			AddRow(bookingID, 7, now, now.AddDate(0, 0, 2), 500.0, status, "", now, now))
}

func TestCompletedPaymentConfirmsBookingAtomically(t *testing.T) {
	pub := &publisherMock{}
	pub.On("PublishBookingConfirmed", mock.Anything, mock.Anything).Return(nil)
	h, mk := newPaymentHandler(t, pub)
	now := time.Now()

	mk.ExpectBegin()
	expectBookingLock(mk, 5, "pending")
	mk.ExpectExec(`INSERT INTO payments`).
		WithArgs(int64(5), 500.0, "card", "completed", "txn-1").
		WillReturnResult(sqlmock.NewResult(11, 1))
	// the status flip commits with the payment, not after it
	mk.ExpectExec(`UPDATE bookings SET status = \?`).
		WithArgs("confirmed", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mk.ExpectCommit()

	// event payload is loaded after commit
	bookingCols := []string{"id", "customer_id", "check_in_date", "check_out_date", "total_amount",
		"status", "special_requests", "created_at", "updated_at", "customer_name", "email", "phone", "address"}
	mk.ExpectQuery(`FROM bookings b`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(5, 7, now, now.AddDate(0, 0, 2), 500.0, "confirmed", "", now, now,
				"Ada Lovelace", "ada@example.com", "555-0100", "12 Analytical Row"))
	mk.ExpectQuery(`FROM room_bookings rb`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"room_id", "room_number", "name", "floor", "price_per_night"}).
			AddRow(1, "101", "Deluxe", 1, 250.0))
	mk.ExpectQuery(`FROM payments WHERE id = \?`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow(11, 5, 500.0, "card", "completed", "txn-1", now, now))

	body := `{"booking_id":5,"amount":500,"payment_method":"card","payment_status":"completed","transaction_id":"txn-1"}`
	req, rec := jsonRequest(http.MethodPost, "/api/payments", body)
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mk.ExpectationsWereMet())
	pub.AssertNumberOfCalls(t, "PublishBookingConfirmed", 1)
}

func TestPendingPaymentLeavesBookingAlone(t *testing.T) {
	pub := &publisherMock{}
	h, mk := newPaymentHandler(t, pub)
	now := time.Now()

	mk.ExpectBegin()
	expectBookingLock(mk, 5, "pending")
	mk.ExpectExec(`INSERT INTO payments`).
		WithArgs(int64(5), 500.0, "cash", "pending", "").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mk.ExpectCommit()

	mk.ExpectQuery(`FROM payments WHERE id = \?`).
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow(12, 5, 500.0, "cash", "pending", "", now, now))

	body := `{"booking_id":5,"amount":500,"payment_method":"cash"}`
	req, rec := jsonRequest(http.MethodPost, "/api/payments", body)
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NoError(t, mk.ExpectationsWereMet())
	pub.AssertNotCalled(t, "PublishBookingConfirmed")
}

func TestSecondPaymentForBookingRejected(t *testing.T) {
	h, mk := newPaymentHandler(t, nil)

	mk.ExpectBegin()
	expectBookingLock(mk, 5, "pending")
	mk.ExpectExec(`INSERT INTO payments`).
		WithArgs(int64(5), 500.0, "card", "pending", "").
		WillReturnError(duplicateEntryErr())
	mk.ExpectRollback()

	body := `{"booking_id":5,"amount":500,"payment_method":"card"}`
	req, rec := jsonRequest(http.MethodPost, "/api/payments", body)
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Contains(t, env.Message, "already has a payment")
	assert.NoError(t, mk.ExpectationsWereMet())
}

func TestUpdatePaymentToCompletedConfirmsBooking(t *testing.T) {
	h, mk := newPaymentHandler(t, nil)
	now := time.Now()

	mk.ExpectBegin()
	mk.ExpectQuery(`SELECT booking_id FROM payments WHERE id = \? FOR UPDATE`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id"}).AddRow(5))
	mk.ExpectExec(`UPDATE payments SET`).
		WithArgs(nil, nil, "completed", nil, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mk.ExpectExec(`UPDATE bookings SET status = \?`).
		WithArgs("confirmed", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mk.ExpectCommit()

	mk.ExpectQuery(`FROM payments WHERE id = \?`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentCols).
			AddRow(11, 5, 500.0, "card", "completed", "txn-1", now, now))

	body := `{"payment_status":"completed"}`
	req, rec := jsonRequest(http.MethodPut, "/api/payments/11", body)
	c := echo.New().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("11")

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mk.ExpectationsWereMet())
}

func TestCreatePaymentUnknownBooking(t *testing.T) {
	h, mk := newPaymentHandler(t, nil)

	mk.ExpectBegin()
	mk.ExpectQuery(`FROM bookings WHERE id = \? FOR UPDATE`).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(bookingLockCols))
	mk.ExpectRollback()

	body := `{"booking_id":404,"amount":500,"payment_method":"card"}`
	req, rec := jsonRequest(http.MethodPost, "/api/payments", body)
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mk.ExpectationsWereMet())
}

func TestCreatePaymentValidation(t *testing.T) {
	h, _ := newPaymentHandler(t, nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing booking", `{"amount":100,"payment_method":"card"}`, "booking_id is required"},
		{"zero amount", `{"booking_id":5,"amount":0,"payment_method":"card"}`, "amount must be positive"},
		{"missing method", `{"booking_id":5,"amount":100}`, "payment_method is required"},
		{"bad status", `{"booking_id":5,"amount":100,"payment_method":"card","payment_status":"maybe"}`, "invalid payment status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := jsonRequest(http.MethodPost, "/api/payments", tt.body)
			c := echo.New().NewContext(req, rec)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var env Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Contains(t, env.Message, tt.want)
		})
	}
}
