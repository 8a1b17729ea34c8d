package handler

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nartchai/hotel-management-api/internal/model"
	"github.com/nartchai/hotel-management-api/internal/queue"
	"github.com/nartchai/hotel-management-api/internal/repository"
)

// ConfirmationPublisher emits an event after a payment confirms a booking.
// Implemented by service.QueuePublisher; a nil value disables publishing.
type ConfirmationPublisher interface {
	PublishBookingConfirmed(ctx context.Context, evt queue.BookingConfirmedEvent) error
}

// PaymentHandler serves payment CRUD. Recording or updating a payment as
// completed confirms its booking in the same transaction, so the two rows
// can never disagree.
type PaymentHandler struct {
	DB        *sql.DB
	Payments  *repository.PaymentRepository
	Bookings  *repository.BookingRepository
	Publisher ConfirmationPublisher
}

// NewPaymentHandler creates a new PaymentHandler instance. publisher may be
// nil.
func NewPaymentHandler(db *sql.DB, payments *repository.PaymentRepository, bookings *repository.BookingRepository, publisher ConfirmationPublisher) *PaymentHandler {
	return &PaymentHandler{DB: db, Payments: payments, Bookings: bookings, Publisher: publisher}
}

var validPaymentStatuses = map[string]bool{
	model.PaymentStatusPending:   true,
	model.PaymentStatusCompleted: true,
	model.PaymentStatusFailed:    true,
	model.PaymentStatusRefunded:  true,
}

type createPaymentRequest struct {
	BookingID     int64   `json:"booking_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	PaymentStatus string  `json:"payment_status"`
	TransactionID string  `json:"transaction_id"`
}

type updatePaymentRequest struct {
	Amount        *float64 `json:"amount"`
	PaymentMethod *string  `json:"payment_method"`
	PaymentStatus *string  `json:"payment_status"`
	TransactionID *string  `json:"transaction_id"`
}

// List handles GET /api/payments.
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.Payments.GetAll(c.Request().Context())
	if err != nil {
		return storeError(c, err, "")
	}
	return okList(c, payments)
}

// Get handles GET /api/payments/:id.
func (h *PaymentHandler) Get(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	p, err := h.Payments.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	return ok(c, http.StatusOK, p)
}

// GetByBooking handles GET /api/bookings/:bookingId/payment.
func (h *PaymentHandler) GetByBooking(c echo.Context) error {
	bookingID, okID := pathID(c, "bookingId")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	p, err := h.Payments.GetByBookingID(c.Request().Context(), bookingID)
	if err != nil {
		return storeError(c, err, "")
	}
	return ok(c, http.StatusOK, p)
}

// BookingForPayment handles GET /api/payments/:id/booking.
func (h *PaymentHandler) BookingForPayment(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	p, err := h.Payments.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	b, err := h.Bookings.GetByID(c.Request().Context(), p.BookingID)
	if err != nil {
		return storeError(c, err, "")
	}
	return ok(c, http.StatusOK, b)
}

// Create handles POST /api/payments. A payment whose status is completed
// also sets its booking to confirmed; both writes commit together or not at
// all.
func (h *PaymentHandler) Create(c echo.Context) error {
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	return h.create(c, req)
}

// CreateForBooking handles POST /api/bookings/:bookingId/payment; the
// booking comes from the path, not the body.
func (h *PaymentHandler) CreateForBooking(c echo.Context) error {
	bookingID, okID := pathID(c, "bookingId")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.BookingID = bookingID
	return h.create(c, req)
}

func (h *PaymentHandler) create(c echo.Context, req createPaymentRequest) error {
	if req.BookingID <= 0 {
		return fail(c, http.StatusBadRequest, "booking_id is required")
	}
	if req.Amount <= 0 {
		return fail(c, http.StatusBadRequest, "amount must be positive")
	}
	if req.PaymentMethod == "" {
		return fail(c, http.StatusBadRequest, "payment_method is required")
	}
	if req.PaymentStatus == "" {
		req.PaymentStatus = model.PaymentStatusPending
	}
	if !validPaymentStatuses[req.PaymentStatus] {
		return fail(c, http.StatusBadRequest, "invalid payment status")
	}

	ctx := c.Request().Context()
	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return failServer(c, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := h.Bookings.GetForUpdateTx(ctx, tx, req.BookingID); err != nil {
		return storeError(c, err, "")
	}

	p := &model.Payment{
		BookingID:     req.BookingID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		TransactionID: req.TransactionID,
	}
	paymentID, err := h.Payments.CreateTx(ctx, tx, p)
	if err != nil {
		return storeError(c, err, "booking already has a payment")
	}
	confirmed := req.PaymentStatus == model.PaymentStatusCompleted
	if confirmed {
		if err := h.Bookings.SetStatusTx(ctx, tx, req.BookingID, model.BookingStatusConfirmed); err != nil {
			return storeError(c, err, "")
		}
	}
	if err := tx.Commit(); err != nil {
		return failServer(c, err)
	}
	committed = true

	if confirmed {
		h.publishConfirmed(ctx, req.BookingID, req.PaymentMethod)
	}
	created, err := h.Payments.GetByID(ctx, paymentID)
	if err != nil {
		return storeError(c, err, "")
	}
	return okMessage(c, http.StatusCreated, "payment recorded", created)
}

// Update handles PUT /api/payments/:id. Moving the status to completed
// confirms the booking in the same transaction.
func (h *PaymentHandler) Update(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req updatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Amount != nil && *req.Amount <= 0 {
		return fail(c, http.StatusBadRequest, "amount must be positive")
	}
	if req.PaymentStatus != nil && !validPaymentStatuses[*req.PaymentStatus] {
		return fail(c, http.StatusBadRequest, "invalid payment status")
	}

	ctx := c.Request().Context()
	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return failServer(c, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	bookingID, err := h.Payments.UpdateTx(ctx, tx, id, req.Amount, req.PaymentMethod, req.PaymentStatus, req.TransactionID)
	if err != nil {
		return storeError(c, err, "")
	}
	confirmed := req.PaymentStatus != nil && *req.PaymentStatus == model.PaymentStatusCompleted
	if confirmed {
		if err := h.Bookings.SetStatusTx(ctx, tx, bookingID, model.BookingStatusConfirmed); err != nil {
			return storeError(c, err, "")
		}
	}
	if err := tx.Commit(); err != nil {
		return failServer(c, err)
	}
	committed = true

	method := ""
	if req.PaymentMethod != nil {
		method = *req.PaymentMethod
	}
	if confirmed {
		h.publishConfirmed(ctx, bookingID, method)
	}
	updated, err := h.Payments.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err, "")
	}
	return okMessage(c, http.StatusOK, "payment updated", updated)
}

// Delete handles DELETE /api/payments/:id. The booking status is left as is;
// refunds are modelled by the refunded payment status, not by deleting.
func (h *PaymentHandler) Delete(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Payments.Delete(c.Request().Context(), id); err != nil {
		return storeError(c, err, "")
	}
	return okMessage(c, http.StatusOK, "payment deleted", nil)
}

// publishConfirmed emits the confirmation event after commit. Publish
// failures are logged and never fail the request; the database is already
// consistent.
func (h *PaymentHandler) publishConfirmed(ctx context.Context, bookingID int64, method string) {
	if h.Publisher == nil {
		return
	}
	b, err := h.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		log.Printf("payment: load booking %d for event: %v", bookingID, err)
		return
	}
	if method == "" {
		if p, err := h.Payments.GetByBookingID(ctx, bookingID); err == nil {
			method = p.PaymentMethod
		}
	}
	numbers := make([]string, 0, len(b.Rooms))
	for _, rm := range b.Rooms {
		numbers = append(numbers, rm.RoomNumber)
	}
	evt := queue.BookingConfirmedEvent{
		BookingID:     b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		RoomNumbers:   numbers,
		TotalAmount:   b.TotalAmount,
		PaymentMethod: method,
		ConfirmedAt:   time.Now().UTC(),
	}
	if err := h.Publisher.PublishBookingConfirmed(ctx, evt); err != nil {
		log.Printf("payment: publish confirmation for booking %d: %v", bookingID, err)
	}
}
