package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nartchai/hotel-management-api/internal/model"
	"github.com/nartchai/hotel-management-api/internal/pricing"
	"github.com/nartchai/hotel-management-api/internal/repository"
)

// BookingHandler serves booking CRUD and room assignment. Every write that
// touches the room set or the dates recomputes the derived total from the
// stored price snapshots inside one transaction.
type BookingHandler struct {
	DB        *sql.DB
	Bookings  *repository.BookingRepository
	Rooms     *repository.RoomRepository
	Customers *repository.CustomerRepository
}

// NewBookingHandler creates a new BookingHandler instance.
func NewBookingHandler(db *sql.DB, bookings *repository.BookingRepository, rooms *repository.RoomRepository, customers *repository.CustomerRepository) *BookingHandler {
	return &BookingHandler{DB: db, Bookings: bookings, Rooms: rooms, Customers: customers}
}

var validBookingStatuses = map[string]bool{
	model.BookingStatusPending:   true,
	model.BookingStatusConfirmed: true,
	model.BookingStatusCheckedIn: true,
	model.BookingStatusCompleted: true,
	model.BookingStatusCancelled: true,
}

type createBookingRequest struct {
	CustomerID      int64   `json:"customer_id"`
	CheckInDate     string  `json:"check_in_date"`
	CheckOutDate    string  `json:"check_out_date"`
	RoomIDs         []int64 `json:"room_ids"`
	Status          string  `json:"status"`
	SpecialRequests string  `json:"special_requests"`
}

type updateBookingRequest struct {
	CustomerID      *int64  `json:"customer_id"`
	CheckInDate     *string `json:"check_in_date"`
	CheckOutDate    *string `json:"check_out_date"`
	RoomIDs         []int64 `json:"room_ids"`
	Status          *string `json:"status"`
	SpecialRequests *string `json:"special_requests"`
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// dedupeIDs drops duplicate room IDs while preserving order.
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if id > 0 && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// List handles GET /api/bookings.
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.Bookings.GetAll(c.Request().Context())
	if err != nil {
		return storeError(c, err, "")
	}
	return okList(c, bookings)
}

// Get handles GET /api/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	b, err := h.Bookings.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	return ok(c, http.StatusOK, b)
}

// Create handles POST /api/bookings. The booking row, its room assignments
// with price snapshots and the derived total are written in one transaction;
// any requested room that does not exist aborts the whole create.
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.CustomerID <= 0 {
		return fail(c, http.StatusBadRequest, "customer_id is required")
	}
	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid check_in_date")
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid check_out_date")
	}
	if !checkOut.After(checkIn) {
		return fail(c, http.StatusBadRequest, "check_out_date must be after check_in_date")
	}
	// room_ids is optional: a booking may start without rooms and gets a
	// zero total until some are assigned.
	req.RoomIDs = dedupeIDs(req.RoomIDs)
	if req.Status == "" {
		req.Status = model.BookingStatusPending
	}
	if !validBookingStatuses[req.Status] {
		return fail(c, http.StatusBadRequest, "invalid booking status")
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

	exists, err := h.Customers.ExistsTx(ctx, tx, req.CustomerID)
	if err != nil {
		return failServer(c, err)
	}
	if !exists {
		return fail(c, http.StatusBadRequest, "customer not found")
	}

	rooms, err := h.Rooms.GetByIDsTx(ctx, tx, req.RoomIDs)
	if err != nil {
		return failServer(c, err)
	}
	for _, id := range req.RoomIDs {
		if _, found := rooms[id]; !found {
			return fail(c, http.StatusBadRequest, "one or more rooms not found")
		}
	}

	nights := pricing.Nights(checkIn, checkOut)
	prices := make([]float64, 0, len(req.RoomIDs))
	for _, id := range req.RoomIDs {
		prices = append(prices, rooms[id].PricePerNight)
	}

	b := &model.Booking{
		CustomerID:      req.CustomerID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		TotalAmount:     pricing.Total(nights, prices),
		Status:          req.Status,
		SpecialRequests: req.SpecialRequests,
	}
	bookingID, err := h.Bookings.CreateTx(ctx, tx, b)
	if err != nil {
		// The customer was pre-checked, so a FK failure here is a race; a
		// bad reference in the body is still the client's 400.
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return fail(c, http.StatusBadRequest, "customer not found")
		}
		return storeError(c, err, "")
	}
	for _, id := range req.RoomIDs {
		if err := h.Bookings.AddRoomTx(ctx, tx, bookingID, id, rooms[id].PricePerNight); err != nil {
			if errors.Is(err, repository.ErrRoomNotFound) {
				return fail(c, http.StatusBadRequest, "one or more rooms not found")
			}
			return storeError(c, err, "room already assigned to this booking")
		}
	}
	if err := tx.Commit(); err != nil {
		return failServer(c, err)
	}
	committed = true

	created, err := h.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return storeError(c, err, "")
	}
	return okMessage(c, http.StatusCreated, "booking created", created)
}

// Update handles PUT /api/bookings/:id. A room_ids field replaces the whole
// room set, silently skipping IDs that do not exist; new assignments
// snapshot current room prices. The total is recomputed from the effective
// dates and the snapshots that remain after the update.
func (h *BookingHandler) Update(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req updateBookingRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	var checkIn, checkOut *time.Time
	if req.CheckInDate != nil {
		t, err := parseDate(*req.CheckInDate)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid check_in_date")
		}
		checkIn = &t
	}
	if req.CheckOutDate != nil {
		t, err := parseDate(*req.CheckOutDate)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid check_out_date")
		}
		checkOut = &t
	}
	if req.Status != nil && !validBookingStatuses[*req.Status] {
		return fail(c, http.StatusBadRequest, "invalid booking status")
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

	current, err := h.Bookings.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		return storeError(c, err, "")
	}

	if req.CustomerID != nil {
		exists, err := h.Customers.ExistsTx(ctx, tx, *req.CustomerID)
		if err != nil {
			return failServer(c, err)
		}
		if !exists {
			return fail(c, http.StatusBadRequest, "customer not found")
		}
	}

	effectiveIn, effectiveOut := current.CheckInDate, current.CheckOutDate
	if checkIn != nil {
		effectiveIn = *checkIn
	}
	if checkOut != nil {
		effectiveOut = *checkOut
	}
	if !effectiveOut.After(effectiveIn) {
		return fail(c, http.StatusBadRequest, "check_out_date must be after check_in_date")
	}

	if err := h.Bookings.UpdateFieldsTx(ctx, tx, id, req.CustomerID, checkIn, checkOut, req.Status, req.SpecialRequests); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return fail(c, http.StatusBadRequest, "customer not found")
		}
		return storeError(c, err, "")
	}

	var prices []float64
	if req.RoomIDs != nil {
		// Replace the room set. Unknown IDs are skipped rather than failing
		// the update; prices are snapshotted fresh for the new set.
		if err := h.Bookings.ClearRoomsTx(ctx, tx, id); err != nil {
			return failServer(c, err)
		}
		roomIDs := dedupeIDs(req.RoomIDs)
		rooms, err := h.Rooms.GetByIDsTx(ctx, tx, roomIDs)
		if err != nil {
			return failServer(c, err)
		}
		for _, roomID := range roomIDs {
			rm, found := rooms[roomID]
			if !found {
				continue
			}
			if err := h.Bookings.AddRoomTx(ctx, tx, id, roomID, rm.PricePerNight); err != nil {
				return storeError(c, err, "room already assigned to this booking")
			}
			prices = append(prices, rm.PricePerNight)
		}
	} else {
		snapshots, err := h.Bookings.SnapshotsTx(ctx, tx, id)
		if err != nil {
			return failServer(c, err)
		}
		for _, s := range snapshots {
			prices = append(prices, s.PricePerNight)
		}
	}

	total := pricing.Total(pricing.Nights(effectiveIn, effectiveOut), prices)
	if err := h.Bookings.SetTotalTx(ctx, tx, id, total); err != nil {
		return failServer(c, err)
	}
	if err := tx.Commit(); err != nil {
		return failServer(c, err)
	}
	committed = true

	updated, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err, "")
	}
	return okMessage(c, http.StatusOK, "booking updated", updated)
}

// Delete handles DELETE /api/bookings/:id. Assignments cascade away with the
// booking; an existing payment blocks the delete.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Bookings.Delete(c.Request().Context(), id); err != nil {
		return storeError(c, err, "booking has a payment")
	}
	return okMessage(c, http.StatusOK, "booking deleted", nil)
}

// AssignRoom handles POST /api/bookings/:bookingId/rooms/:roomId: snapshot
// the room's current price, add it to the set and recompute the total.
func (h *BookingHandler) AssignRoom(c echo.Context) error {
	bookingID, okID := pathID(c, "bookingId")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	roomID, okID := pathID(c, "roomId")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
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

	booking, err := h.Bookings.GetForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return storeError(c, err, "")
	}
	rooms, err := h.Rooms.GetByIDsTx(ctx, tx, []int64{roomID})
	if err != nil {
		return failServer(c, err)
	}
	rm, found := rooms[roomID]
	if !found {
		return fail(c, http.StatusNotFound, "room not found")
	}
	if err := h.Bookings.AddRoomTx(ctx, tx, bookingID, roomID, rm.PricePerNight); err != nil {
		return storeError(c, err, "room already assigned to this booking")
	}
	if err := h.recomputeTotalTx(ctx, tx, booking); err != nil {
		return failServer(c, err)
	}
	if err := tx.Commit(); err != nil {
		return failServer(c, err)
	}
	committed = true

	updated, err := h.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return storeError(c, err, "")
	}
	return okMessage(c, http.StatusCreated, "room assigned to booking", updated)
}

// RemoveRoom handles DELETE /api/bookings/:bookingId/rooms/:roomId and
// recomputes the total from the snapshots that remain.
func (h *BookingHandler) RemoveRoom(c echo.Context) error {
	bookingID, okID := pathID(c, "bookingId")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	roomID, okID := pathID(c, "roomId")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
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

	booking, err := h.Bookings.GetForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return storeError(c, err, "")
	}
	if err := h.Bookings.RemoveRoomTx(ctx, tx, bookingID, roomID); err != nil {
		return storeError(c, err, "")
	}
	if err := h.recomputeTotalTx(ctx, tx, booking); err != nil {
		return failServer(c, err)
	}
	if err := tx.Commit(); err != nil {
		return failServer(c, err)
	}
	committed = true

	updated, err := h.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return storeError(c, err, "")
	}
	return okMessage(c, http.StatusOK, "room removed from booking", updated)
}

// recomputeTotalTx rewrites the booking total from its current snapshots
// inside tx.
func (h *BookingHandler) recomputeTotalTx(ctx context.Context, tx *sql.Tx, booking *model.Booking) error {
	snapshots, err := h.Bookings.SnapshotsTx(ctx, tx, booking.ID)
	if err != nil {
		return err
	}
	prices := make([]float64, 0, len(snapshots))
	for _, s := range snapshots {
		prices = append(prices, s.PricePerNight)
	}
	total := pricing.Total(pricing.Nights(booking.CheckInDate, booking.CheckOutDate), prices)
	return h.Bookings.SetTotalTx(ctx, tx, booking.ID, total)
}
