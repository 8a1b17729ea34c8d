package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nartchai/hotel-management-api/internal/model"
	"github.com/nartchai/hotel-management-api/internal/repository"
)

// RoomHandler serves CRUD over rooms plus the per-room booking and review
// listings.
type RoomHandler struct {
	Rooms    *repository.RoomRepository
	Bookings *repository.BookingRepository
	Reviews  *repository.ReviewRepository
}

// NewRoomHandler creates a new RoomHandler instance.
func NewRoomHandler(rooms *repository.RoomRepository, bookings *repository.BookingRepository, reviews *repository.ReviewRepository) *RoomHandler {
	return &RoomHandler{Rooms: rooms, Bookings: bookings, Reviews: reviews}
}

var validRoomStatuses = map[string]bool{
	model.RoomStatusAvailable:   true,
	model.RoomStatusOccupied:    true,
	model.RoomStatusMaintenance: true,
}

type createRoomRequest struct {
	RoomNumber    string  `json:"room_number"`
	RoomTypeID    int64   `json:"room_type_id"`
	Floor         int     `json:"floor"`
	Status        string  `json:"status"`
	PricePerNight float64 `json:"price_per_night"`
}

type updateRoomRequest struct {
	RoomNumber    *string  `json:"room_number"`
	RoomTypeID    *int64   `json:"room_type_id"`
	Floor         *int     `json:"floor"`
	Status        *string  `json:"status"`
	PricePerNight *float64 `json:"price_per_night"`
}

// List handles GET /api/rooms.
func (h *RoomHandler) List(c echo.Context) error {
	rooms, err := h.Rooms.GetAll(c.Request().Context())
	if err != nil {
		return storeError(c, err, "")
	}
	return okList(c, rooms)
}

// Get handles GET /api/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	rm, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	return ok(c, http.StatusOK, rm)
}

// Create handles POST /api/rooms.
func (h *RoomHandler) Create(c echo.Context) error {
	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.RoomNumber = strings.TrimSpace(req.RoomNumber)
	if req.RoomNumber == "" {
		return fail(c, http.StatusBadRequest, "room_number is required")
	}
	if req.RoomTypeID <= 0 {
		return fail(c, http.StatusBadRequest, "room_type_id is required")
	}
	if req.PricePerNight < 0 {
		return fail(c, http.StatusBadRequest, "price_per_night must not be negative")
	}
	if req.Status == "" {
		req.Status = model.RoomStatusAvailable
	}
	if !validRoomStatuses[req.Status] {
		return fail(c, http.StatusBadRequest, "invalid room status")
	}

	rm := &model.Room{
		RoomNumber:    req.RoomNumber,
		RoomTypeID:    req.RoomTypeID,
		Floor:         req.Floor,
		Status:        req.Status,
		PricePerNight: req.PricePerNight,
	}
	id, err := h.Rooms.Create(c.Request().Context(), rm)
	if err != nil {
		return storeError(c, err, "room number already exists")
	}
	created, err := h.Rooms.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	return okMessage(c, http.StatusCreated, "room created", created)
}

// Update handles PUT /api/rooms/:id. Absent fields keep their values.
func (h *RoomHandler) Update(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req updateRoomRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.PricePerNight != nil && *req.PricePerNight < 0 {
		return fail(c, http.StatusBadRequest, "price_per_night must not be negative")
	}
	if req.Status != nil && !validRoomStatuses[*req.Status] {
		return fail(c, http.StatusBadRequest, "invalid room status")
	}

	rm, err := h.Rooms.Update(c.Request().Context(), id, req.RoomNumber, req.RoomTypeID, req.Floor, req.Status, req.PricePerNight)
	if err != nil {
		return storeError(c, err, "room number already exists")
	}
	return okMessage(c, http.StatusOK, "room updated", rm)
}

// Delete handles DELETE /api/rooms/:id.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		return storeError(c, err, "room has bookings or reviews")
	}
	return okMessage(c, http.StatusOK, "room deleted", nil)
}

// RoomBookings handles GET /api/rooms/:id/bookings: every booking the room
// is assigned to.
func (h *RoomHandler) RoomBookings(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if _, err := h.Rooms.GetByID(c.Request().Context(), id); err != nil {
		return storeError(c, err, "")
	}
	bookings, err := h.Bookings.GetByRoom(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	return okList(c, bookings)
}

// RoomReviews handles GET /api/rooms/:id/reviews.
func (h *RoomHandler) RoomReviews(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if _, err := h.Rooms.GetByID(c.Request().Context(), id); err != nil {
		return storeError(c, err, "")
	}
	reviews, err := h.Reviews.GetByRoom(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	return okList(c, reviews)
}
