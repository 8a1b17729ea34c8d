package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nartchai/hotel-management-api/internal/model"
	"github.com/nartchai/hotel-management-api/internal/repository"
)

// RoomTypeHandler serves CRUD over room types plus the per-type room
// listing.
type RoomTypeHandler struct {
	RoomTypes *repository.RoomTypeRepository
	Rooms     *repository.RoomRepository
}

// NewRoomTypeHandler creates a new RoomTypeHandler instance.
func NewRoomTypeHandler(roomTypes *repository.RoomTypeRepository, rooms *repository.RoomRepository) *RoomTypeHandler {
	return &RoomTypeHandler{RoomTypes: roomTypes, Rooms: rooms}
}

type createRoomTypeRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	BasePrice    float64  `json:"base_price"`
	MaxOccupancy int      `json:"max_occupancy"`
	Amenities    []string `json:"amenities"`
}

type updateRoomTypeRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	BasePrice    *float64 `json:"base_price"`
	MaxOccupancy *int     `json:"max_occupancy"`
	Amenities    []string `json:"amenities"`
}

// List handles GET /api/roomtypes.
func (h *RoomTypeHandler) List(c echo.Context) error {
	types, err := h.RoomTypes.GetAll(c.Request().Context())
	if err != nil {
		return storeError(c, err, "")
	}
	return okList(c, types)
}

// Get handles GET /api/roomtypes/:id.
func (h *RoomTypeHandler) Get(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	rt, err := h.RoomTypes.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	return ok(c, http.StatusOK, rt)
}

// Create handles POST /api/roomtypes.
func (h *RoomTypeHandler) Create(c echo.Context) error {
	var req createRoomTypeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return fail(c, http.StatusBadRequest, "name is required")
	}
	if req.BasePrice < 0 {
		return fail(c, http.StatusBadRequest, "base_price must not be negative")
	}
	if req.MaxOccupancy <= 0 {
		req.MaxOccupancy = 2
	}
	if req.Amenities == nil {
		req.Amenities = []string{}
	}

	rt := &model.RoomType{
		Name:         req.Name,
		Description:  req.Description,
		BasePrice:    req.BasePrice,
		MaxOccupancy: req.MaxOccupancy,
		Amenities:    req.Amenities,
	}
	id, err := h.RoomTypes.Create(c.Request().Context(), rt)
	if err != nil {
		return storeError(c, err, "room type name already exists")
	}
	created, err := h.RoomTypes.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	return okMessage(c, http.StatusCreated, "room type created", created)
}

// Update handles PUT /api/roomtypes/:id. Absent fields keep their values.
func (h *RoomTypeHandler) Update(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req updateRoomTypeRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.BasePrice != nil && *req.BasePrice < 0 {
		return fail(c, http.StatusBadRequest, "base_price must not be negative")
	}
	if req.MaxOccupancy != nil && *req.MaxOccupancy <= 0 {
		return fail(c, http.StatusBadRequest, "max_occupancy must be positive")
	}

	rt, err := h.RoomTypes.Update(c.Request().Context(), id, req.Name, req.Description, req.BasePrice, req.MaxOccupancy, req.Amenities)
	if err != nil {
		return storeError(c, err, "room type name already exists")
	}
	return okMessage(c, http.StatusOK, "room type updated", rt)
}

// Delete handles DELETE /api/roomtypes/:id, echoing the deleted record.
func (h *RoomTypeHandler) Delete(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	rt, err := h.RoomTypes.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	if err := h.RoomTypes.Delete(c.Request().Context(), id); err != nil {
		return storeError(c, err, "room type is in use by existing rooms")
	}
	return okMessage(c, http.StatusOK, "room type deleted", rt)
}

// RoomsOfType handles GET /api/roomtypes/:id/rooms.
func (h *RoomTypeHandler) RoomsOfType(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if _, err := h.RoomTypes.GetByID(c.Request().Context(), id); err != nil {
		return storeError(c, err, "")
	}
	rooms, err := h.Rooms.GetByType(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	return okList(c, rooms)
}
