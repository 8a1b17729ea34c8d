package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nartchai/hotel-management-api/internal/model"
	"github.com/nartchai/hotel-management-api/internal/repository"
)

// ReviewHandler serves review CRUD.
type ReviewHandler struct {
	Reviews   *repository.ReviewRepository
	Rooms     *repository.RoomRepository
	Customers *repository.CustomerRepository
}

// NewReviewHandler creates a new ReviewHandler instance.
func NewReviewHandler(reviews *repository.ReviewRepository, rooms *repository.RoomRepository, customers *repository.CustomerRepository) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews, Rooms: rooms, Customers: customers}
}

type createReviewRequest struct {
	RoomID     int64  `json:"room_id"`
	CustomerID int64  `json:"customer_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

type updateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// List handles GET /api/reviews. An optional roomId query parameter filters
// by room.
func (h *ReviewHandler) List(c echo.Context) error {
	if roomParam := c.QueryParam("roomId"); roomParam != "" {
		roomID, ok := parseID(roomParam)
		if !ok {
			return fail(c, http.StatusBadRequest, "invalid id")
		}
		reviews, err := h.Reviews.GetByRoom(c.Request().Context(), roomID)
		if err != nil {
			return storeError(c, err, "")
		}
		return okList(c, reviews)
	}
	reviews, err := h.Reviews.GetAll(c.Request().Context())
	if err != nil {
		return storeError(c, err, "")
	}
	return okList(c, reviews)
}

// Get handles GET /api/reviews/:id.
func (h *ReviewHandler) Get(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	rv, err := h.Reviews.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	return ok(c, http.StatusOK, rv)
}

// CreateForRoom handles POST /api/rooms/:roomId/reviews. The room comes
// from the path, the customer from the body.
func (h *ReviewHandler) CreateForRoom(c echo.Context) error {
	roomID, okID := pathID(c, "roomId")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.RoomID = roomID
	return h.create(c, req)
}

// Create handles POST /api/reviews with both IDs in the body.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	return h.create(c, req)
}

func (h *ReviewHandler) create(c echo.Context, req createReviewRequest) error {
	if req.RoomID <= 0 {
		return fail(c, http.StatusBadRequest, "room_id is required")
	}
	if req.CustomerID <= 0 {
		return fail(c, http.StatusBadRequest, "customer_id is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return fail(c, http.StatusBadRequest, "rating must be between 1 and 5")
	}

	ctx := c.Request().Context()
	if _, err := h.Rooms.GetByID(ctx, req.RoomID); err != nil {
		return storeError(c, err, "")
	}
	// An unknown customer is a bad reference in the request body, not a
	// missing resource.
	if _, err := h.Customers.GetByID(ctx, req.CustomerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return fail(c, http.StatusBadRequest, "customer not found")
		}
		return storeError(c, err, "")
	}

	rv := &model.Review{
		RoomID:     req.RoomID,
		CustomerID: req.CustomerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	id, err := h.Reviews.Create(ctx, rv)
	if err != nil {
		return storeError(c, err, "")
	}
	created, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		return storeError(c, err, "")
	}
	return okMessage(c, http.StatusCreated, "review created", created)
}

// Update handles PUT /api/reviews/:id.
func (h *ReviewHandler) Update(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req updateReviewRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return fail(c, http.StatusBadRequest, "rating must be between 1 and 5")
	}

	rv, err := h.Reviews.Update(c.Request().Context(), id, req.Rating, req.Comment)
	if err != nil {
		return storeError(c, err, "")
	}
	return okMessage(c, http.StatusOK, "review updated", rv)
}

// Delete handles DELETE /api/reviews/:id.
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Reviews.Delete(c.Request().Context(), id); err != nil {
		return storeError(c, err, "")
	}
	return okMessage(c, http.StatusOK, "review deleted", nil)
}
