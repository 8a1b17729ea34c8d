package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nartchai/hotel-management-api/internal/model"
	"github.com/nartchai/hotel-management-api/internal/repository"
)

// CustomerHandler serves CRUD over customers plus the per-customer booking
// and review listings.
type CustomerHandler struct {
	Customers *repository.CustomerRepository
	Bookings  *repository.BookingRepository
	Reviews   *repository.ReviewRepository
}

// NewCustomerHandler creates a new CustomerHandler instance.
func NewCustomerHandler(customers *repository.CustomerRepository, bookings *repository.BookingRepository, reviews *repository.ReviewRepository) *CustomerHandler {
	return &CustomerHandler{Customers: customers, Bookings: bookings, Reviews: reviews}
}

type createCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	IDType    string `json:"id_type"`
	IDNumber  string `json:"id_number"`
}

type updateCustomerRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	IDType    *string `json:"id_type"`
	IDNumber  *string `json:"id_number"`
}

// List handles GET /api/customers.
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.Customers.GetAll(c.Request().Context())
	if err != nil {
		return storeError(c, err, "")
	}
	return okList(c, customers)
}

// Get handles GET /api/customers/:id.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	cust, err := h.Customers.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	return ok(c, http.StatusOK, cust)
}

// Create handles POST /api/customers.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	if req.FirstName == "" || req.LastName == "" {
		return fail(c, http.StatusBadRequest, "first_name and last_name are required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return fail(c, http.StatusBadRequest, "a valid email is required")
	}

	cust := &model.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		IDType:    req.IDType,
		IDNumber:  req.IDNumber,
	}
	id, err := h.Customers.Create(c.Request().Context(), cust)
	if err != nil {
		return storeError(c, err, "email already exists")
	}
	created, err := h.Customers.GetByID(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	return okMessage(c, http.StatusCreated, "customer created", created)
}

// Update handles PUT /api/customers/:id. Absent fields keep their values.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	var req updateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		return fail(c, http.StatusBadRequest, "a valid email is required")
	}

	cust, err := h.Customers.Update(c.Request().Context(), id,
		req.FirstName, req.LastName, req.Email, req.Phone, req.Address, req.IDType, req.IDNumber)
	if err != nil {
		return storeError(c, err, "email already exists")
	}
	return okMessage(c, http.StatusOK, "customer updated", cust)
}

// Delete handles DELETE /api/customers/:id.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.Customers.Delete(c.Request().Context(), id); err != nil {
		return storeError(c, err, "customer has bookings or reviews")
	}
	return okMessage(c, http.StatusOK, "customer deleted", nil)
}

// CustomerBookings handles GET /api/customers/:id/bookings.
func (h *CustomerHandler) CustomerBookings(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if _, err := h.Customers.GetByID(c.Request().Context(), id); err != nil {
		return storeError(c, err, "")
	}
	bookings, err := h.Bookings.GetByCustomer(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	return okList(c, bookings)
}

// CustomerReviews handles GET /api/customers/:id/reviews.
func (h *CustomerHandler) CustomerReviews(c echo.Context) error {
	id, okID := pathID(c, "id")
	if !okID {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if _, err := h.Customers.GetByID(c.Request().Context(), id); err != nil {
		return storeError(c, err, "")
	}
	reviews, err := h.Reviews.GetByCustomer(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "")
	}
	return okList(c, reviews)
}
