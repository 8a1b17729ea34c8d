package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves the root banner and the health probe.
type HealthHandler struct {
	DB *sql.DB
}

// NewHealthHandler creates a new HealthHandler instance.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{DB: db}
}

// Root answers GET / with a service banner and an endpoint index.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "hotel-management-api",
		"status":  "running",
		"endpoints": map[string]string{
			"room_types": "/api/roomtypes",
			"rooms":      "/api/rooms",
			"customers":  "/api/customers",
			"bookings":   "/api/bookings",
			"payments":   "/api/payments",
			"reviews":    "/api/reviews",
			"health":     "/health",
		},
	})
}

// Health answers GET /health. A failing database ping degrades the report
// but still answers 200 so load balancers can distinguish "up but db down"
// from "down".
func (h *HealthHandler) Health(c echo.Context) error {
	dbStatus := "up"
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		if err := h.DB.PingContext(ctx); err != nil {
			dbStatus = "down"
		}
		cancel()
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "OK",
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
