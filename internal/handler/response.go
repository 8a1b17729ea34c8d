package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nartchai/hotel-management-api/internal/repository"
)

// Envelope is the uniform response shape of every endpoint. Success carries
// data and optionally a count; Message is the human-readable text on both
// success and failure. Error carries the raw store error and only appears on
// server failures.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ok writes a success envelope with data.
func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// okMessage writes a success envelope with data and a human message.
func okMessage(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// okList writes a success envelope for a collection, including its count.
func okList[T any](c echo.Context, items []T) error {
	n := len(items)
	return c.JSON(http.StatusOK, Envelope{Success: true, Count: &n, Data: items})
}

// fail writes a failure envelope with a human-readable message.
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Success: false, Message: msg})
}

// failServer writes a 500 envelope: a generic message plus the raw error.
func failServer(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Message: "Server error",
		Error:   err.Error(),
	})
}

// storeError maps repository errors to HTTP responses: not-found sentinels
// become 404, conflicts 400, anything else a 500 carrying the raw error.
func storeError(c echo.Context, err error, conflictMsg string) error {
	switch {
	case errors.Is(err, repository.ErrRoomTypeNotFound),
		errors.Is(err, repository.ErrRoomNotFound),
		errors.Is(err, repository.ErrCustomerNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrPaymentNotFound),
		errors.Is(err, repository.ErrReviewNotFound):
		return fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrConflict):
		return fail(c, http.StatusBadRequest, conflictMsg)
	}
	return failServer(c, err)
}

// parseID converts a string to a positive int64 ID.
func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// pathID parses the named path parameter as a positive integer ID. Callers
// answer a 400 envelope when ok is false.
func pathID(c echo.Context, name string) (int64, bool) {
	return parseID(c.Param(name))
}
