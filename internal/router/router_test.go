package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nartchai/hotel-management-api/internal/config"
	"github.com/nartchai/hotel-management-api/internal/handler"
)

func newTestRouter() http.Handler {
	return New(Handlers{
		Health:    handler.NewHealthHandler(nil),
		RoomTypes: &handler.RoomTypeHandler{},
		Rooms:     &handler.RoomHandler{},
		Customers: &handler.CustomerHandler{},
		Bookings:  &handler.BookingHandler{},
		Payments:  &handler.PaymentHandler{},
		Reviews:   &handler.ReviewHandler{},
	}, nil, config.RateLimitConfig{})
}

func TestRootBannerListsEndpoints(t *testing.T) {
	e := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var banner map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &banner))
	assert.Equal(t, "hotel-management-api", banner["service"])
	assert.Equal(t, "running", banner["status"])

	endpoints, isMap := banner["endpoints"].(map[string]any)
	require.True(t, isMap)
	assert.Equal(t, "/api/bookings", endpoints["bookings"])
	assert.Equal(t, "/health", endpoints["health"])
}

func TestHealthReportsStatusAndTimestamp(t *testing.T) {
	e := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestInvalidPathIDUsesEnvelope(t *testing.T) {
	e := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var env handler.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "invalid id", env.Message)
	assert.Empty(t, env.Error)
}

func TestUnknownRouteIs404(t *testing.T) {
	e := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
