// Package router wires every HTTP route to its handler.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/nartchai/hotel-management-api/internal/config"
	"github.com/nartchai/hotel-management-api/internal/handler"
	"github.com/nartchai/hotel-management-api/internal/middleware"
)

// Handlers bundles everything New needs to build the route table.
type Handlers struct {
	Health    *handler.HealthHandler
	RoomTypes *handler.RoomTypeHandler
	Rooms     *handler.RoomHandler
	Customers *handler.CustomerHandler
	Bookings  *handler.BookingHandler
	Payments  *handler.PaymentHandler
	Reviews   *handler.ReviewHandler
}

// New builds the echo instance with recovery, logging, rate limiting and the
// full API surface under /api.
func New(h Handlers, rdb *redis.Client, rl config.RateLimitConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.RateLimit(rdb, rl))

	e.GET("/", h.Health.Root)
	e.GET("/health", h.Health.Health)

	api := e.Group("/api")

	rt := api.Group("/roomtypes")
	rt.GET("", h.RoomTypes.List)
	rt.GET("/:id", h.RoomTypes.Get)
	rt.POST("", h.RoomTypes.Create)
	rt.PUT("/:id", h.RoomTypes.Update)
	rt.DELETE("/:id", h.RoomTypes.Delete)
	rt.GET("/:id/rooms", h.RoomTypes.RoomsOfType)

	rooms := api.Group("/rooms")
	rooms.GET("", h.Rooms.List)
	rooms.GET("/:id", h.Rooms.Get)
	rooms.POST("", h.Rooms.Create)
	rooms.PUT("/:id", h.Rooms.Update)
	rooms.DELETE("/:id", h.Rooms.Delete)
	rooms.GET("/:id/bookings", h.Rooms.RoomBookings)
	rooms.GET("/:id/reviews", h.Rooms.RoomReviews)
	rooms.POST("/:roomId/reviews", h.Reviews.CreateForRoom)

	customers := api.Group("/customers")
	customers.GET("", h.Customers.List)
	customers.GET("/:id", h.Customers.Get)
	customers.POST("", h.Customers.Create)
	customers.PUT("/:id", h.Customers.Update)
	customers.DELETE("/:id", h.Customers.Delete)
	customers.GET("/:id/bookings", h.Customers.CustomerBookings)
	customers.GET("/:id/reviews", h.Customers.CustomerReviews)

	bookings := api.Group("/bookings")
	bookings.GET("", h.Bookings.List)
	bookings.GET("/:id", h.Bookings.Get)
	bookings.POST("", h.Bookings.Create)
	bookings.PUT("/:id", h.Bookings.Update)
	bookings.DELETE("/:id", h.Bookings.Delete)
	bookings.POST("/:bookingId/rooms/:roomId", h.Bookings.AssignRoom)
	bookings.DELETE("/:bookingId/rooms/:roomId", h.Bookings.RemoveRoom)
	bookings.GET("/:bookingId/payment", h.Payments.GetByBooking)
	bookings.POST("/:bookingId/payment", h.Payments.CreateForBooking)

	payments := api.Group("/payments")
	payments.GET("", h.Payments.List)
	payments.GET("/:id", h.Payments.Get)
	payments.GET("/:id/booking", h.Payments.BookingForPayment)
	payments.POST("", h.Payments.Create)
	payments.PUT("/:id", h.Payments.Update)
	payments.DELETE("/:id", h.Payments.Delete)

	reviews := api.Group("/reviews")
	reviews.GET("", h.Reviews.List)
	reviews.GET("/:id", h.Reviews.Get)
	reviews.POST("", h.Reviews.Create)
	reviews.PUT("/:id", h.Reviews.Update)
	reviews.DELETE("/:id", h.Reviews.Delete)

	return e
}
