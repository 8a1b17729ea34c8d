package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nartchai/hotel-management-api/internal/config"
	"github.com/nartchai/hotel-management-api/internal/database"
	"github.com/nartchai/hotel-management-api/internal/handler"
	"github.com/nartchai/hotel-management-api/internal/queue"
	"github.com/nartchai/hotel-management-api/internal/repository"
	"github.com/nartchai/hotel-management-api/internal/router"
	"github.com/nartchai/hotel-management-api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	schemaCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(schemaCtx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	roomTypes := repository.NewRoomTypeRepository(db)
	rooms := repository.NewRoomRepository(db)
	customers := repository.NewCustomerRepository(db)
	bookings := repository.NewBookingRepository(db)
	payments := repository.NewPaymentRepository(db)
	reviews := repository.NewReviewRepository(db)

	// RabbitMQ is optional: without it the API runs, it just publishes no
	// confirmation events.
	var publisher *service.QueuePublisher
	amqpURL := os.Getenv("RABBITMQ_URL")
	if amqpURL != "" {
		publisher, err = service.NewQueuePublisher(amqpURL)
		if err != nil {
			log.Printf("rabbitmq unavailable, continuing without events: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	h := router.Handlers{
		Health:    handler.NewHealthHandler(db),
		RoomTypes: handler.NewRoomTypeHandler(roomTypes, rooms),
		Rooms:     handler.NewRoomHandler(rooms, bookings, reviews),
		Customers: handler.NewCustomerHandler(customers, bookings, reviews),
		Bookings:  handler.NewBookingHandler(db, bookings, rooms, customers),
		Payments:  handler.NewPaymentHandler(db, payments, bookings, publisher),
		Reviews:   handler.NewReviewHandler(reviews, rooms, customers),
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}
	e := router.New(h, rdb, config.LoadRateLimitConfig())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if publisher != nil {
		logPath := os.Getenv("BOOKING_LOG_PATH")
		if logPath == "" {
			logPath = "logs/booking.log"
		}
		if err := os.MkdirAll("logs", 0o755); err != nil {
			log.Printf("create logs dir: %v", err)
		}
		consumer := queue.NewConsumer(amqpURL, logPath)
		go consumer.Run(ctx)
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
