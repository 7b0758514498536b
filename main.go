package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-munich-backend/config"
	"hotel-munich-backend/controllers"
	"hotel-munich-backend/events"
	"hotel-munich-backend/routes"
	"hotel-munich-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-change-me"
		log.Println("⚠️  JWT_SECRET not set, using an insecure development secret")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Optional event publisher; the API runs fine without a broker.
	var publisher *events.Publisher
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		p, err := events.NewPublisher(amqpURL, "reservation.events")
		if err != nil {
			log.Printf("⚠️  AMQP connect failed, events disabled: %v", err)
		} else {
			publisher = p
			defer publisher.Close()
			log.Println("✅ AMQP event publisher connected.")
		}
	}

	// Initialize services
	reservationService := services.NewReservationService(db, publisher)
	occupancyService := services.NewOccupancyService(db)
	guestService := services.NewGuestService(db)
	roomService := services.NewRoomService(db)
	authService := services.NewAuthService(db)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, jwtSecret)
	roomController := controllers.NewRoomController(roomService, occupancyService)
	reservationController := controllers.NewReservationController(reservationService, occupancyService)
	calendarController := controllers.NewCalendarController(occupancyService)
	guestController := controllers.NewGuestController(guestService)

	// Build router
	router := routes.SetupRouter(
		authController,
		roomController,
		reservationController,
		calendarController,
		guestController,
		jwtSecret,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
