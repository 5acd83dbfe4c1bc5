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

	"boardroom-backend/config"
	"boardroom-backend/controllers"
	"boardroom-backend/routes"
	"boardroom-backend/services"
	"boardroom-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	// Session tokens are signed with this; refuse to boot without it.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("ERROR: JWT_SECRET environment variable is not set. Cannot issue session tokens.")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established and migrations applied")

	// Initialize services
	conflictService := services.NewConflictService(db)
	ledgerService := services.NewLedgerService(db)
	settingsService := services.NewSettingsService(db)
	bookingService := services.NewBookingService(db, conflictService, ledgerService)
	availabilityService := services.NewAvailabilityService(db, conflictService, settingsService)
	paymentService := services.NewPaymentService(db,
		utils.EnvOrDefault("PAYMENT_MERCHANT_ID", "boardroom-dev"),
		utils.EnvOrDefault("PAYMENT_SECRET", "dev-secret"),
	)

	// Initialize controllers
	bookingController := controllers.NewBookingController(bookingService)
	availabilityController := controllers.NewAvailabilityController(availabilityService)
	userController := controllers.NewUserController(ledgerService)
	settingsController := controllers.NewSettingsController(settingsService)
	paymentController := controllers.NewPaymentController(paymentService)

	// Build router
	router := routes.SetupRouter(
		bookingController,
		availabilityController,
		userController,
		settingsController,
		paymentController,
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
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
