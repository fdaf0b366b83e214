// File: mentora/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentora/config"
	"mentora/database"
	appointmentRepo "mentora/database/repository/appointment"
	fulfillmentRepo "mentora/database/repository/fulfillment"
	scheduleRepo "mentora/database/repository/schedule"
	walletRepo "mentora/database/repository/wallet"
	"mentora/handlers"
	"mentora/middleware"
	"mentora/routes"
	"mentora/services/booking"
	"mentora/services/schedule"
	"mentora/services/wallet"
	"mentora/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(routes.CORSMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	schedRepo := scheduleRepo.NewMongoScheduleRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	wltRepo := walletRepo.NewMongoWalletRepo()
	claimRepo := fulfillmentRepo.NewMongoFulfillmentRepo()
	for _, ensure := range []func() error{
		schedRepo.EnsureIndexes,
		apptRepo.EnsureIndexes,
		wltRepo.EnsureIndexes,
		claimRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	cacheClient := utils.GetCacheClient()
	gateway := booking.NewStripeGateway(config.AppConfig.StripeWebhookSecret)

	// services.
	scheduleService := &schedule.DefaultScheduleService{
		Repo:  schedRepo,
		Cache: cacheClient,
	}
	availabilityService := &booking.DefaultAvailabilityService{
		ScheduleRepo:    schedRepo,
		AppointmentRepo: apptRepo,
		Cache:           cacheClient,
	}
	checkoutService := &booking.DefaultCheckoutService{
		ScheduleRepo: schedRepo,
		Gateway:      gateway,
	}
	fulfillmentService := &booking.DefaultFulfillmentService{
		Gateway:         gateway,
		WalletRepo:      wltRepo,
		AppointmentRepo: apptRepo,
		ClaimRepo:       claimRepo,
		Cache:           cacheClient,
	}
	walletService := &wallet.DefaultWalletService{
		Repo: wltRepo,
	}

	// handlers.
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	bookingHandler := handlers.NewBookingHandler(availabilityService, checkoutService)
	webhookHandler := handlers.NewWebhookHandler(fulfillmentService)
	walletHandler := handlers.NewWalletHandler(walletService)

	// routes.
	routes.RegisterHealthRoute(router)
	routes.RegisterProviderRoutes(router, scheduleHandler, bookingHandler)
	routes.RegisterCheckoutRoutes(router, bookingHandler, webhookHandler)
	routes.RegisterWalletRoutes(router, walletHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect: %v", err)
	}
	logger.Info("Server exited")
}
