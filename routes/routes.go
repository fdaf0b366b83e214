package routes

import (
	"net/http"
	"time"

	"mentora/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers schedule and availability endpoints.
func RegisterProviderRoutes(r *gin.Engine, sh *handlers.ScheduleHandler, bh *handlers.BookingHandler) {
	api := r.Group("/api/providers/:providerId")
	{
		api.POST("/schedule", sh.CreateWeeklyScheduleHandler)
		api.GET("/schedule", sh.GetWeeklyScheduleHandler)
		api.PUT("/schedule", sh.UpdateWeeklyScheduleHandler)
		api.GET("/slots", bh.AvailableSlotsHandler)
	}
}

// RegisterCheckoutRoutes registers the checkout and webhook endpoints.
func RegisterCheckoutRoutes(r *gin.Engine, bh *handlers.BookingHandler, wh *handlers.WebhookHandler) {
	api := r.Group("/api")
	{
		api.POST("/checkout", bh.CreateCheckoutHandler)
		api.GET("/checkout/:sessionId/receipt", bh.ReceiptHandler)
		api.POST("/webhooks/stripe", wh.PaymentEventHandler)
	}
}

// RegisterWalletRoutes registers the ledger endpoints.
func RegisterWalletRoutes(r *gin.Engine, wh *handlers.WalletHandler) {
	api := r.Group("/api/wallets/:ownerType/:ownerId")
	{
		api.GET("/summary", wh.WalletSummaryHandler)
		api.GET("/transactions", wh.WalletTransactionsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Mentora"})
	})
}

// CORSMiddleware returns the shared CORS policy.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}
