package handlers

import (
	"net/http"

	"mentora/models"
	"mentora/services/booking"
	"mentora/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler receives signed events from the payment gateway.
type WebhookHandler struct {
	Fulfillment booking.FulfillmentService
}

func NewWebhookHandler(fulfillment booking.FulfillmentService) *WebhookHandler {
	return &WebhookHandler{Fulfillment: fulfillment}
}

// PaymentEventHandler verifies and processes one gateway delivery. A bad
// signature gets an opaque 400; transient failures get a 5xx so the
// gateway redelivers, which is safe because fulfillment is idempotent.
func (h *WebhookHandler) PaymentEventHandler(c *gin.Context) {
	logger := utils.GetLogger()

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	signature := c.GetHeader("Stripe-Signature")

	if err := h.Fulfillment.HandlePaymentEvent(c.Request.Context(), payload, signature); err != nil {
		if models.ErrorCode(err) == models.CodeSecurity {
			logger.Warn("rejected webhook with bad signature", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		utils.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
