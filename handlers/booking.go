package handlers

import (
	"net/http"

	"mentora/models"
	"mentora/services/booking"
	"mentora/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves availability and checkout endpoints.
type BookingHandler struct {
	Availability booking.AvailabilityService
	Checkout     booking.CheckoutService
}

func NewBookingHandler(availability booking.AvailabilityService, checkout booking.CheckoutService) *BookingHandler {
	return &BookingHandler{Availability: availability, Checkout: checkout}
}

func (h *BookingHandler) AvailableSlotsHandler(c *gin.Context) {
	providerID := c.Param("providerId")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider ID in path"})
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date query parameter"})
		return
	}

	result, err := h.Availability.AvailableSlots(c.Request.Context(), providerID, date)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) CreateCheckoutHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid checkout request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	result, err := h.Checkout.CreateCheckout(c.Request.Context(), req)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) ReceiptHandler(c *gin.Context) {
	sessionID := c.Param("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session ID in path"})
		return
	}

	receipt, err := h.Checkout.GetReceipt(c.Request.Context(), sessionID)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}
