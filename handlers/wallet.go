package handlers

import (
	"net/http"

	"mentora/services/wallet"
	"mentora/utils"

	"github.com/gin-gonic/gin"
)

// WalletHandler serves ledger summary and history endpoints.
type WalletHandler struct {
	Service wallet.WalletService
}

func NewWalletHandler(svc wallet.WalletService) *WalletHandler {
	return &WalletHandler{Service: svc}
}

func (h *WalletHandler) WalletSummaryHandler(c *gin.Context) {
	ownerType := c.Param("ownerType")
	ownerID := c.Param("ownerId")
	if ownerType == "" || ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing owner type or owner ID in path"})
		return
	}

	summary, err := h.Service.Summary(c.Request.Context(), ownerID, ownerType)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *WalletHandler) WalletTransactionsHandler(c *gin.Context) {
	ownerType := c.Param("ownerType")
	ownerID := c.Param("ownerId")
	if ownerType == "" || ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing owner type or owner ID in path"})
		return
	}

	txns, err := h.Service.Transactions(c.Request.Context(), ownerID, ownerType)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}
