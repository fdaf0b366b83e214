package handlers

import (
	"net/http"

	"mentora/models"
	"mentora/services/schedule"
	"mentora/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler serves a provider's weekly template endpoints.
type ScheduleHandler struct {
	Service schedule.ScheduleService
}

func NewScheduleHandler(svc schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

func (h *ScheduleHandler) CreateWeeklyScheduleHandler(c *gin.Context) {
	logger := utils.GetLogger()

	providerID := c.Param("providerId")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider ID in path"})
		return
	}

	var req models.WeeklyScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid schedule create request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	sched, err := h.Service.CreateWeeklySchedule(c.Request.Context(), providerID, req.Days)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Weekly schedule created",
		"schedule": sched,
	})
}

func (h *ScheduleHandler) GetWeeklyScheduleHandler(c *gin.Context) {
	providerID := c.Param("providerId")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider ID in path"})
		return
	}

	sched, err := h.Service.GetWeeklySchedule(c.Request.Context(), providerID)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	// A provider without a schedule is not an error; the client sees null.
	c.JSON(http.StatusOK, gin.H{"schedule": sched})
}

func (h *ScheduleHandler) UpdateWeeklyScheduleHandler(c *gin.Context) {
	logger := utils.GetLogger()

	providerID := c.Param("providerId")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider ID in path"})
		return
	}

	var req models.WeeklyScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid schedule update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	sched, err := h.Service.UpdateWeeklySchedule(c.Request.Context(), providerID, req.Days)
	if err != nil {
		utils.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Weekly schedule updated",
		"schedule": sched,
	})
}
