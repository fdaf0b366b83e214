package utils

import (
	"net/http"

	"mentora/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondServiceError maps a service error code onto an HTTP status.
// Security failures get an opaque body so a forged webhook learns nothing.
func RespondServiceError(c *gin.Context, err error) {
	switch models.ErrorCode(err) {
	case models.CodeValidation:
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	case models.CodeConflict:
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
	case models.CodeNotFound:
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case models.CodeSecurity:
		GetLogger().Warn("rejected request failing security checks", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request"})
	case models.CodeUnavailable:
		GetLogger().Error("dependency unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: "service temporarily unavailable"})
	default:
		GetLogger().Error("unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
	}
}
