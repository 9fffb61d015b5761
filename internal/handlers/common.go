package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khelsetu/assessment-service/internal/engine"
	"github.com/khelsetu/assessment-service/internal/services"
	"github.com/khelsetu/assessment-service/internal/storage"
)

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse is the uniform success payload.
type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrTestNotFound),
		errors.Is(err, services.ErrSportNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrProfileExists),
		errors.Is(err, engine.ErrAttemptInProgress):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
	case errors.Is(err, storage.ErrInvalidRecord):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
	}
}

// HealthCheck reports liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
