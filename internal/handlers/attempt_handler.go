package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khelsetu/assessment-service/internal/catalog"
	"github.com/khelsetu/assessment-service/internal/engine"
	"github.com/khelsetu/assessment-service/internal/services"
)

// AttemptHandler exposes the attempt lifecycle over HTTP. The handlers
// are thin adapters; all transition rules live in the engine.
type AttemptHandler struct {
	engine   *engine.Engine
	profiles *services.ProfileService
	logger   *slog.Logger
}

func NewAttemptHandler(eng *engine.Engine, profiles *services.ProfileService, logger *slog.Logger) *AttemptHandler {
	return &AttemptHandler{engine: eng, profiles: profiles, logger: logger}
}

type StartAttemptRequest struct {
	TestID string `json:"test_id" binding:"required"`
	UserID string `json:"user_id" binding:"required"`
}

func (h *AttemptHandler) Start(c *gin.Context) {
	var req StartAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	spec := catalog.TestSpec(req.TestID)
	if spec == nil {
		respondError(c, fmt.Errorf("%w: %s", services.ErrTestNotFound, req.TestID))
		return
	}

	attempt, err := h.engine.Start(c.Request.Context(), req.TestID, req.UserID, spec)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Data: attempt})
}

func (h *AttemptHandler) Pause(c *gin.Context) {
	if err := h.engine.Pause(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: h.engine.CurrentAttempt()})
}

func (h *AttemptHandler) Resume(c *gin.Context) {
	if err := h.engine.Resume(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: h.engine.CurrentAttempt()})
}

type CompleteAttemptRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// Complete finishes the attempt early; the engine also triggers this
// transition itself when the test duration expires.
func (h *AttemptHandler) Complete(c *gin.Context) {
	var req CompleteAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	user, err := h.profiles.Get(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.engine.Complete(c.Request.Context(), user); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: h.engine.CurrentAttempt()})
}

func (h *AttemptHandler) Confirm(c *gin.Context) {
	// Snapshot before confirming; the engine clears the attempt on success.
	attempt := h.engine.CurrentAttempt()
	if err := h.engine.Confirm(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "attempt confirmed", Data: attempt})
}

func (h *AttemptHandler) Cancel(c *gin.Context) {
	if err := h.engine.Cancel(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "attempt cancelled"})
}

func (h *AttemptHandler) Current(c *gin.Context) {
	attempt := h.engine.CurrentAttempt()
	if attempt == nil {
		c.JSON(http.StatusOK, SuccessResponse{Data: nil})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: gin.H{
		"attempt":      attempt,
		"elapsed_ms":   h.engine.Elapsed(),
		"remaining_ms": h.engine.Remaining(),
	}})
}
