package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/khelsetu/assessment-service/internal/leaderboard"
	"github.com/khelsetu/assessment-service/internal/models"
	"github.com/khelsetu/assessment-service/internal/services"
)

type LeaderboardHandler struct {
	board    *leaderboard.Service
	profiles *services.ProfileService
	logger   *slog.Logger
}

func NewLeaderboardHandler(board *leaderboard.Service, profiles *services.ProfileService, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{board: board, profiles: profiles, logger: logger}
}

// viewer resolves the optional viewer profile from the user_id query
// param. Rival flags are only computed when a viewer is known.
func (h *LeaderboardHandler) viewer(c *gin.Context) *models.UserProfile {
	userID := c.Query("user_id")
	if userID == "" {
		return nil
	}
	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		return nil
	}
	return profile
}

func (h *LeaderboardHandler) Get(c *gin.Context) {
	timeframe := leaderboard.Timeframe(c.DefaultQuery("timeframe", string(leaderboard.TimeframeAllTime)))
	entries, err := h.board.Get(c.Request.Context(), c.Param("sport"), timeframe, h.viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: entries})
}

func (h *LeaderboardHandler) Top(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid limit"})
		return
	}

	entries, err := h.board.TopPlayers(c.Request.Context(), c.Param("sport"), limit, h.viewer(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: entries})
}

func (h *LeaderboardHandler) Rivals(c *gin.Context) {
	viewer := h.viewer(c)
	if viewer == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "user_id is required"})
		return
	}

	entries, err := h.board.Rivals(c.Request.Context(), c.Param("sport"), viewer, 5)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: entries})
}

func (h *LeaderboardHandler) Rank(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "user_id is required"})
		return
	}

	rank, err := h.board.UserRank(c.Request.Context(), c.Param("sport"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: gin.H{"rank": rank}})
}
