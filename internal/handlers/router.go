package handlers

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/khelsetu/assessment-service/internal/engine"
	"github.com/khelsetu/assessment-service/internal/export"
	"github.com/khelsetu/assessment-service/internal/leaderboard"
	"github.com/khelsetu/assessment-service/internal/services"
)

type HandlerManager struct {
	attemptHandler     *AttemptHandler
	profileHandler     *ProfileHandler
	leaderboardHandler *LeaderboardHandler
	exportHandler      *ExportHandler
}

func NewHandlerManager(
	eng *engine.Engine,
	profiles *services.ProfileService,
	board *leaderboard.Service,
	exporter *export.Service,
	logger *slog.Logger,
) *HandlerManager {
	return &HandlerManager{
		attemptHandler:     NewAttemptHandler(eng, profiles, logger),
		profileHandler:     NewProfileHandler(profiles, logger),
		leaderboardHandler: NewLeaderboardHandler(board, profiles, logger),
		exportHandler:      NewExportHandler(exporter, logger),
	}
}

// SetupRoutes wires all API routes onto the router.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(cors.Default())
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		attempts := v1.Group("/attempts")
		{
			attempts.POST("/start", hm.attemptHandler.Start)
			attempts.POST("/pause", hm.attemptHandler.Pause)
			attempts.POST("/resume", hm.attemptHandler.Resume)
			attempts.POST("/complete", hm.attemptHandler.Complete)
			attempts.POST("/confirm", hm.attemptHandler.Confirm)
			attempts.POST("/cancel", hm.attemptHandler.Cancel)
			attempts.GET("/current", hm.attemptHandler.Current)
		}

		profiles := v1.Group("/profiles")
		{
			profiles.POST("", hm.profileHandler.Create)
			profiles.GET("/:id", hm.profileHandler.Get)
			profiles.DELETE("/:id", hm.profileHandler.Delete)
			profiles.GET("/:id/challenges", hm.profileHandler.Challenges)
			profiles.GET("/:id/history", hm.profileHandler.History)
			profiles.GET("/:id/report.xlsx", hm.exportHandler.Report)
		}

		v1.GET("/sports", hm.profileHandler.Sports)
		v1.GET("/tests", hm.profileHandler.Tests)

		boards := v1.Group("/leaderboards")
		{
			boards.GET("/:sport", hm.leaderboardHandler.Get)
			boards.GET("/:sport/top", hm.leaderboardHandler.Top)
			boards.GET("/:sport/rivals", hm.leaderboardHandler.Rivals)
			boards.GET("/:sport/rank", hm.leaderboardHandler.Rank)
		}
	}
}
