package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khelsetu/assessment-service/internal/catalog"
	"github.com/khelsetu/assessment-service/internal/services"
)

type ProfileHandler struct {
	profiles *services.ProfileService
	logger   *slog.Logger
}

func NewProfileHandler(profiles *services.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

type CreateProfileBody struct {
	ID string `json:"id" binding:"required"`
	services.CreateProfileRequest
}

func (h *ProfileHandler) Create(c *gin.Context) {
	var body CreateProfileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body", Details: err.Error()})
		return
	}

	profile, err := h.profiles.Create(c.Request.Context(), body.ID, &body.CreateProfileRequest)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, SuccessResponse{Data: profile})
}

func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: profile})
}

func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profiles.Reset(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "profile reset"})
}

func (h *ProfileHandler) Challenges(c *gin.Context) {
	quests, err := h.profiles.Challenges(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: quests})
}

func (h *ProfileHandler) History(c *gin.Context) {
	attempts, err := h.profiles.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: attempts})
}

// Catalog endpoints live here too; they are static reads.

func (h *ProfileHandler) Sports(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{Data: catalog.Sports()})
}

func (h *ProfileHandler) Tests(c *gin.Context) {
	sportID := c.Query("sport_id")
	if sportID == "" {
		c.JSON(http.StatusOK, SuccessResponse{Data: catalog.AllTests()})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: catalog.TestsForSport(sportID)})
}
