package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khelsetu/assessment-service/internal/export"
)

type ExportHandler struct {
	exporter *export.Service
	logger   *slog.Logger
}

func NewExportHandler(exporter *export.Service, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{exporter: exporter, logger: logger}
}

// Report streams the user's assessment history workbook.
func (h *ExportHandler) Report(c *gin.Context) {
	userID := c.Param("id")

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-assessments.xlsx", userID))

	if err := h.exporter.WriteReport(c.Request.Context(), userID, c.Writer); err != nil {
		h.logger.Error("report export failed", "user_id", userID, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
}
