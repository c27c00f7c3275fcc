package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	BaseHandler
	analytics services.AnalyticsService
	export    services.ExportService
}

func NewAnalyticsHandler(analytics services.AnalyticsService, export services.ExportService, logger utils.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler: NewBaseHandler(logger),
		analytics:   analytics,
		export:      export,
	}
}

// GetQuizAnalytics handles GET /quizzes/:id/analytics
func (h *AnalyticsHandler) GetQuizAnalytics(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	quizID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.analytics.GetQuizAnalytics(c.Request.Context(), quizID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExportQuizAnalytics handles GET /quizzes/:id/analytics/export
func (h *AnalyticsHandler) ExportQuizAnalytics(c *gin.Context) {
	userID, ok := h.requireUserID(c)
	if !ok {
		return
	}
	quizID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting quiz analytics", "quiz_id", quizID)

	result, err := h.export.ExportAnalytics(c.Request.Context(), quizID, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
