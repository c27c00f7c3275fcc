package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/middleware"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// PublicHandler serves participants who join a quiz by access code.
type PublicHandler struct {
	BaseHandler
	quizzes  services.QuizService
	attempts services.AttemptService
}

func NewPublicHandler(quizzes services.QuizService, attempts services.AttemptService, logger utils.Logger) *PublicHandler {
	return &PublicHandler{
		BaseHandler: NewBaseHandler(logger),
		quizzes:     quizzes,
		attempts:    attempts,
	}
}

func (h *PublicHandler) accessCode(c *gin.Context) (string, bool) {
	code := strings.ToUpper(ParseStringIDParam(c, "code"))
	if code == "" {
		return "", false
	}
	if !utils.IsAccessCode(code) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid access code",
			Details: "access code must be 6 letters or digits",
		})
		return "", false
	}
	return code, true
}

// GetQuiz handles GET /public/quizzes/:code
func (h *PublicHandler) GetQuiz(c *gin.Context) {
	code, ok := h.accessCode(c)
	if !ok {
		return
	}

	quiz, err := h.quizzes.GetByAccessCode(c.Request.Context(), code)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// SubmitAttempt handles POST /public/quizzes/:code/attempts
func (h *PublicHandler) SubmitAttempt(c *gin.Context) {
	code, ok := h.accessCode(c)
	if !ok {
		return
	}

	var req models.AttemptSubmission
	if !h.bindJSON(c, &req) {
		return
	}

	var user *models.AuthUser
	if authUser, found := middleware.GetAuthUser(c); found {
		user = authUser
	}

	h.LogRequest(c, "Submitting attempt", "access_code", code, "answers", len(req.Answers))

	receipt, err := h.attempts.Submit(c.Request.Context(), code, &req, user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}
