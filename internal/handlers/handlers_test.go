package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SAP-F-2025/quiz-service/internal/analytics"
	apperrors "github.com/SAP-F-2025/quiz-service/internal/errors"
	"github.com/SAP-F-2025/quiz-service/internal/middleware"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const ownerToken = "owner-token"

var owner = &models.AuthUser{ID: "owner-1", DisplayName: "Owner", Email: "owner@example.com"}

func setupRouter(t *testing.T) (*gin.Engine, *mockServiceManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := utils.NewLogger("test")
	verifier := staticVerifier{ownerToken: owner}
	sm := newMockServiceManager()

	router := gin.New()
	NewHandlerManager(sm, stubHealth{}, logger).SetupRoutes(router, RouteMiddleware{
		Auth:         middleware.RequireAuth(verifier, logger),
		OptionalAuth: middleware.OptionalAuth(verifier),
	})
	return router, sm
}

func perform(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupRouter(t)

	w := perform(router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])

	gin.SetMode(gin.TestMode)
	unhealthy := gin.New()
	NewHandlerManager(newMockServiceManager(), stubHealth{err: errors.New("db down")}, utils.NewLogger("test")).
		SetupRoutes(unhealthy, RouteMiddleware{})
	w = perform(unhealthy, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestQuizRoutes_RequireAuth(t *testing.T) {
	router, sm := setupRouter(t)

	w := perform(router, http.MethodGet, "/api/v1/quizzes", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(router, http.MethodGet, "/api/v1/quizzes", nil, "bogus")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	sm.quiz.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
}

func TestCreateQuiz(t *testing.T) {
	router, sm := setupRouter(t)

	created := &models.Quiz{ID: 3, Title: "Capitals", AccessCode: "AB12CD", CreatedBy: owner.ID}
	sm.quiz.On("Create", mock.Anything, mock.MatchedBy(func(req *services.CreateQuizRequest) bool {
		return req.Title == "Capitals" && len(req.Questions) == 1 && req.Questions[0].Correct.Matches(1)
	}), owner.ID).Return(created, nil)

	w := perform(router, http.MethodPost, "/api/v1/quizzes", map[string]interface{}{
		"title": "Capitals",
		"questions": []map[string]interface{}{
			{"question": "Capital of France?", "options": []string{"Berlin", "Paris"}, "correct": "1"},
		},
	}, ownerToken)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "AB12CD", body["access_code"])
	sm.quiz.AssertExpectations(t)
}

func TestCreateQuiz_InvalidJSON(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quizzes", bytes.NewBufferString("{not json"))
	req.Header.Set("Authorization", "Bearer "+ownerToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request payload", decode(t, w)["message"])
}

func TestCreateQuiz_ValidationErrors(t *testing.T) {
	router, sm := setupRouter(t)

	var errs apperrors.ValidationErrors
	errs.Add("title", "title is required", "required", "")
	sm.quiz.On("Create", mock.Anything, mock.Anything, owner.ID).Return(nil, errs)

	w := perform(router, http.MethodPost, "/api/v1/quizzes", map[string]interface{}{"title": ""}, ownerToken)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Validation failed", body["message"])
	details, ok := body["details"].([]interface{})
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Equal(t, "title", details[0].(map[string]interface{})["field"])
}

func TestGenerateQuiz(t *testing.T) {
	router, sm := setupRouter(t)

	resp := &services.GenerateQuizResponse{
		Quiz:     &models.Quiz{ID: 9, Title: "Space", TotalQuestions: 3},
		Fallback: true,
	}
	sm.quiz.On("Generate", mock.Anything, mock.MatchedBy(func(req *services.GenerateQuizRequest) bool {
		return req.NumberOfQuestions == 3 && req.Prompt == "planets"
	}), owner.ID).Return(resp, nil)

	w := perform(router, http.MethodPost, "/api/v1/quizzes/generate", map[string]interface{}{
		"title":               "Space",
		"number_of_questions": 3,
		"prompt":              "planets",
	}, ownerToken)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["fallback"])
	assert.Equal(t, false, body["cached"])
}

func TestGenerateQuiz_AccessCodeExhausted(t *testing.T) {
	router, sm := setupRouter(t)
	sm.quiz.On("Generate", mock.Anything, mock.Anything, owner.ID).Return(nil, services.ErrAccessCodeExhausted)

	w := perform(router, http.MethodPost, "/api/v1/quizzes/generate", map[string]interface{}{
		"title": "Space", "number_of_questions": 1, "prompt": "planets",
	}, ownerToken)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListQuizzes(t *testing.T) {
	router, sm := setupRouter(t)
	sm.quiz.On("ListByOwner", mock.Anything, owner.ID).Return([]*models.Quiz{{ID: 1}, {ID: 2}}, nil)

	w := perform(router, http.MethodGet, "/api/v1/quizzes", nil, ownerToken)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decode(t, w)["total"])
}

func TestGetQuiz_Errors(t *testing.T) {
	router, sm := setupRouter(t)

	sm.quiz.On("GetByID", mock.Anything, uint(404), owner.ID).Return(nil, services.ErrQuizNotFound)
	sm.quiz.On("GetByID", mock.Anything, uint(403), owner.ID).
		Return(nil, services.NewPermissionError(owner.ID, 403, "quiz", "read", "not the quiz owner"))
	sm.quiz.On("GetByID", mock.Anything, uint(500), owner.ID).Return(nil, errors.New("connection reset"))

	tests := []struct {
		path string
		want int
	}{
		{path: "/api/v1/quizzes/abc", want: http.StatusBadRequest},
		{path: "/api/v1/quizzes/0", want: http.StatusBadRequest},
		{path: "/api/v1/quizzes/404", want: http.StatusNotFound},
		{path: "/api/v1/quizzes/403", want: http.StatusForbidden},
		{path: "/api/v1/quizzes/500", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := perform(router, http.MethodGet, tt.path, nil, ownerToken)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestUpdateAndDeleteQuiz(t *testing.T) {
	router, sm := setupRouter(t)

	sm.quiz.On("Update", mock.Anything, uint(5), mock.AnythingOfType("*services.UpdateQuizRequest"), owner.ID).
		Return(&models.Quiz{ID: 5, Title: "Renamed"}, nil)
	sm.quiz.On("Delete", mock.Anything, uint(5), owner.ID).Return(nil)

	w := perform(router, http.MethodPut, "/api/v1/quizzes/5", map[string]interface{}{"title": "Renamed"}, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Renamed", decode(t, w)["title"])

	w = perform(router, http.MethodDelete, "/api/v1/quizzes/5", nil, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Quiz deleted successfully", decode(t, w)["message"])

	sm.quiz.AssertExpectations(t)
}

func TestListQuizAttempts_Page(t *testing.T) {
	router, sm := setupRouter(t)

	page := models.NewPage([]*models.QuizAttempt{{ID: 21}, {ID: 22}}, 2, models.AttemptsPerPage, 22)
	sm.attempt.On("ListByQuiz", mock.Anything, uint(7), owner.ID, 2).Return(page, nil)
	sm.attempt.On("ListByQuiz", mock.Anything, uint(7), owner.ID, 1).Return(models.NewPage[*models.QuizAttempt](nil, 1, models.AttemptsPerPage, 0), nil)

	w := perform(router, http.MethodGet, "/api/v1/quizzes/7/attempts?page=2", nil, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(2), body["total_pages"])
	assert.Len(t, body["items"], 2)

	w = perform(router, http.MethodGet, "/api/v1/quizzes/7/attempts?page=x", nil, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, decode(t, w)["items"])
}

func TestGetQuizAnalytics(t *testing.T) {
	router, sm := setupRouter(t)

	sm.analytics.On("GetQuizAnalytics", mock.Anything, uint(4), owner.ID).Return(&services.AnalyticsResponse{
		QuizID: 4,
		Cached: true,
		Data:   &analytics.Snapshot{QuizTitle: "Capitals", TotalAttempts: 2, AveragePercentage: 75},
	}, nil)

	w := perform(router, http.MethodGet, "/api/v1/quizzes/4/analytics", nil, ownerToken)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["cached"])
	data := body["analytics"].(map[string]interface{})
	assert.Equal(t, "Capitals", data["quiz_title"])
	assert.Equal(t, float64(75), data["average_percentage"])
}

func TestExportQuizAnalytics(t *testing.T) {
	router, sm := setupRouter(t)

	sm.export.On("ExportAnalytics", mock.Anything, uint(4), owner.ID).Return(&models.ExportResult{
		FileName:    "capitals_analytics_20250504_093000.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("xlsx-bytes"),
	}, nil)

	w := perform(router, http.MethodGet, "/api/v1/quizzes/4/analytics/export", nil, ownerToken)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="capitals_analytics_20250504_093000.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Equal(t, "xlsx-bytes", w.Body.String())
}

func TestPublicQuiz(t *testing.T) {
	router, sm := setupRouter(t)

	sm.quiz.On("GetByAccessCode", mock.Anything, "AB12CD").Return(&models.PublicQuiz{
		ID: 1, Title: "Capitals", AccessCode: "AB12CD", TotalQuestions: 1,
		Questions: []models.PublicQuestion{{Text: "Capital of France?", Options: []string{"Berlin", "Paris"}}},
	}, nil)
	sm.quiz.On("GetByAccessCode", mock.Anything, "ZZZZZZ").Return(nil, services.ErrQuizInactive)

	w := perform(router, http.MethodGet, "/api/v1/public/quizzes/ab12cd", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "correct")

	w = perform(router, http.MethodGet, "/api/v1/public/quizzes/ZZZZZZ", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = perform(router, http.MethodGet, "/api/v1/public/quizzes/short", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitAttempt(t *testing.T) {
	router, sm := setupRouter(t)

	receipt := &models.AttemptReceipt{AttemptID: 11, QuizTitle: "Capitals", Score: 1, TotalQuestions: 2, Percentage: 50}

	sm.attempt.On("Submit", mock.Anything, "AB12CD", mock.AnythingOfType("*models.AttemptSubmission"), (*models.AuthUser)(nil)).
		Return(receipt, nil).Once()
	sm.attempt.On("Submit", mock.Anything, "AB12CD", mock.AnythingOfType("*models.AttemptSubmission"), owner).
		Return(receipt, nil).Once()

	body := map[string]interface{}{"participant_name": "Ana", "answers": []interface{}{1, nil}}

	w := perform(router, http.MethodPost, "/api/v1/public/quizzes/AB12CD/attempts", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, float64(50), decode(t, w)["percentage"])

	w = perform(router, http.MethodPost, "/api/v1/public/quizzes/AB12CD/attempts", body, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code)

	sm.attempt.AssertExpectations(t)
}

func TestSubmitAttempt_BusinessRule(t *testing.T) {
	router, sm := setupRouter(t)

	sm.attempt.On("Submit", mock.Anything, "AB12CD", mock.Anything, mock.Anything).
		Return(nil, services.NewBusinessRuleError("answers_length", "too many answers", nil))

	w := perform(router, http.MethodPost, "/api/v1/public/quizzes/AB12CD/attempts",
		map[string]interface{}{"answers": []int{0}}, "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "too many answers", decode(t, w)["message"])
}
