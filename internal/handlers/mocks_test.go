package handlers

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/stretchr/testify/mock"
)

type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) Create(ctx context.Context, req *services.CreateQuizRequest, ownerID string) (*models.Quiz, error) {
	args := m.Called(ctx, req, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizService) Generate(ctx context.Context, req *services.GenerateQuizRequest, ownerID string) (*services.GenerateQuizResponse, error) {
	args := m.Called(ctx, req, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.GenerateQuizResponse), args.Error(1)
}

func (m *MockQuizService) GetByID(ctx context.Context, id uint, userID string) (*models.Quiz, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Quiz, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Quiz), args.Error(1)
}

func (m *MockQuizService) Update(ctx context.Context, id uint, req *services.UpdateQuizRequest, userID string) (*models.Quiz, error) {
	args := m.Called(ctx, id, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Quiz), args.Error(1)
}

func (m *MockQuizService) Delete(ctx context.Context, id uint, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockQuizService) GetByAccessCode(ctx context.Context, code string) (*models.PublicQuiz, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PublicQuiz), args.Error(1)
}

type MockAttemptService struct {
	mock.Mock
}

func (m *MockAttemptService) Submit(ctx context.Context, accessCode string, req *models.AttemptSubmission, user *models.AuthUser) (*models.AttemptReceipt, error) {
	args := m.Called(ctx, accessCode, req, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttemptReceipt), args.Error(1)
}

func (m *MockAttemptService) ListByQuiz(ctx context.Context, quizID uint, userID string, page int) (*models.Page[*models.QuizAttempt], error) {
	args := m.Called(ctx, quizID, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page[*models.QuizAttempt]), args.Error(1)
}

func (m *MockAttemptService) GetByID(ctx context.Context, attemptID uint, userID string) (*models.QuizAttempt, error) {
	args := m.Called(ctx, attemptID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizAttempt), args.Error(1)
}

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) GetQuizAnalytics(ctx context.Context, quizID uint, userID string) (*services.AnalyticsResponse, error) {
	args := m.Called(ctx, quizID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AnalyticsResponse), args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportAnalytics(ctx context.Context, quizID uint, userID string) (*models.ExportResult, error) {
	args := m.Called(ctx, quizID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExportResult), args.Error(1)
}

type mockServiceManager struct {
	quiz      *MockQuizService
	attempt   *MockAttemptService
	analytics *MockAnalyticsService
	export    *MockExportService
}

func newMockServiceManager() *mockServiceManager {
	return &mockServiceManager{
		quiz:      new(MockQuizService),
		attempt:   new(MockAttemptService),
		analytics: new(MockAnalyticsService),
		export:    new(MockExportService),
	}
}

func (m *mockServiceManager) Quiz() services.QuizService           { return m.quiz }
func (m *mockServiceManager) Attempt() services.AttemptService     { return m.attempt }
func (m *mockServiceManager) Analytics() services.AnalyticsService { return m.analytics }
func (m *mockServiceManager) Export() services.ExportService       { return m.export }

type staticVerifier map[string]*models.AuthUser

func (v staticVerifier) Verify(token string) (*models.AuthUser, error) {
	if user, ok := v[token]; ok {
		return user, nil
	}
	return nil, errors.New("unknown token")
}

type stubHealth struct{ err error }

func (s stubHealth) Ping(context.Context) error { return s.err }
