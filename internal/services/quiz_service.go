package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/generator"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/SAP-F-2025/quiz-service/pkg/monitoring"
)

// MaxAccessCodeAttempts bounds how often a colliding access code is redrawn.
const MaxAccessCodeAttempts = 10

// QuizService manages quizzes owned by authenticated users.
type QuizService interface {
	Create(ctx context.Context, req *CreateQuizRequest, ownerID string) (*models.Quiz, error)
	Generate(ctx context.Context, req *GenerateQuizRequest, ownerID string) (*GenerateQuizResponse, error)
	GetByID(ctx context.Context, id uint, userID string) (*models.Quiz, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Quiz, error)
	Update(ctx context.Context, id uint, req *UpdateQuizRequest, userID string) (*models.Quiz, error)
	Delete(ctx context.Context, id uint, userID string) error

	// GetByAccessCode serves the participant view, answer key removed.
	GetByAccessCode(ctx context.Context, code string) (*models.PublicQuiz, error)
}

// QuestionGenerator produces multiple-choice questions about a topic.
type QuestionGenerator interface {
	Generate(ctx context.Context, topic string, count int) (*generator.Result, error)
}

type quizService struct {
	repo      repositories.Repository
	validator *validator.Validator
	generator QuestionGenerator
	publisher events.EventPublisher
	cache     cache.CacheService
	logger    *ServiceLogger
	now       func() time.Time
	nextCode  func() (string, error)
}

func NewQuizService(repo repositories.Repository, v *validator.Validator, gen QuestionGenerator, publisher events.EventPublisher, cacheService cache.CacheService, logger *ServiceLogger) QuizService {
	return &quizService{
		repo:      repo,
		validator: v,
		generator: gen,
		publisher: publisher,
		cache:     cacheService,
		logger:    logger,
		now:       time.Now,
		nextCode:  utils.GenerateAccessCode,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *quizService) Create(ctx context.Context, req *CreateQuizRequest, ownerID string) (quiz *models.Quiz, err error) {
	op := s.logger.WithOperation(ctx, "create_quiz", ownerID)
	defer func() { op.LogResult(quizID(quiz), "quiz", err) }()

	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	title, questions, err := s.validator.Question().NormalizeQuiz(req.Title, req.Questions)
	if err != nil {
		return nil, err
	}

	quiz = s.newQuiz(title, req.Difficulty, questions, ownerID)
	if err := s.insertWithAccessCode(ctx, quiz); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewQuizEvent(events.EventQuizCreated, quizPayload(quiz)))
	return quiz, nil
}

// Generate asks the question generator for a batch and saves it as a new
// quiz. A fallback batch is still saved; the response flags it.
func (s *quizService) Generate(ctx context.Context, req *GenerateQuizRequest, ownerID string) (resp *GenerateQuizResponse, err error) {
	op := s.logger.WithOperation(ctx, "generate_quiz", ownerID)
	defer func() {
		var id uint
		if resp != nil {
			id = quizID(resp.Quiz)
		}
		op.LogResult(id, "quiz", err)
	}()

	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}
	if s.generator == nil {
		return nil, NewBusinessRuleError("generator_unavailable", "question generation is not configured", nil)
	}

	result, err := s.generator.Generate(ctx, strings.TrimSpace(req.Prompt), req.NumberOfQuestions)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}
	monitoring.QuestionGenerations.WithLabelValues(generationOutcome(result)).Inc()

	questions := make([]models.Question, len(result.Questions))
	for i, q := range result.Questions {
		questions[i] = models.Question{
			Text:        strings.TrimSpace(q.Question),
			Options:     q.Options,
			Correct:     q.Correct(),
			Explanation: q.Explanation,
		}
	}

	quiz := s.newQuiz(strings.TrimSpace(req.Title), req.Difficulty, questions, ownerID)
	if err := s.insertWithAccessCode(ctx, quiz); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewQuizGeneratedEvent(events.QuizGeneratedEvent{
		QuizEvent:    quizPayload(quiz),
		Prompt:       req.Prompt,
		Requested:    req.NumberOfQuestions,
		Fallback:     result.Fallback,
		CacheHit:     result.CacheHit,
		OutputTokens: result.OutputTokens,
	}))

	return &GenerateQuizResponse{Quiz: quiz, Fallback: result.Fallback, Cached: result.CacheHit}, nil
}

func (s *quizService) GetByID(ctx context.Context, id uint, userID string) (*models.Quiz, error) {
	return loadOwnedQuiz(ctx, s.repo, id, userID, "read")
}

func (s *quizService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Quiz, error) {
	if ownerID == "" {
		return nil, ErrUnauthorized
	}
	quizzes, _, err := s.repo.Quiz().ListByCreator(ctx, ownerID, repositories.QuizFilters{
		SortBy:    "created_at",
		SortOrder: "desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	if quizzes == nil {
		quizzes = []*models.Quiz{}
	}
	return quizzes, nil
}

func (s *quizService) Update(ctx context.Context, id uint, req *UpdateQuizRequest, userID string) (quiz *models.Quiz, err error) {
	op := s.logger.WithOperation(ctx, "update_quiz", userID)
	defer func() { op.LogResult(id, "quiz", err) }()

	quiz, err = loadOwnedQuiz(ctx, s.repo, id, userID, "update")
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	title, questions, err := s.validator.Question().NormalizeQuiz(req.Title, req.Questions)
	if err != nil {
		return nil, err
	}

	quiz.Title = title
	if req.Difficulty != "" {
		quiz.Difficulty = req.Difficulty
	}
	quiz.Questions = questions
	quiz.TotalQuestions = len(questions)
	quiz.UpdatedAt = s.now()

	if err := s.repo.Quiz().Update(ctx, quiz); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to update quiz: %w", err)
	}

	s.invalidateAnalytics(ctx, quiz.ID)
	s.publish(ctx, events.NewQuizEvent(events.EventQuizUpdated, quizPayload(quiz)))
	return quiz, nil
}

// Delete removes the quiz together with its attempts.
func (s *quizService) Delete(ctx context.Context, id uint, userID string) (err error) {
	op := s.logger.WithOperation(ctx, "delete_quiz", userID)
	defer func() { op.LogResult(id, "quiz", err) }()

	var deleted *models.Quiz
	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		quiz, err := loadOwnedQuiz(ctx, tx, id, userID, "delete")
		if err != nil {
			return err
		}
		if err := tx.Attempt().DeleteByQuiz(ctx, id); err != nil {
			return fmt.Errorf("failed to delete attempts: %w", err)
		}
		if err := tx.Quiz().Delete(ctx, id); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrQuizNotFound
			}
			return fmt.Errorf("failed to delete quiz: %w", err)
		}
		deleted = quiz
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateAnalytics(ctx, id)
	s.publish(ctx, events.NewQuizEvent(events.EventQuizDeleted, quizPayload(deleted)))
	return nil
}

func (s *quizService) GetByAccessCode(ctx context.Context, code string) (*models.PublicQuiz, error) {
	quiz, err := findActiveByAccessCode(ctx, s.repo, code)
	if err != nil {
		return nil, err
	}
	return quiz.Public(), nil
}

// ===== HELPERS =====

func (s *quizService) newQuiz(title string, difficulty models.QuizDifficulty, questions []models.Question, ownerID string) *models.Quiz {
	if difficulty == "" {
		difficulty = models.QuizMedium
	}
	now := s.now()
	return &models.Quiz{
		Title:          title,
		Difficulty:     difficulty,
		Questions:      questions,
		TotalQuestions: len(questions),
		IsActive:       true,
		AttemptCount:   0,
		CreatedBy:      ownerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// insertWithAccessCode draws access codes until one is free, then inserts
// the quiz with it.
func (s *quizService) insertWithAccessCode(ctx context.Context, quiz *models.Quiz) error {
	for attempt := 0; attempt < MaxAccessCodeAttempts; attempt++ {
		code, err := s.nextCode()
		if err != nil {
			return err
		}
		exists, err := s.repo.Quiz().AccessCodeExists(ctx, code)
		if err != nil {
			return fmt.Errorf("failed to check access code: %w", err)
		}
		if exists {
			s.logger.Logger().Debug("Access code collision, retrying", "attempt", attempt+1)
			continue
		}

		quiz.AccessCode = code
		if err := s.repo.Quiz().Create(ctx, quiz); err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}
		return nil
	}
	return ErrAccessCodeExhausted
}

// loadOwnedQuiz fetches a quiz and checks that userID created it.
func loadOwnedQuiz(ctx context.Context, repo repositories.Repository, id uint, userID, action string) (*models.Quiz, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	quiz, err := repo.Quiz().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if !quiz.IsOwnedBy(userID) {
		return nil, NewPermissionError(userID, id, "quiz", action, "not the quiz owner")
	}
	return quiz, nil
}

func (s *quizService) invalidateAnalytics(ctx context.Context, quizID uint) {
	invalidateAnalytics(ctx, s.cache, s.logger, quizID)
}

func (s *quizService) publish(ctx context.Context, event *events.Event) {
	publishEvent(ctx, s.publisher, s.logger, event)
}

// findActiveByAccessCode resolves a participant-facing access code. Inactive
// quizzes are hidden behind ErrQuizInactive, which maps to not found.
func findActiveByAccessCode(ctx context.Context, repo repositories.Repository, code string) (*models.Quiz, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !utils.IsAccessCode(code) {
		return nil, ErrAccessCodeNotFound
	}
	quiz, err := repo.Quiz().GetByAccessCode(ctx, code)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAccessCodeNotFound
		}
		return nil, fmt.Errorf("failed to find quiz by access code: %w", err)
	}
	if !quiz.IsActive {
		return nil, ErrQuizInactive
	}
	return quiz, nil
}

func invalidateAnalytics(ctx context.Context, c cache.CacheService, logger *ServiceLogger, quizID uint) {
	if c == nil {
		return
	}
	if err := c.DeletePattern(ctx, cache.AnalyticsPattern(quizID)); err != nil {
		logger.Logger().Warn("Failed to invalidate analytics cache", "quiz_id", quizID, "error", err)
	}
}

func publishEvent(ctx context.Context, publisher events.EventPublisher, logger *ServiceLogger, event *events.Event) {
	if publisher == nil || event == nil {
		return
	}
	if err := publisher.PublishEvent(ctx, event); err != nil {
		logger.Logger().Warn("Failed to publish event", "event_type", event.Type, "event_id", event.ID, "error", err)
	}
}

func quizPayload(quiz *models.Quiz) events.QuizEvent {
	return events.QuizEvent{
		QuizID:         quiz.ID,
		Title:          quiz.Title,
		AccessCode:     quiz.AccessCode,
		TotalQuestions: quiz.TotalQuestions,
		OwnerID:        quiz.CreatedBy,
	}
}

func quizID(quiz *models.Quiz) uint {
	if quiz == nil {
		return 0
	}
	return quiz.ID
}

func generationOutcome(result *generator.Result) string {
	switch {
	case result.Fallback:
		return "fallback"
	case result.CacheHit:
		return "cached"
	default:
		return "generated"
	}
}
