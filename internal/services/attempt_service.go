package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/analytics"
	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/SAP-F-2025/quiz-service/pkg/monitoring"
)

// AttemptService records participant submissions and lists them for owners.
type AttemptService interface {
	// Submit scores and stores an attempt against the quiz with this access
	// code. user is nil for anonymous participants.
	Submit(ctx context.Context, accessCode string, req *models.AttemptSubmission, user *models.AuthUser) (*models.AttemptReceipt, error)

	ListByQuiz(ctx context.Context, quizID uint, userID string, page int) (*models.Page[*models.QuizAttempt], error)
	GetByID(ctx context.Context, attemptID uint, userID string) (*models.QuizAttempt, error)
}

type attemptService struct {
	repo      repositories.Repository
	validator *validator.Validator
	publisher events.EventPublisher
	cache     cache.CacheService
	logger    *ServiceLogger
	now       func() time.Time
}

func NewAttemptService(repo repositories.Repository, v *validator.Validator, publisher events.EventPublisher, cacheService cache.CacheService, logger *ServiceLogger) AttemptService {
	return &attemptService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		cache:     cacheService,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *attemptService) Submit(ctx context.Context, accessCode string, req *models.AttemptSubmission, user *models.AuthUser) (receipt *models.AttemptReceipt, err error) {
	var userID string
	if user != nil {
		userID = user.ID
	}
	op := s.logger.WithOperation(ctx, "submit_attempt", userID)
	defer func() {
		var id uint
		if receipt != nil {
			id = receipt.AttemptID
		}
		op.LogResult(id, "attempt", err)
	}()

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	quiz, err := findActiveByAccessCode(ctx, s.repo, accessCode)
	if err != nil {
		return nil, err
	}

	score := CalculateScore(req.Answers, quiz.Questions)
	now := s.now()

	attempt := &models.QuizAttempt{
		QuizID:           quiz.ID,
		ParticipantName:  models.ParticipantName(strings.TrimSpace(req.ParticipantName), user),
		ParticipantEmail: req.ParticipantEmail,
		Answers:          toAnswers(req.Answers),
		AnswerResults:    score.Answers,
		Score:            &score.Score,
		Percentage:       &score.Percentage,
		TotalQuestions:   score.TotalQuestions,
		Completed:        true,
		SubmittedAt:      &now,
		CompletedAt:      &now,
	}
	if user != nil && user.ID != "" {
		id := user.ID
		attempt.UserID = &id
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Attempt().Create(ctx, attempt); err != nil {
			return fmt.Errorf("failed to save attempt: %w", err)
		}
		if err := tx.Quiz().RecordAttempt(ctx, quiz.ID, now); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrQuizNotFound
			}
			return fmt.Errorf("failed to update quiz attempt count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.AttemptsSubmitted.Inc()
	invalidateAnalytics(ctx, s.cache, s.logger, quiz.ID)
	publishEvent(ctx, s.publisher, s.logger, events.NewAttemptSubmittedEvent(events.AttemptSubmittedEvent{
		AttemptID:       attempt.ID,
		QuizID:          quiz.ID,
		QuizTitle:       quiz.Title,
		ParticipantName: attempt.ParticipantName,
		UserID:          attempt.UserID,
		Score:           score.Score,
		Percentage:      score.Percentage,
		TotalQuestions:  score.TotalQuestions,
		SubmittedAt:     now,
	}))

	return &models.AttemptReceipt{
		AttemptID:       attempt.ID,
		QuizTitle:       quiz.Title,
		ParticipantName: attempt.ParticipantName,
		Score:           score.Score,
		TotalQuestions:  score.TotalQuestions,
		Percentage:      score.Percentage,
		Answers:         score.Answers,
	}, nil
}

// ListByQuiz returns one page of attempts, most recent submission first.
func (s *attemptService) ListByQuiz(ctx context.Context, quizID uint, userID string, page int) (*models.Page[*models.QuizAttempt], error) {
	if _, err := loadOwnedQuiz(ctx, s.repo, quizID, userID, "view attempts of"); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	attempts, total, err := s.repo.Attempt().ListByQuiz(ctx, quizID, repositories.AttemptFilters{
		Limit:     models.AttemptsPerPage,
		Offset:    (page - 1) * models.AttemptsPerPage,
		SortBy:    "submitted_at",
		SortOrder: "desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	for _, a := range attempts {
		normalizeAttempt(a)
	}
	return models.NewPage(attempts, page, models.AttemptsPerPage, total), nil
}

func (s *attemptService) GetByID(ctx context.Context, attemptID uint, userID string) (*models.QuizAttempt, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	if _, err := loadOwnedQuiz(ctx, s.repo, attempt.QuizID, userID, "view attempt of"); err != nil {
		return nil, err
	}
	normalizeAttempt(attempt)
	return attempt, nil
}

// normalizeAttempt fills fields older records may lack: completion time
// falls back to submission time and a blank name reads as anonymous.
func normalizeAttempt(a *models.QuizAttempt) {
	if a.CompletedAt == nil {
		a.CompletedAt = a.SubmittedAt
	}
	a.ParticipantName = a.DisplayName()
}

func toAnswers(answers []*int) []analytics.Answer {
	out := make([]analytics.Answer, len(answers))
	for i, a := range answers {
		if a == nil {
			out[i] = analytics.Unanswered()
			continue
		}
		out[i] = analytics.Choice(*a)
	}
	return out
}
