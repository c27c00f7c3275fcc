package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/analytics"
	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/pkg/monitoring"
)

// AnalyticsService computes per-quiz attempt analytics for quiz owners.
type AnalyticsService interface {
	GetQuizAnalytics(ctx context.Context, quizID uint, userID string) (*AnalyticsResponse, error)
}

type analyticsService struct {
	repo     repositories.Repository
	cache    cache.CacheService
	cacheTTL time.Duration
	logger   *ServiceLogger
}

func NewAnalyticsService(repo repositories.Repository, cacheService cache.CacheService, cacheTTL time.Duration, logger *ServiceLogger) AnalyticsService {
	if cacheService == nil {
		cacheService = cache.NewNoopCache()
	}
	return &analyticsService{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// GetQuizAnalytics serves a cached snapshot when the quiz and its attempt
// set are unchanged since it was computed. Cache failures only cost a
// recomputation.
func (s *analyticsService) GetQuizAnalytics(ctx context.Context, quizID uint, userID string) (resp *AnalyticsResponse, err error) {
	op := s.logger.WithOperation(ctx, "get_quiz_analytics", userID)
	defer func() { op.LogResult(quizID, "quiz", err) }()

	quiz, err := loadOwnedQuiz(ctx, s.repo, quizID, userID, "view analytics of")
	if err != nil {
		return nil, err
	}

	key := cache.AnalyticsKey(quiz.ID, snapshotVersion(quiz).Fingerprint())

	var cached analytics.Snapshot
	switch err := s.cache.Get(ctx, key, &cached); {
	case err == nil:
		monitoring.AnalyticsRequests.WithLabelValues("hit").Inc()
		return &AnalyticsResponse{QuizID: quiz.ID, Cached: true, Data: &cached}, nil
	case !cache.IsCacheMiss(err):
		s.logger.Logger().Warn("Analytics cache read failed", "quiz_id", quiz.ID, "error", err)
	}
	monitoring.AnalyticsRequests.WithLabelValues("miss").Inc()

	attempts, err := s.repo.Attempt().GetAllByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	snapshot := computeSnapshot(quiz, attempts)

	if err := s.cache.Set(ctx, key, snapshot, s.cacheTTL); err != nil {
		s.logger.Logger().Warn("Analytics cache write failed", "quiz_id", quiz.ID, "error", err)
	}

	return &AnalyticsResponse{QuizID: quiz.ID, Data: &snapshot}, nil
}

func computeSnapshot(quiz *models.Quiz, attempts []*models.QuizAttempt) analytics.Snapshot {
	start := time.Now()
	defer func() { monitoring.AnalyticsDuration.Observe(time.Since(start).Seconds()) }()

	converted := make([]analytics.Attempt, 0, len(attempts))
	for _, a := range attempts {
		converted = append(converted, a.ToAnalytics())
	}
	return analytics.ComputeAnalytics(quiz.ToAnalytics(), converted)
}

func snapshotVersion(quiz *models.Quiz) analytics.SnapshotVersion {
	return analytics.SnapshotVersion{
		QuizID:        quiz.ID,
		UpdatedAt:     quiz.UpdatedAt,
		AttemptCount:  quiz.AttemptCount,
		LastAttemptAt: quiz.LastAttemptAt,
	}
}
