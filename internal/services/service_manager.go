package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
)

// ServiceManager exposes every service the handlers need.
type ServiceManager interface {
	Quiz() QuizService
	Attempt() AttemptService
	Analytics() AnalyticsService
	Export() ExportService
}

// Dependencies collects what NewServiceManager wires into the services.
type Dependencies struct {
	Repo         repositories.Repository
	Validator    *validator.Validator
	Generator    QuestionGenerator
	Publisher    events.EventPublisher
	Cache        cache.CacheService
	AnalyticsTTL time.Duration
	Logger       *slog.Logger
}

type serviceManager struct {
	quiz      QuizService
	attempt   AttemptService
	analytics AnalyticsService
	export    ExportService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	if deps.Cache == nil {
		deps.Cache = cache.NewNoopCache()
	}
	if deps.Validator == nil {
		deps.Validator = validator.New()
	}

	analyticsService := NewAnalyticsService(deps.Repo, deps.Cache, deps.AnalyticsTTL, NewServiceLogger(deps.Logger, "analytics"))

	return &serviceManager{
		quiz:      NewQuizService(deps.Repo, deps.Validator, deps.Generator, deps.Publisher, deps.Cache, NewServiceLogger(deps.Logger, "quiz")),
		attempt:   NewAttemptService(deps.Repo, deps.Validator, deps.Publisher, deps.Cache, NewServiceLogger(deps.Logger, "attempt")),
		analytics: analyticsService,
		export:    NewExportService(deps.Repo, analyticsService, NewServiceLogger(deps.Logger, "export")),
	}
}

func (m *serviceManager) Quiz() QuizService           { return m.quiz }
func (m *serviceManager) Attempt() AttemptService     { return m.attempt }
func (m *serviceManager) Analytics() AnalyticsService { return m.analytics }
func (m *serviceManager) Export() ExportService       { return m.export }
