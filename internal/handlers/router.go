package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouteMiddleware groups the middleware SetupRoutes attaches per route group.
type RouteMiddleware struct {
	Auth          gin.HandlerFunc
	OptionalAuth  gin.HandlerFunc
	PublicLimit   gin.HandlerFunc
	GenerateLimit gin.HandlerFunc
	Metrics       gin.HandlerFunc
}

type HandlerManager struct {
	quizHandler      *QuizHandler
	attemptHandler   *AttemptHandler
	analyticsHandler *AnalyticsHandler
	publicHandler    *PublicHandler
	health           HealthChecker
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	health HealthChecker,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:      NewQuizHandler(serviceManager.Quiz(), logger),
		attemptHandler:   NewAttemptHandler(serviceManager.Attempt(), logger),
		analyticsHandler: NewAnalyticsHandler(serviceManager.Analytics(), serviceManager.Export(), logger),
		publicHandler:    NewPublicHandler(serviceManager.Quiz(), serviceManager.Attempt(), logger),
		health:           health,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, mw RouteMiddleware) {
	router.GET("/health", hm.HealthCheck)
	if mw.Metrics != nil {
		router.GET("/metrics", mw.Metrics)
	}

	v1 := router.Group("/api/v1")

	// Participant routes, identified by access code
	public := v1.Group("/public", orNext(mw.PublicLimit), orNext(mw.OptionalAuth))
	{
		public.GET("/quizzes/:code", hm.publicHandler.GetQuiz)
		public.POST("/quizzes/:code/attempts", hm.publicHandler.SubmitAttempt)
	}

	authed := v1.Group("", orNext(mw.Auth))

	quizzes := authed.Group("/quizzes")
	{
		quizzes.POST("", hm.quizHandler.CreateQuiz)
		quizzes.POST("/generate", orNext(mw.GenerateLimit), hm.quizHandler.GenerateQuiz)
		quizzes.GET("", hm.quizHandler.ListQuizzes)
		quizzes.GET("/:id", hm.quizHandler.GetQuiz)
		quizzes.PUT("/:id", hm.quizHandler.UpdateQuiz)
		quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)

		quizzes.GET("/:id/attempts", hm.attemptHandler.ListQuizAttempts)
		quizzes.GET("/:id/analytics", hm.analyticsHandler.GetQuizAnalytics)
		quizzes.GET("/:id/analytics/export", hm.analyticsHandler.ExportQuizAnalytics)
	}

	attempts := authed.Group("/attempts")
	{
		attempts.GET("/:id", hm.attemptHandler.GetAttempt)
	}
}

// HealthCheck handles GET /health
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	if hm.health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := hm.health.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "quiz-service",
				"error":   err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "quiz-service",
	})
}

func orNext(h gin.HandlerFunc) gin.HandlerFunc {
	if h == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return h
}
