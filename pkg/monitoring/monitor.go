package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// AnalyticsRequests counts analytics lookups by cache outcome (hit, miss).
	AnalyticsRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_analytics_requests_total",
			Help: "Analytics snapshot requests by cache outcome",
		},
		[]string{"cache"},
	)

	AnalyticsDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quiz_analytics_compute_seconds",
			Help:    "Time spent computing an analytics snapshot",
			Buckets: prometheus.DefBuckets,
		},
	)

	// QuestionGenerations counts generator calls by outcome (generated, cached, fallback).
	QuestionGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_question_generations_total",
			Help: "AI question generation requests by outcome",
		},
		[]string{"outcome"},
	)

	AttemptsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quiz_attempts_submitted_total",
			Help: "Quiz attempts submitted",
		},
	)
)

var registerOnce sync.Once

// Init registers the collectors with the default registry. Safe to call more
// than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			AnalyticsRequests,
			AnalyticsDuration,
			QuestionGenerations,
			AttemptsSubmitted,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
