package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultCacheSize   = 128
	DefaultCacheTTL    = time.Hour
	DefaultMinInterval = 2 * time.Second
	MaxQuestions       = 50

	fallbackExplanation = "This is a fallback question generated due to AI service error."
)

var ErrInvalidCount = fmt.Errorf("number of questions must be between 1 and %d", MaxQuestions)

// Options tunes caching and pacing of upstream calls.
type Options struct {
	CacheSize   int
	CacheTTL    time.Duration
	MinInterval time.Duration
}

// Result is a generated batch plus how it was produced.
type Result struct {
	Questions    []GeneratedQuestion
	CacheHit     bool
	Fallback     bool
	PromptTokens int
	OutputTokens int
}

// Generator wraps an LLMClient with prompt caching, a minimum interval
// between upstream calls and a fallback question when generation fails.
type Generator struct {
	llm     LLMClient
	model   string
	cache   *promptCache
	limiter *rate.Limiter
	logger  *slog.Logger
}

func New(llm LLMClient, model string, opts Options, logger *slog.Logger) *Generator {
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	limit := rate.Inf
	if opts.MinInterval > 0 {
		limit = rate.Every(opts.MinInterval)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		llm:     llm,
		model:   model,
		cache:   newPromptCache(opts.CacheSize, opts.CacheTTL),
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// Generate returns count questions about topic. Upstream and parse failures
// degrade to a single fallback question and are not reported as errors; only
// an invalid request or a cancelled context is.
func (g *Generator) Generate(ctx context.Context, topic string, count int) (*Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, errors.New("topic is required")
	}
	if count < 1 || count > MaxQuestions {
		return nil, ErrInvalidCount
	}

	key := cacheKey(topic, count)
	if questions, ok := g.cache.get(key); ok {
		g.logger.Debug("Returning cached questions", "topic", topic, "count", count)
		return &Result{Questions: questions, CacheHit: true}, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for generation slot: %w", err)
	}

	resp, err := g.llm.Generate(ctx, SystemPrompt(), BuildUserPrompt(topic, count))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		g.logger.Error("Question generation failed, returning fallback", "topic", topic, "error", err)
		return &Result{Questions: FallbackQuestions(topic, count), Fallback: true}, nil
	}

	questions, err := ParseResponse(resp.Content)
	if err != nil {
		g.logger.Error("Generated questions rejected, returning fallback", "topic", topic, "error", err)
		return &Result{
			Questions:    FallbackQuestions(topic, count),
			Fallback:     true,
			PromptTokens: resp.PromptTokens,
			OutputTokens: resp.OutputTokens,
		}, nil
	}

	if len(questions) > count {
		questions = questions[:count]
	}
	g.cache.put(key, questions)

	g.logger.Info("Generated questions", "model", g.model, "topic", topic, "requested", count, "returned", len(questions),
		"prompt_tokens", resp.PromptTokens, "output_tokens", resp.OutputTokens)

	return &Result{
		Questions:    questions,
		PromptTokens: resp.PromptTokens,
		OutputTokens: resp.OutputTokens,
	}, nil
}

// FallbackQuestions is served when the model cannot produce a usable batch.
func FallbackQuestions(topic string, count int) []GeneratedQuestion {
	correct := 0
	fallback := []GeneratedQuestion{{
		Question: fmt.Sprintf("What is the main topic of \"%s\"?", topic),
		Options: []string{
			"A comprehensive subject area",
			"A simple concept",
			"An advanced topic",
			"A basic principle",
		},
		CorrectAnswer: &correct,
		Explanation:   fallbackExplanation,
	}}
	if count < len(fallback) {
		return fallback[:count]
	}
	return fallback
}
