package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

const (
	defaultMaxTokens = 4096
	maxAPIAttempts   = 2
)

// LLMClient is the interface both generator backends satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// APIClient talks to the Anthropic Messages API.
type APIClient struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
	logger    *slog.Logger
}

func NewAPIClient(apiKey, model string, maxTokens int64, logger *slog.Logger) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &APIClient{client: &client, model: model, maxTokens: maxTokens, logger: logger}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   c.maxTokens,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := c.callWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if strings.TrimSpace(responseText) == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

func (c *APIClient) callWithRetry(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	var lastErr error
	for attempt := 0; attempt < maxAPIAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			c.logger.Warn("Retrying Anthropic API call", "backoff", backoff, "attempt", attempt+1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err
		c.logger.Warn("Anthropic API call failed", "attempt", attempt+1, "error", err)
	}
	return nil, fmt.Errorf("anthropic API failed after retries: %w", lastErr)
}

// MockClient returns canned, well-formed questions about the requested topic.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	topic, count := parseUserPrompt(userPrompt)

	questions := make([]GeneratedQuestion, count)
	for i := range questions {
		correct := i % RequiredOptions
		questions[i] = GeneratedQuestion{
			Question:      fmt.Sprintf("[Mock] Question %d about %s?", i+1, topic),
			Options:       []string{"Option A", "Option B", "Option C", "Option D"},
			CorrectAnswer: &correct,
			Explanation:   fmt.Sprintf("[Mock] Option %c is correct.", 'A'+rune(correct)),
		}
	}
	body, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}

	return &LLMResponse{
		Content:      "```json\n" + string(body) + "\n```",
		PromptTokens: 400,
		OutputTokens: 120 * count,
	}, nil
}
