package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	RequiredOptions  = 4
	maxCorrectAnswer = RequiredOptions - 1
)

// GeneratedQuestion is one item of the model's JSON array.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// Correct returns the correct option index; callers only see parsed,
// validated questions where it is always set.
func (q GeneratedQuestion) Correct() int {
	if q.CorrectAnswer == nil {
		return 0
	}
	return *q.CorrectAnswer
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseResponse decodes a JSON array of questions, tolerating markdown code
// fences around it. A single malformed item rejects the whole batch.
func ParseResponse(responseBody string) ([]GeneratedQuestion, error) {
	cleaned := stripCodeFences(responseBody)

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateQuestions(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func validateQuestions(questions []GeneratedQuestion) error {
	var errs []string
	if len(questions) == 0 {
		errs = append(errs, "response contains no questions")
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty question text", i))
		}
		if len(q.Options) != RequiredOptions {
			errs = append(errs, fmt.Sprintf("question %d: expected %d options, got %d", i, RequiredOptions, len(q.Options)))
		}
		if q.CorrectAnswer == nil {
			errs = append(errs, fmt.Sprintf("question %d: missing correctAnswer", i))
		} else if *q.CorrectAnswer < 0 || *q.CorrectAnswer > maxCorrectAnswer {
			errs = append(errs, fmt.Sprintf("question %d: correctAnswer %d out of range 0..%d", i, *q.CorrectAnswer, maxCorrectAnswer))
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
