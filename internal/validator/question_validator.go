package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

const (
	MinOptions   = 2
	MaxQuestions = 100
)

// QuestionValidator normalises and checks quiz content submitted by editors.
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// NormalizeQuiz trims the title, then normalises every question. Blank
// options are dropped before the option count is checked, and the correct
// index must point at a remaining option.
func (v *QuestionValidator) NormalizeQuiz(title string, inputs []models.QuestionInput) (string, []models.Question, error) {
	var errs ValidationErrors

	title = strings.TrimSpace(title)
	if title == "" {
		errs.Add("title", "Quiz title is required", "required", nil)
	}

	switch {
	case len(inputs) == 0:
		errs.Add("questions", "At least one question is required", "min", nil)
		return title, nil, errs
	case len(inputs) > MaxQuestions:
		errs.Add("questions", fmt.Sprintf("must contain at most %d questions", MaxQuestions), "max", len(inputs))
		return title, nil, errs
	}

	questions := make([]models.Question, 0, len(inputs))
	for i, in := range inputs {
		q, qErrs := v.NormalizeQuestion(i, in)
		errs = append(errs, qErrs...)
		questions = append(questions, q)
	}

	if len(errs) > 0 {
		return title, nil, errs
	}
	return title, questions, nil
}

// NormalizeQuestion validates the question at position idx.
func (v *QuestionValidator) NormalizeQuestion(idx int, in models.QuestionInput) (models.Question, ValidationErrors) {
	var errs ValidationErrors
	field := func(name string) string { return fmt.Sprintf("questions[%d].%s", idx, name) }

	text := strings.TrimSpace(in.Text)
	if text == "" {
		errs.Add(field("question"), fmt.Sprintf("Question %d text is required", idx+1), "required", nil)
	}

	options := make([]string, 0, len(in.Options))
	for _, opt := range in.Options {
		if opt = strings.TrimSpace(opt); opt != "" {
			options = append(options, opt)
		}
	}
	if len(options) < MinOptions {
		errs.Add(field("options"), fmt.Sprintf("Question %d must have at least %d non-empty options", idx+1, MinOptions), "min", len(options))
	}

	correct, ok := in.Correct.Index()
	switch {
	case !in.Correct.Given():
		errs.Add(field("correct"), fmt.Sprintf("Question %d must have a correct answer selected", idx+1), "required", nil)
	case !ok:
		errs.Add(field("correct"), fmt.Sprintf("Question %d correct answer must be an option index", idx+1), "numeric", nil)
	case len(options) >= MinOptions && (correct < 0 || correct >= len(options)):
		errs.Add(field("correct"), fmt.Sprintf("Question %d correct answer must be between 0 and %d", idx+1, len(options)-1), "range", correct)
	}

	return models.Question{
		Text:        text,
		Options:     options,
		Correct:     correct,
		Explanation: strings.TrimSpace(in.Explanation),
	}, errs
}
