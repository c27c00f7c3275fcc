package validator

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/SAP-F-2025/quiz-service/internal/analytics"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func input(text string, correct analytics.Answer, options ...string) models.QuestionInput {
	return models.QuestionInput{Text: text, Options: options, Correct: correct}
}

func TestQuestionValidator_NormalizeQuiz(t *testing.T) {
	v := NewQuestionValidator()

	title, questions, err := v.NormalizeQuiz("  Capitals  ", []models.QuestionInput{
		input("  Capital of France? ", analytics.Choice(1), " Berlin ", "Paris", "   ", "Rome"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Capitals", title)
	require.Len(t, questions, 1)
	assert.Equal(t, "Capital of France?", questions[0].Text)
	assert.Equal(t, []string{"Berlin", "Paris", "Rome"}, questions[0].Options)
	assert.Equal(t, 1, questions[0].Correct)
}

func TestQuestionValidator_NormalizeQuiz_Errors(t *testing.T) {
	v := NewQuestionValidator()

	tests := []struct {
		name       string
		title      string
		inputs     []models.QuestionInput
		wantFields []string
	}{
		{
			name:       "missing title and questions",
			title:      "   ",
			inputs:     nil,
			wantFields: []string{"title", "questions"},
		},
		{
			name:       "blank question text",
			title:      "Quiz",
			inputs:     []models.QuestionInput{input("  ", analytics.Choice(0), "A", "B")},
			wantFields: []string{"questions[0].question"},
		},
		{
			name:       "too few options after trimming",
			title:      "Quiz",
			inputs:     []models.QuestionInput{input("Q", analytics.Choice(0), "A", " ", "")},
			wantFields: []string{"questions[0].options"},
		},
		{
			name:       "missing correct answer",
			title:      "Quiz",
			inputs:     []models.QuestionInput{input("Q", analytics.Unanswered(), "A", "B")},
			wantFields: []string{"questions[0].correct"},
		},
		{
			name:  "correct index past the remaining options",
			title: "Quiz",
			inputs: []models.QuestionInput{
				input("Q1", analytics.Choice(0), "A", "B"),
				input("Q2", analytics.Choice(2), "A", "", "B"),
			},
			wantFields: []string{"questions[1].correct"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, questions, err := v.NormalizeQuiz(tt.title, tt.inputs)
			require.Error(t, err)
			assert.Nil(t, questions)

			var errs ValidationErrors
			require.True(t, stderrors.As(err, &errs))
			for _, field := range tt.wantFields {
				assert.True(t, errs.HasField(field), "expected error on %s, got %v", field, errs)
			}
			assert.Len(t, errs, len(tt.wantFields))
		})
	}
}

func TestQuestionValidator_CorrectFromString(t *testing.T) {
	var in models.QuestionInput
	require.NoError(t, json.Unmarshal([]byte(`{"question":"Q","options":["A","B","C"],"correct":"2"}`), &in))

	q, errs := NewQuestionValidator().NormalizeQuestion(0, in)
	assert.Empty(t, errs)
	assert.Equal(t, 2, q.Correct)
}

func TestValidator_ValidateStruct(t *testing.T) {
	type request struct {
		Code       string                `json:"code" validate:"required,access_code"`
		Difficulty models.QuizDifficulty `json:"difficulty" validate:"omitempty,quiz_difficulty"`
	}

	v := New()
	assert.NoError(t, v.ValidateStruct(request{Code: "ab12cd", Difficulty: models.QuizHard}))

	err := v.ValidateStruct(request{Code: "ab1", Difficulty: "extreme"})
	var errs ValidationErrors
	require.True(t, stderrors.As(err, &errs))
	assert.True(t, errs.HasField("code"))
	assert.True(t, errs.HasField("difficulty"))
}
