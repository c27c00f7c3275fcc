package services

import (
	"math"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// CalculateScore grades positional answers against the quiz questions. A nil
// answer counts as incorrect, answers past the last question are ignored and
// the percentage is rounded half up (0 for a quiz without questions).
func CalculateScore(answers []*int, questions []models.Question) models.ScoreResult {
	results := make([]models.AnswerResult, 0, len(answers))
	correct := 0

	for i, answer := range answers {
		if i >= len(questions) {
			break
		}
		isCorrect := answer != nil && *answer == questions[i].Correct
		if isCorrect {
			correct++
		}
		var selected *int
		if answer != nil {
			v := *answer
			selected = &v
		}
		results = append(results, models.AnswerResult{
			QuestionIndex:  i,
			SelectedAnswer: selected,
			CorrectAnswer:  questions[i].Correct,
			IsCorrect:      isCorrect,
		})
	}

	total := len(questions)
	percentage := 0
	if total > 0 {
		percentage = int(math.Floor(float64(correct)*100/float64(total) + 0.5))
	}

	return models.ScoreResult{
		Score:          correct,
		TotalQuestions: total,
		Percentage:     percentage,
		Answers:        results,
	}
}
