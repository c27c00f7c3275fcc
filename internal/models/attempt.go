package models

import (
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/analytics"
	"gorm.io/datatypes"
)

const AnonymousParticipant = "Anonymous"

// AnswerResult records how a single submitted answer was scored.
type AnswerResult struct {
	QuestionIndex  int  `json:"question_index"`
	SelectedAnswer *int `json:"selected_answer"`
	CorrectAnswer  int  `json:"correct_answer"`
	IsCorrect      bool `json:"is_correct"`
}

type QuizAttempt struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	QuizID uint `json:"quiz_id" gorm:"not null;index"`

	// Participant, optional when the quiz is taken anonymously
	ParticipantName  string  `json:"participant_name" gorm:"size:255"`
	ParticipantEmail *string `json:"participant_email" gorm:"size:255"`
	UserID           *string `json:"user_id" gorm:"size:255;index"`

	// Raw positional answers and their scored form
	Answers       datatypes.JSONSlice[analytics.Answer] `json:"answers" gorm:"type:jsonb"`
	AnswerResults datatypes.JSONSlice[AnswerResult]     `json:"answers_with_correctness" gorm:"type:jsonb"`

	// Scoring; nil marks legacy or partial records
	Score          *int `json:"score"`
	Percentage     *int `json:"percentage"`
	TotalQuestions int  `json:"total_questions"`
	Completed      bool `json:"completed" gorm:"index"`

	SubmittedAt *time.Time `json:"submitted_at" gorm:"index"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// DisplayName falls back to the anonymous label.
func (a *QuizAttempt) DisplayName() string {
	if a.ParticipantName == "" {
		return AnonymousParticipant
	}
	return a.ParticipantName
}

// ToAnalytics converts the stored attempt into the analytics engine input.
func (a *QuizAttempt) ToAnalytics() analytics.Attempt {
	return analytics.Attempt{
		ID:              a.ID,
		QuizID:          a.QuizID,
		ParticipantName: a.DisplayName(),
		Answers:         a.Answers,
		Score:           a.Score,
		Percentage:      a.Percentage,
		Completed:       a.Completed,
	}
}

// ToAnalytics converts the stored quiz into the analytics engine input.
func (q *Quiz) ToAnalytics() *analytics.Quiz {
	if q == nil {
		return nil
	}
	questions := make([]analytics.Question, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = analytics.Question{
			Text:    question.Text,
			Options: question.Options,
			Correct: question.Correct,
		}
	}
	return &analytics.Quiz{ID: q.ID, Title: q.Title, Questions: questions}
}
