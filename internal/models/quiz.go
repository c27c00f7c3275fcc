package models

import (
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/analytics"
	"gorm.io/datatypes"
)

type QuizDifficulty string

const (
	QuizEasy   QuizDifficulty = "easy"
	QuizMedium QuizDifficulty = "medium"
	QuizHard   QuizDifficulty = "hard"
)

const AccessCodeLength = 6

// Question is a multiple-choice item stored inline on its quiz.
type Question struct {
	Text        string   `json:"question" validate:"required"`
	Options     []string `json:"options" validate:"required,min=2,dive,required"`
	Correct     int      `json:"correct" validate:"min=0"`
	Explanation string   `json:"explanation,omitempty"`
}

type Quiz struct {
	ID             uint                          `json:"id" gorm:"primaryKey"`
	Title          string                        `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Difficulty     QuizDifficulty                `json:"difficulty" gorm:"size:20;default:medium" validate:"omitempty,quiz_difficulty"`
	Questions      datatypes.JSONSlice[Question] `json:"questions" gorm:"type:jsonb"`
	TotalQuestions int                           `json:"total_questions"`
	AccessCode     string                        `json:"access_code" gorm:"size:6;uniqueIndex;not null"`
	IsActive       bool                          `json:"is_active" gorm:"default:true;index"`

	// Attempt bookkeeping, maintained on submission
	AttemptCount  int        `json:"attempt_count" gorm:"default:0"`
	LastAttemptAt *time.Time `json:"last_attempt_at"`

	// Metadata
	CreatedBy string    `json:"created_by" gorm:"not null;index;size:255"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// IsOwnedBy reports whether userID created the quiz.
func (q *Quiz) IsOwnedBy(userID string) bool {
	return q != nil && userID != "" && q.CreatedBy == userID
}

// PublicQuestion is a question with its answer key removed, served to
// participants.
type PublicQuestion struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
}

type PublicQuiz struct {
	ID             uint             `json:"id"`
	Title          string           `json:"title"`
	Difficulty     QuizDifficulty   `json:"difficulty"`
	AccessCode     string           `json:"access_code"`
	TotalQuestions int              `json:"total_questions"`
	Questions      []PublicQuestion `json:"questions"`
}

// Public strips correct answers and explanations.
func (q *Quiz) Public() *PublicQuiz {
	questions := make([]PublicQuestion, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = PublicQuestion{Text: question.Text, Options: question.Options}
	}
	return &PublicQuiz{
		ID:             q.ID,
		Title:          q.Title,
		Difficulty:     q.Difficulty,
		AccessCode:     q.AccessCode,
		TotalQuestions: len(q.Questions),
		Questions:      questions,
	}
}

// QuestionInput is a question as submitted by an editor, before trimming and
// normalisation. Correct accepts a number or a numeric string.
type QuestionInput struct {
	Text        string           `json:"question"`
	Options     []string         `json:"options"`
	Correct     analytics.Answer `json:"correct"`
	Explanation string           `json:"explanation,omitempty"`
}
