package models

// AttemptSubmission is what a participant posts when finishing a quiz.
// A nil entry in Answers is an unanswered question.
type AttemptSubmission struct {
	ParticipantName  string  `json:"participant_name" validate:"omitempty,max=255"`
	ParticipantEmail *string `json:"participant_email" validate:"omitempty,email"`
	Answers          []*int  `json:"answers" validate:"required,min=1"`
}

// ScoreResult is the outcome of scoring a submission against a quiz.
type ScoreResult struct {
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Percentage     int            `json:"percentage"`
	Answers        []AnswerResult `json:"answers_with_correctness"`
}

// AttemptReceipt is returned to the participant after submission.
type AttemptReceipt struct {
	AttemptID       uint           `json:"attempt_id"`
	QuizTitle       string         `json:"quiz_title"`
	ParticipantName string         `json:"participant_name"`
	Score           int            `json:"score"`
	TotalQuestions  int            `json:"total_questions"`
	Percentage      int            `json:"percentage"`
	Answers         []AnswerResult `json:"answers_with_correctness"`
}
