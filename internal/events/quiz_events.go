package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	eventSource  = "quiz-service"
	eventVersion = "1.0"
)

// EventType names a domain event published on the quiz topic.
type EventType string

const (
	// Quiz lifecycle events
	EventQuizCreated   EventType = "quiz.created"
	EventQuizUpdated   EventType = "quiz.updated"
	EventQuizDeleted   EventType = "quiz.deleted"
	EventQuizGenerated EventType = "quiz.generated"

	// Attempt events
	EventAttemptSubmitted EventType = "attempt.submitted"
)

// Event is the envelope shared by every published event.
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Quiz event payloads

type QuizEvent struct {
	QuizID         uint   `json:"quiz_id"`
	Title          string `json:"title"`
	AccessCode     string `json:"access_code"`
	TotalQuestions int    `json:"total_questions"`
	OwnerID        string `json:"owner_id"`
}

type QuizGeneratedEvent struct {
	QuizEvent
	Prompt       string `json:"prompt"`
	Requested    int    `json:"requested"`
	Fallback     bool   `json:"fallback"`
	CacheHit     bool   `json:"cache_hit"`
	OutputTokens int    `json:"output_tokens"`
}

// Attempt event payload

type AttemptSubmittedEvent struct {
	AttemptID       uint      `json:"attempt_id"`
	QuizID          uint      `json:"quiz_id"`
	QuizTitle       string    `json:"quiz_title"`
	ParticipantName string    `json:"participant_name"`
	UserID          *string   `json:"user_id,omitempty"`
	Score           int       `json:"score"`
	Percentage      int       `json:"percentage"`
	TotalQuestions  int       `json:"total_questions"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// Event factory functions

func newEvent(eventType EventType, data interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// NewQuizEvent builds a quiz lifecycle event (created, updated or deleted).
func NewQuizEvent(eventType EventType, payload QuizEvent) *Event {
	return newEvent(eventType, payload)
}

func NewQuizGeneratedEvent(payload QuizGeneratedEvent) *Event {
	return newEvent(EventQuizGenerated, payload)
}

func NewAttemptSubmittedEvent(payload AttemptSubmittedEvent) *Event {
	return newEvent(EventAttemptSubmitted, payload)
}
