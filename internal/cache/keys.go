package cache

import "fmt"

const analyticsPrefix = "analytics:quiz"

// AnalyticsKey addresses one cached snapshot of a quiz, versioned by a
// fingerprint of the inputs it was computed from.
func AnalyticsKey(quizID uint, fingerprint string) string {
	return fmt.Sprintf("%s:%d:%s", analyticsPrefix, quizID, fingerprint)
}

// AnalyticsPattern matches every cached snapshot of a quiz.
func AnalyticsPattern(quizID uint) string {
	return fmt.Sprintf("%s:%d:*", analyticsPrefix, quizID)
}
