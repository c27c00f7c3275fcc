// Package analytics computes classical test theory statistics for a quiz from
// its recorded attempts. Everything here is a pure function of its inputs.
package analytics

import "math"

const (
	UnknownQuizTitle = "Unknown Quiz"

	PassThreshold      = 60
	ExcellentThreshold = 80
)

// ComputeAnalytics derives the analytics snapshot for quiz from attempts.
// A nil quiz or an attempt set with no usable records yields a zeroed
// snapshot; malformed attempts are skipped, never reported.
func ComputeAnalytics(quiz *Quiz, attempts []Attempt) Snapshot {
	completed := FilterCompleted(attempts)
	if quiz == nil || len(completed) == 0 {
		return emptySnapshot(quiz)
	}

	percentages := make([]int, len(completed))
	for i, a := range completed {
		percentages[i] = *a.Percentage
	}

	snapshot := Snapshot{
		QuizTitle:         quiz.Title,
		TotalAttempts:     len(completed),
		AveragePercentage: roundHalfUp(mean(percentages)),
		HighestScore:      maxInt(percentages),
		LowestScore:       minInt(percentages),
		PerformanceMetrics: PerformanceMetrics{
			TotalQuestions:        len(quiz.Questions),
			PassRate:              rateAtLeast(percentages, PassThreshold),
			ExcellentRate:         rateAtLeast(percentages, ExcellentThreshold),
			QuestionEffectiveness: make([]QuestionEffectiveness, 0, len(quiz.Questions)),
		},
		QuestionAnalytics: make([]QuestionAnalytics, 0, len(quiz.Questions)),
	}

	ranked := rankByPercentage(completed)
	metrics := &snapshot.PerformanceMetrics

	for i, q := range quiz.Questions {
		qa := analyzeQuestion(i, q, completed, ranked)

		switch qa.DifficultyLevel {
		case DifficultyEasy:
			metrics.DifficultyDistribution.Easy++
		case DifficultyMedium:
			metrics.DifficultyDistribution.Medium++
		default:
			metrics.DifficultyDistribution.Hard++
		}

		metrics.QuestionEffectiveness = append(metrics.QuestionEffectiveness, QuestionEffectiveness{
			QuestionNumber:      qa.QuestionNumber,
			Difficulty:          qa.DifficultyLevel,
			Effectiveness:       qa.Effectiveness.QuestionReliability,
			DiscriminationIndex: qa.Effectiveness.DiscriminationIndex,
		})
		snapshot.QuestionAnalytics = append(snapshot.QuestionAnalytics, qa)
	}

	return snapshot
}

// FilterCompleted keeps attempts that are completed, carry both a score and a
// percentage, and have at least one answer slot.
func FilterCompleted(attempts []Attempt) []Attempt {
	completed := make([]Attempt, 0, len(attempts))
	for _, a := range attempts {
		if !a.Completed || a.Score == nil || a.Percentage == nil || len(a.Answers) == 0 {
			continue
		}
		completed = append(completed, a)
	}
	return completed
}

func emptySnapshot(quiz *Quiz) Snapshot {
	title := UnknownQuizTitle
	if quiz != nil && quiz.Title != "" {
		title = quiz.Title
	}
	return Snapshot{
		QuizTitle: title,
		PerformanceMetrics: PerformanceMetrics{
			QuestionEffectiveness: []QuestionEffectiveness{},
		},
		QuestionAnalytics: []QuestionAnalytics{},
	}
}

func rateAtLeast(percentages []int, threshold int) int {
	hits := 0
	for _, p := range percentages {
		if p >= threshold {
			hits++
		}
	}
	return percentOf(hits, len(percentages))
}

// percentOf returns round(100 * part / whole), or 0 for an empty whole.
func percentOf(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return roundHalfUp(float64(part) / float64(whole) * 100)
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func maxInt(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func minInt(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
