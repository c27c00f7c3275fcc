package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rankedAttempts(rows ...[2]int) []Attempt {
	attempts := make([]Attempt, len(rows))
	for i, row := range rows {
		attempts[i] = completedAttempt(row[0], row[1])
	}
	return rankByPercentage(attempts)
}

func TestGroupSize(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{n: 6, want: 3},
		{n: 11, want: 3},
		{n: 12, want: 3},
		{n: 15, want: 4},
		{n: 20, want: 5},
		{n: 100, want: 27},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GroupSize(tt.n), "n=%d", tt.n)
	}
}

func TestDiscriminationIndex(t *testing.T) {
	tests := []struct {
		name string
		rows [][2]int // percentage, answer to question 0
		want float64
	}{
		{
			name: "below minimum sample",
			rows: [][2]int{{100, 0}, {90, 0}, {80, 0}, {20, 1}, {10, 1}},
			want: 0,
		},
		{
			name: "perfect separation",
			rows: [][2]int{{10, 1}, {100, 0}, {20, 1}, {90, 0}, {30, 1}, {80, 0}},
			want: 1,
		},
		{
			name: "inverse separation",
			rows: [][2]int{{100, 1}, {90, 1}, {80, 1}, {30, 0}, {20, 0}, {10, 0}},
			want: -1,
		},
		{
			name: "partial separation rounds to two decimals",
			rows: [][2]int{{100, 0}, {90, 0}, {80, 1}, {70, 0}, {60, 1}, {50, 1}, {40, 0}, {30, 1}, {20, 1}, {10, 0}},
			want: 0.33,
		},
		{
			name: "unanswered counts as incorrect",
			rows: [][2]int{{100, -1}, {90, -1}, {80, -1}, {30, -1}, {20, -1}, {10, 0}},
			want: -0.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscriminationIndex(rankedAttempts(tt.rows...), 0, 0))
		})
	}
}

func TestDiscriminationIndex_TiesKeepInputOrder(t *testing.T) {
	ranked := rankedAttempts(
		[2]int{50, 0}, [2]int{50, 0}, [2]int{50, 0},
		[2]int{50, 1}, [2]int{50, 1}, [2]int{50, 1},
	)
	assert.Equal(t, 1.0, DiscriminationIndex(ranked, 0, 0))
}

func TestDiscriminationIndex_QuestionOutOfRange(t *testing.T) {
	ranked := rankedAttempts(
		[2]int{100, 0}, [2]int{90, 0}, [2]int{80, 0},
		[2]int{30, 1}, [2]int{20, 1}, [2]int{10, 1},
	)
	assert.Equal(t, 0.0, DiscriminationIndex(ranked, 4, 0))
}

func TestDistractorEffectiveness(t *testing.T) {
	options := func(counts ...int) []OptionAnalytics {
		opts := []OptionAnalytics{{Text: "correct", Count: 5, IsCorrect: true}}
		for _, c := range counts {
			opts = append(opts, OptionAnalytics{Count: c})
		}
		return opts
	}

	assert.Equal(t, 100, DistractorEffectiveness(options(1, 2, 3)))
	assert.Equal(t, 67, DistractorEffectiveness(options(1, 2, 0)))
	assert.Equal(t, 33, DistractorEffectiveness(options(1, 0, 0)))
	assert.Equal(t, 0, DistractorEffectiveness(options(0, 0, 0)))
	assert.Equal(t, 100, DistractorEffectiveness(options()))
}

func TestDistractorEffectiveness_Monotonic(t *testing.T) {
	counts := []int{4, 3, 2, 1, 1}
	previous := 101
	for unused := 0; unused <= len(counts); unused++ {
		opts := []OptionAnalytics{{IsCorrect: true, Count: 1}}
		for i, c := range counts {
			if i < unused {
				c = 0
			}
			opts = append(opts, OptionAnalytics{Count: c})
		}
		score := DistractorEffectiveness(opts)
		assert.Less(t, score, previous)
		previous = score
	}
}

func TestUnusedDistractors(t *testing.T) {
	opts := []OptionAnalytics{
		{IsCorrect: true, Count: 0},
		{Count: 0},
		{Count: 2},
		{Count: 0},
	}
	assert.Equal(t, 2, UnusedDistractors(opts))
}
