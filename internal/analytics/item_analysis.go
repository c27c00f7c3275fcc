package analytics

import (
	"math"
	"sort"
)

const (
	// MinDiscriminationSample is the smallest attempt count for which a
	// discrimination index is computed.
	MinDiscriminationSample = 6
	// MinGroupSize floors the upper and lower cohorts on small samples.
	MinGroupSize = 3

	groupFraction = 0.27
)

// rankByPercentage returns a copy of attempts ordered by percentage, highest
// first. Ties keep their input order.
func rankByPercentage(attempts []Attempt) []Attempt {
	ranked := make([]Attempt, len(attempts))
	copy(ranked, attempts)
	sort.SliceStable(ranked, func(i, j int) bool {
		return percentageOf(ranked[i]) > percentageOf(ranked[j])
	})
	return ranked
}

func percentageOf(a Attempt) int {
	if a.Percentage == nil {
		return 0
	}
	return *a.Percentage
}

// GroupSize is the size of the upper and lower cohorts for n attempts.
func GroupSize(n int) int {
	size := int(math.Floor(float64(n) * groupFraction))
	if size < MinGroupSize {
		return MinGroupSize
	}
	return size
}

// DiscriminationIndex contrasts the correct-response counts of the top and
// bottom 27% of ranked on question idx, rounded to two decimals. With fewer
// than MinDiscriminationSample attempts it is 0. The two cohorts may overlap
// on small samples.
func DiscriminationIndex(ranked []Attempt, idx, correct int) float64 {
	n := len(ranked)
	if n < MinDiscriminationSample {
		return 0
	}

	size := GroupSize(n)
	top := ranked[:size]
	bottom := ranked[n-size:]

	diff := countCorrect(top, idx, correct) - countCorrect(bottom, idx, correct)
	return round2(float64(diff) / float64(size))
}

func countCorrect(attempts []Attempt, idx, correct int) int {
	count := 0
	for _, a := range attempts {
		if r, ok := answerAt(a, idx); ok && r.Matches(correct) {
			count++
		}
	}
	return count
}

// DistractorEffectiveness is the share of incorrect options chosen at least
// once. A question without incorrect options scores 100.
func DistractorEffectiveness(options []OptionAnalytics) int {
	total, used := 0, 0
	for _, opt := range options {
		if opt.IsCorrect {
			continue
		}
		total++
		if opt.Count > 0 {
			used++
		}
	}
	if total == 0 {
		return 100
	}
	return percentOf(used, total)
}

// UnusedDistractors counts incorrect options nobody picked.
func UnusedDistractors(options []OptionAnalytics) int {
	unused := 0
	for _, opt := range options {
		if !opt.IsCorrect && opt.Count == 0 {
			unused++
		}
	}
	return unused
}
