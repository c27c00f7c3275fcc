package analytics

import "fmt"

const lowDiscrimination = 0.2

func classifyDifficulty(correctPct int) (Difficulty, int) {
	switch {
	case correctPct >= 80:
		return DifficultyEasy, 1
	case correctPct >= 60:
		return DifficultyMedium, 2
	default:
		return DifficultyHard, 3
	}
}

func classifyReliability(correctPct int) Reliability {
	switch {
	case correctPct >= 20 && correctPct <= 90:
		return ReliabilityGood
	case correctPct < 20:
		return ReliabilityTooHard
	default:
		return ReliabilityTooEasy
	}
}

var insightBands = []struct {
	min     int
	insight PerformanceInsight
}{
	{90, PerformanceInsight{InsightExcellent, "Very high success rate - consider making it slightly more challenging"}},
	{80, PerformanceInsight{InsightGood, "Good performance - well-balanced question"}},
	{60, PerformanceInsight{InsightModerate, "Moderate difficulty - review if content was covered adequately"}},
	{40, PerformanceInsight{InsightChallenging, "Challenging question - ensure content clarity and distractors"}},
}

var difficultInsight = PerformanceInsight{InsightDifficult, "Very challenging - review question clarity and teaching material"}

// Insight maps a correct percentage to its qualitative band.
func Insight(correctPct int) PerformanceInsight {
	for _, band := range insightBands {
		if correctPct >= band.min {
			return band.insight
		}
	}
	return difficultInsight
}

// Recommendations lists every advisory rule that applies to a question, in a
// fixed order.
func Recommendations(correctPct int, options []OptionAnalytics, discrimination float64) []string {
	recs := []string{}

	if correctPct < 40 {
		recs = append(recs,
			"Consider revising question wording for clarity",
			"Review if this topic was adequately covered in learning materials")
	}
	if correctPct > 90 {
		recs = append(recs, "Question may be too easy - consider adding complexity")
	}
	if unused := UnusedDistractors(options); unused > 0 {
		recs = append(recs, fmt.Sprintf("%d distractor(s) were never selected - consider revising", unused))
	}
	if discrimination < lowDiscrimination {
		recs = append(recs, "Low discrimination - question may not effectively distinguish between high/low performers")
	}

	return recs
}
