package analytics

// analyzeQuestion tabulates responses for the question at position idx.
// ranked must be the completed attempts ordered by percentage, best first.
func analyzeQuestion(idx int, q Question, completed, ranked []Attempt) QuestionAnalytics {
	responses := collectResponses(completed, idx)
	total := len(responses)

	correctCount := 0
	for _, r := range responses {
		if r.Matches(q.Correct) {
			correctCount++
		}
	}
	correctPct := percentOf(correctCount, total)
	difficulty, difficultyScore := classifyDifficulty(correctPct)

	optionStats := make([]int, len(q.Options))
	optionAnalytics := make([]OptionAnalytics, len(q.Options))
	for j, text := range q.Options {
		count := 0
		for _, r := range responses {
			if r.Matches(j) {
				count++
			}
		}
		optionStats[j] = count
		optionAnalytics[j] = OptionAnalytics{
			Text:         text,
			Count:        count,
			Percentage:   percentOf(count, total),
			IsCorrect:    j == q.Correct,
			IsDistractor: j != q.Correct && count > 0,
		}
	}

	effectiveness := Effectiveness{
		DiscriminationIndex:     DiscriminationIndex(ranked, idx, q.Correct),
		DistractorEffectiveness: DistractorEffectiveness(optionAnalytics),
		QuestionReliability:     classifyReliability(correctPct),
	}

	var correctText string
	if q.Correct >= 0 && q.Correct < len(q.Options) {
		correctText = q.Options[q.Correct]
	}

	return QuestionAnalytics{
		QuestionNumber:     idx + 1,
		Question:           q.Text,
		Options:            q.Options,
		CorrectAnswer:      q.Correct,
		CorrectAnswerText:  correctText,
		CorrectCount:       correctCount,
		TotalResponses:     total,
		CorrectPercentage:  correctPct,
		DifficultyLevel:    difficulty,
		DifficultyScore:    difficultyScore,
		OptionStats:        optionStats,
		OptionAnalytics:    optionAnalytics,
		Effectiveness:      effectiveness,
		UnattemptedCount:   len(completed) - total,
		PerformanceInsight: Insight(correctPct),
		Recommendations:    Recommendations(correctPct, optionAnalytics, effectiveness.DiscriminationIndex),
	}
}

// collectResponses returns the given answers at position idx. Attempts whose
// answer slice is too short contribute nothing.
func collectResponses(attempts []Attempt, idx int) []Answer {
	responses := make([]Answer, 0, len(attempts))
	for _, a := range attempts {
		if r, ok := answerAt(a, idx); ok {
			responses = append(responses, r)
		}
	}
	return responses
}

func answerAt(a Attempt, idx int) (Answer, bool) {
	if idx < 0 || idx >= len(a.Answers) {
		return Answer{}, false
	}
	r := a.Answers[idx]
	return r, r.Given()
}
