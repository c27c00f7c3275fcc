package analytics

// Question is a single multiple-choice item as the engine sees it.
type Question struct {
	Text    string   `json:"question"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

// Quiz is the immutable definition analytics are computed against.
// Question order drives positional matching with attempt answers.
type Quiz struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Attempt is one participant run through a quiz. Score and Percentage are
// pointers so that records missing either value can be told apart from a
// genuine zero.
type Attempt struct {
	ID              uint     `json:"id"`
	QuizID          uint     `json:"quiz_id"`
	ParticipantName string   `json:"participant_name"`
	Answers         []Answer `json:"answers"`
	Score           *int     `json:"score"`
	Percentage      *int     `json:"percentage"`
	Completed       bool     `json:"completed"`
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Reliability string

const (
	ReliabilityGood    Reliability = "Good"
	ReliabilityTooHard Reliability = "Too Hard"
	ReliabilityTooEasy Reliability = "Too Easy"
)

type InsightLevel string

const (
	InsightExcellent   InsightLevel = "excellent"
	InsightGood        InsightLevel = "good"
	InsightModerate    InsightLevel = "moderate"
	InsightChallenging InsightLevel = "challenging"
	InsightDifficult   InsightLevel = "difficult"
)

// Snapshot is the full derived analytics view of a quiz. HighestScore and
// LowestScore hold percentages, not raw point scores.
type Snapshot struct {
	QuizTitle          string              `json:"quiz_title"`
	TotalAttempts      int                 `json:"total_attempts"`
	AveragePercentage  int                 `json:"average_percentage"`
	HighestScore       int                 `json:"highest_score"`
	LowestScore        int                 `json:"lowest_score"`
	PerformanceMetrics PerformanceMetrics  `json:"performance_metrics"`
	QuestionAnalytics  []QuestionAnalytics `json:"question_analytics"`
}

type PerformanceMetrics struct {
	TotalQuestions         int                     `json:"total_questions"`
	PassRate               int                     `json:"pass_rate"`
	ExcellentRate          int                     `json:"excellent_rate"`
	AverageTimePerQuestion int                     `json:"average_time_per_question"`
	DifficultyDistribution DifficultyDistribution  `json:"difficulty_distribution"`
	QuestionEffectiveness  []QuestionEffectiveness `json:"question_effectiveness"`
}

type DifficultyDistribution struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

type QuestionEffectiveness struct {
	QuestionNumber      int         `json:"question_number"`
	Difficulty          Difficulty  `json:"difficulty"`
	Effectiveness       Reliability `json:"effectiveness"`
	DiscriminationIndex float64     `json:"discrimination_index"`
}

type QuestionAnalytics struct {
	QuestionNumber     int                `json:"question_number"`
	Question           string             `json:"question"`
	Options            []string           `json:"options"`
	CorrectAnswer      int                `json:"correct_answer"`
	CorrectAnswerText  string             `json:"correct_answer_text"`
	CorrectCount       int                `json:"correct_count"`
	TotalResponses     int                `json:"total_responses"`
	CorrectPercentage  int                `json:"correct_percentage"`
	DifficultyLevel    Difficulty         `json:"difficulty_level"`
	DifficultyScore    int                `json:"difficulty_score"`
	OptionStats        []int              `json:"option_stats"`
	OptionAnalytics    []OptionAnalytics  `json:"option_analytics"`
	Effectiveness      Effectiveness      `json:"effectiveness"`
	UnattemptedCount   int                `json:"unattempted_count"`
	PerformanceInsight PerformanceInsight `json:"performance_insight"`
	Recommendations    []string           `json:"recommendations"`
}

type OptionAnalytics struct {
	Text         string `json:"text"`
	Count        int    `json:"count"`
	Percentage   int    `json:"percentage"`
	IsCorrect    bool   `json:"is_correct"`
	IsDistractor bool   `json:"is_distractor"`
}

type Effectiveness struct {
	DiscriminationIndex     float64     `json:"discrimination_index"`
	DistractorEffectiveness int         `json:"distractor_effectiveness"`
	QuestionReliability     Reliability `json:"question_reliability"`
}

type PerformanceInsight struct {
	Level   InsightLevel `json:"level"`
	Message string       `json:"message"`
}
