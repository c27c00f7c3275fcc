package generator

import (
	"fmt"
	"regexp"
	"strconv"
)

const systemPrompt = `You are an experienced teacher who writes clear, fair multiple choice quiz questions. You always answer with valid JSON only.`

const userPromptTemplate = `Create exactly %d multiple choice quiz questions based on the following topic: "%s"

For each question, provide:
1. A clear, well-structured question
2. Exactly 4 multiple choice options (A, B, C, D)
3. The correct answer (indicate which option: 0 for A, 1 for B, 2 for C, 3 for D)
4. A brief explanation of why the answer is correct

Format your response as a valid JSON array with this exact structure:
[
    {
        "question": "Question text here?",
        "options": ["Option A", "Option B", "Option C", "Option D"],
        "correctAnswer": 0,
        "explanation": "Brief explanation of why this answer is correct"
    }
]

Guidelines:
- Make questions challenging but fair
- Ensure options are plausible but only one is correct
- Cover different aspects of the topic
- Use clear, professional language
- Avoid trick questions
- Make explanations educational and concise

Return ONLY the JSON array, no additional text.`

func SystemPrompt() string {
	return systemPrompt
}

func BuildUserPrompt(topic string, count int) string {
	return fmt.Sprintf(userPromptTemplate, count, topic)
}

var userPromptHeader = regexp.MustCompile(`^Create exactly (\d+) multiple choice quiz questions based on the following topic: "(.*)"`)

// parseUserPrompt recovers the count and topic from a prompt built by
// BuildUserPrompt. Used by the mock backend.
func parseUserPrompt(prompt string) (string, int) {
	m := userPromptHeader.FindStringSubmatch(prompt)
	if m == nil {
		return "the topic", 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		n = 1
	}
	return m[2], n
}
