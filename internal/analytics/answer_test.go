package analytics

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswer_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input     string
		wantGiven bool
		wantValid bool
		wantIndex int
	}{
		{input: `null`, wantGiven: false},
		{input: `""`, wantGiven: false},
		{input: `2`, wantGiven: true, wantValid: true, wantIndex: 2},
		{input: `0`, wantGiven: true, wantValid: true, wantIndex: 0},
		{input: `2.9`, wantGiven: true, wantValid: true, wantIndex: 2},
		{input: `"3"`, wantGiven: true, wantValid: true, wantIndex: 3},
		{input: `" 1abc"`, wantGiven: true, wantValid: true, wantIndex: 1},
		{input: `"-1"`, wantGiven: true, wantValid: true, wantIndex: -1},
		{input: `"abc"`, wantGiven: true, wantValid: false},
		{input: `true`, wantGiven: true, wantValid: false},
		{input: `{"selected":1}`, wantGiven: true, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var a Answer
			require.NoError(t, json.Unmarshal([]byte(tt.input), &a))

			idx, ok := a.Index()
			assert.Equal(t, tt.wantGiven, a.Given())
			assert.Equal(t, tt.wantValid, ok)
			if tt.wantValid {
				assert.Equal(t, tt.wantIndex, idx)
			}
		})
	}
}

func TestAnswer_DecodeAttemptArray(t *testing.T) {
	var answers []Answer
	require.NoError(t, json.Unmarshal([]byte(`[0, null, "2", "", "x"]`), &answers))
	require.Len(t, answers, 5)

	assert.True(t, answers[0].Matches(0))
	assert.False(t, answers[1].Given())
	assert.True(t, answers[2].Matches(2))
	assert.False(t, answers[3].Given())
	assert.True(t, answers[4].Given())
	assert.False(t, answers[4].Matches(0))
}

func TestAnswer_MarshalJSON(t *testing.T) {
	data, err := json.Marshal([]Answer{Choice(1), Unanswered(), Choice(0)})
	require.NoError(t, err)
	assert.JSONEq(t, `[1, null, 0]`, string(data))

	var decoded []Answer
	require.NoError(t, json.Unmarshal([]byte(`["abc", 3]`), &decoded))
	data, err = json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, `["abc", 3]`, string(data))
}

func TestParseLeadingInt(t *testing.T) {
	n, ok := parseLeadingInt("+7 options")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = parseLeadingInt("-")
	assert.False(t, ok)

	_, ok = parseLeadingInt("")
	assert.False(t, ok)
}

func TestAnswer_StringAnswersRoundTrip(t *testing.T) {
	var decoded []Answer
	require.NoError(t, json.Unmarshal([]byte(`["null", "1e2", "2", 3, true, null]`), &decoded))

	data, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, `["null", "1e2", "2", 3, true, null]`, string(data))

	var again []Answer
	require.NoError(t, json.Unmarshal(data, &again))
	require.Len(t, again, 6)

	assert.True(t, again[0].Given(), "the string \"null\" is a given answer")
	assert.False(t, again[0].Matches(0))

	idx, ok := again[1].Index()
	assert.True(t, ok)
	assert.Equal(t, 1, idx, "\"1e2\" keeps its leading-integer reading")

	assert.True(t, again[2].Matches(2))
	assert.True(t, again[3].Matches(3))
	assert.True(t, again[4].Given())
	assert.False(t, again[5].Given())
}
