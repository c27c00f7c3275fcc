package analytics

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Answer is one positional response inside an attempt. The zero value means
// the question was left unanswered. Stored answers may be numbers, numeric
// strings, null or empty strings, so decoding is lenient: a value counts as
// given unless it is null or "", and it only matches an option when it has a
// leading integer.
type Answer struct {
	index int
	given bool
	valid bool
	raw   string
	// fromString marks raw as the contents of a JSON string rather than a
	// literal token, so it is re-quoted on encode.
	fromString bool
}

// Choice returns an answer selecting option i.
func Choice(i int) Answer {
	return Answer{index: i, given: true, valid: true}
}

// Unanswered returns an empty response.
func Unanswered() Answer {
	return Answer{}
}

// Choices builds an answer slice from option indexes; negative values are
// treated as unanswered.
func Choices(indexes ...int) []Answer {
	answers := make([]Answer, len(indexes))
	for i, idx := range indexes {
		if idx >= 0 {
			answers[i] = Choice(idx)
		}
	}
	return answers
}

// Given reports whether a response was recorded at all.
func (a Answer) Given() bool { return a.given }

// Index returns the selected option index and whether the response parsed as
// an integer.
func (a Answer) Index() (int, bool) {
	return a.index, a.valid
}

// Matches reports whether the response selects option i.
func (a Answer) Matches(i int) bool {
	return a.valid && a.index == i
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	*a = Answer{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		a.given = true
		a.raw = s
		a.fromString = true
		a.index, a.valid = parseLeadingInt(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(trimmed), 64)
		if err != nil {
			return err
		}
		a.given = true
		a.raw = string(trimmed)
		if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) < math.MaxInt32 {
			a.index, a.valid = int(math.Trunc(f)), true
		}
	default:
		// booleans, objects and arrays are responses that match nothing
		a.given = true
		a.raw = string(trimmed)
	}
	return nil
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch {
	case !a.given:
		return []byte("null"), nil
	case a.fromString:
		return json.Marshal(a.raw)
	case a.raw == "":
		return []byte(strconv.Itoa(a.index)), nil
	default:
		return []byte(a.raw), nil
	}
}

// parseLeadingInt reads an optionally signed run of leading digits after
// whitespace, ignoring whatever follows ("2", " 3abc" and "+1" all parse).
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	sign := 1
	if s != "" && (s[0] == '+' || s[0] == '-') {
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return sign * n, true
}
