package grading

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// DefaultPoints is awarded for a question whose points field is absent or
// not an integer.
const DefaultPoints = 1

// Question is one validated entry from an assessment's question definition
// blob. Only the fields grading needs survive parsing; option text, question
// text and any authoring metadata are ignored.
type Question struct {
	ID            string `json:"id"`
	Points        int    `json:"points"`
	CorrectOption string `json:"correct_option"`
}

// ParseQuestionSet decodes a stored question definition blob into validated
// questions, in blob order.
//
// Individual malformed entries are dropped silently; the parse as a whole
// fails with *SchemaError only when the blob is empty, is not a JSON list,
// or yields zero usable questions after filtering.
func ParseQuestionSet(raw []byte) ([]Question, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &SchemaError{Reason: "question data is empty"}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &SchemaError{Reason: "question data is not a valid JSON list", Err: err}
	}
	if len(entries) == 0 {
		return nil, &SchemaError{Reason: "assessment has no questions"}
	}

	questions := make([]Question, 0, len(entries))
	for _, entry := range entries {
		question, ok := parseQuestion(entry)
		if !ok {
			continue
		}
		questions = append(questions, question)
	}

	if len(questions) == 0 {
		return nil, &SchemaError{Reason: "no usable questions after filtering"}
	}
	return questions, nil
}

// parseQuestion validates a single raw entry. Each expected field is
// extracted and checked independently rather than trusting the blob's shape:
// authored content routinely arrives with missing or retyped fields.
func parseQuestion(raw json.RawMessage) (Question, bool) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil {
		// Entry is not an object (bare number, string, nested list).
		return Question{}, false
	}

	id, ok := fields["id"].(string)
	if !ok || id == "" {
		return Question{}, false
	}

	correct, ok := normalizeCorrectOption(fields["correctOption"])
	if !ok {
		return Question{}, false
	}

	return Question{
		ID:            id,
		Points:        parsePoints(fields["points"]),
		CorrectOption: correct,
	}, true
}

// parsePoints reads the points field as a non-negative integer. Absent,
// non-numeric or non-integral values fall back to DefaultPoints; negative
// integers are clamped to 0 so a correct answer can never lower the total.
func parsePoints(value any) int {
	number, ok := value.(json.Number)
	if !ok {
		return DefaultPoints
	}
	points, err := strconv.ParseInt(number.String(), 10, 64)
	if err != nil {
		return DefaultPoints
	}
	if points < 0 {
		return 0
	}
	return int(points)
}

// normalizeCorrectOption accepts a string verbatim or an integral number
// converted to its base-10 string form. Anything else disqualifies the
// entry.
func normalizeCorrectOption(value any) (string, bool) {
	switch option := value.(type) {
	case string:
		return option, true
	case json.Number:
		n, err := strconv.ParseInt(option.String(), 10, 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	default:
		return "", false
	}
}
