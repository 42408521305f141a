package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionSet_ValidEntries(t *testing.T) {
	raw := []byte(`[
		{"id": "q1", "text": "Pick one", "correctOption": "2", "points": 1},
		{"id": "q2", "correctOption": 1, "points": 2},
		{"id": "q3", "correctOption": "opt-b"}
	]`)

	questions, err := ParseQuestionSet(raw)
	require.NoError(t, err)
	require.Len(t, questions, 3)

	assert.Equal(t, Question{ID: "q1", Points: 1, CorrectOption: "2"}, questions[0])
	// Numeric correct options are normalized to their decimal string form.
	assert.Equal(t, Question{ID: "q2", Points: 2, CorrectOption: "1"}, questions[1])
	// Missing points defaults to 1.
	assert.Equal(t, Question{ID: "q3", Points: DefaultPoints, CorrectOption: "opt-b"}, questions[2])
}

func TestParseQuestionSet_DropsEntriesWithoutUsableID(t *testing.T) {
	raw := []byte(`[
		{"correctOption": "1"},
		{"id": 42, "correctOption": "1"},
		{"id": "", "correctOption": "1"},
		{"id": "keep", "correctOption": "1"}
	]`)

	questions, err := ParseQuestionSet(raw)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "keep", questions[0].ID)
}

func TestParseQuestionSet_DropsEntriesWithUnusableCorrectOption(t *testing.T) {
	raw := []byte(`[
		{"id": "missing"},
		{"id": "bool", "correctOption": true},
		{"id": "null", "correctOption": null},
		{"id": "object", "correctOption": {"value": "2"}},
		{"id": "array", "correctOption": ["2"]},
		{"id": "fractional", "correctOption": 2.5},
		{"id": "keep", "correctOption": 2}
	]`)

	questions, err := ParseQuestionSet(raw)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, Question{ID: "keep", Points: 1, CorrectOption: "2"}, questions[0])
}

func TestParseQuestionSet_PointsNeverCauseASkip(t *testing.T) {
	raw := []byte(`[
		{"id": "q1", "correctOption": "a", "points": "five"},
		{"id": "q2", "correctOption": "a", "points": 2.5},
		{"id": "q3", "correctOption": "a", "points": null},
		{"id": "q4", "correctOption": "a", "points": -3},
		{"id": "q5", "correctOption": "a", "points": 0}
	]`)

	questions, err := ParseQuestionSet(raw)
	require.NoError(t, err)
	require.Len(t, questions, 5)

	assert.Equal(t, DefaultPoints, questions[0].Points)
	assert.Equal(t, DefaultPoints, questions[1].Points)
	assert.Equal(t, DefaultPoints, questions[2].Points)
	// Negative points are clamped so a correct answer never lowers the total.
	assert.Equal(t, 0, questions[3].Points)
	assert.Equal(t, 0, questions[4].Points)
}

func TestParseQuestionSet_NonObjectEntriesAreSkipped(t *testing.T) {
	raw := []byte(`[5, "stray", {"id": "q1", "correctOption": "1"}]`)

	questions, err := ParseQuestionSet(raw)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "q1", questions[0].ID)
}

func TestParseQuestionSet_PreservesEntryOrder(t *testing.T) {
	raw := []byte(`[
		{"id": "c", "correctOption": "1"},
		{"id": "broken"},
		{"id": "a", "correctOption": "1"},
		{"id": "b", "correctOption": "1"}
	]`)

	questions, err := ParseQuestionSet(raw)
	require.NoError(t, err)

	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestParseQuestionSet_LargeNumericOptionSurvives(t *testing.T) {
	// float64 round-tripping would corrupt ids above 2^53.
	raw := []byte(`[{"id": "q1", "correctOption": 9007199254740993}]`)

	questions, err := ParseQuestionSet(raw)
	require.NoError(t, err)
	assert.Equal(t, "9007199254740993", questions[0].CorrectOption)
}

func TestParseQuestionSet_SchemaErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
	}{
		{"nil blob", nil},
		{"blank blob", []byte("   \n")},
		{"not json", []byte(`{"id": "q1",`)},
		{"not a list", []byte(`{"id": "q1"}`)},
		{"empty list", []byte(`[]`)},
		{"zero usable questions", []byte(`[{"text": "no id"}, {"id": "x", "correctOption": false}]`)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			questions, err := ParseQuestionSet(tc.raw)
			assert.Nil(t, questions)
			require.Error(t, err)
			assert.True(t, IsSchemaError(err), "expected SchemaError, got %v", err)
			assert.False(t, IsValidationError(err))
		})
	}
}
