package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var twoQuestionBlob = []byte(`[
	{"id": "q1", "correctOption": "2", "points": 1},
	{"id": "q2", "correctOption": 1, "points": 2}
]`)

func twoQuestionDefinition() Definition {
	return Definition{
		RawQuestions: twoQuestionBlob,
		MaxScore:     3,
	}
}

func submissionWith(answers ...SubmittedAnswer) Submission {
	return Submission{
		AssessmentID:     "a1",
		UserID:           "u1",
		SubmittedAnswers: answers,
	}
}

func TestEngine_Grade_AllCorrect(t *testing.T) {
	engine := NewEngine()

	outcome, err := engine.Grade(twoQuestionDefinition(), submissionWith(
		SubmittedAnswer{QuestionID: "q1", SelectedOptionID: "2"},
		SubmittedAnswer{QuestionID: "q2", SelectedOptionID: "1"},
	))
	require.NoError(t, err)

	assert.Equal(t, Outcome{
		TotalScore:       3,
		TotalQuestions:   2,
		CorrectAnswers:   2,
		MaxPossibleScore: 3,
		Percentage:       100.0,
		IsPassed:         true,
	}, outcome)
}

func TestEngine_Grade_UnansweredQuestionCarriesNoPenalty(t *testing.T) {
	engine := NewEngine()

	outcome, err := engine.Grade(twoQuestionDefinition(), submissionWith(
		SubmittedAnswer{QuestionID: "q1", SelectedOptionID: "2"},
	))
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.TotalScore)
	assert.Equal(t, 1, outcome.CorrectAnswers)
	assert.Equal(t, 2, outcome.TotalQuestions)
	assert.Equal(t, 33.33, outcome.Percentage)
	assert.False(t, outcome.IsPassed)
}

func TestEngine_Grade_WrongAnswerScoresNothing(t *testing.T) {
	engine := NewEngine()

	outcome, err := engine.Grade(twoQuestionDefinition(), submissionWith(
		SubmittedAnswer{QuestionID: "q1", SelectedOptionID: "3"},
		SubmittedAnswer{QuestionID: "q2", SelectedOptionID: "2"},
	))
	require.NoError(t, err)

	assert.Equal(t, 0, outcome.TotalScore)
	assert.Equal(t, 0, outcome.CorrectAnswers)
	assert.Equal(t, 2, outcome.TotalQuestions)
	assert.Equal(t, 0.0, outcome.Percentage)
	assert.False(t, outcome.IsPassed)
}

func TestEngine_Grade_MatchingIsExact(t *testing.T) {
	definition := Definition{
		RawQuestions: []byte(`[{"id": "q1", "correctOption": "A", "points": 1}]`),
		MaxScore:     1,
	}
	engine := NewEngine()

	cases := []struct {
		name     string
		selected string
		correct  bool
	}{
		{"exact match", "A", true},
		{"case differs", "a", false},
		{"leading space", " A", false},
		{"trailing space", "A ", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome, err := engine.Grade(definition, submissionWith(
				SubmittedAnswer{QuestionID: "q1", SelectedOptionID: tc.selected},
			))
			require.NoError(t, err)
			assert.Equal(t, tc.correct, outcome.CorrectAnswers == 1)
		})
	}
}

func TestEngine_Grade_DroppedQuestionsShrinkTheDenominator(t *testing.T) {
	definition := Definition{
		RawQuestions: []byte(`[
			{"id": "q1", "correctOption": "1", "points": 1},
			{"id": "q2", "text": "correctOption went missing"},
			{"id": "q3", "correctOption": "1", "points": 1}
		]`),
		MaxScore: 2,
	}
	engine := NewEngine()

	outcome, err := engine.Grade(definition, submissionWith(
		SubmittedAnswer{QuestionID: "q1", SelectedOptionID: "1"},
		SubmittedAnswer{QuestionID: "q2", SelectedOptionID: "1"},
		SubmittedAnswer{QuestionID: "q3", SelectedOptionID: "1"},
	))
	require.NoError(t, err)

	// q2 contributes to neither numerator nor denominator.
	assert.Equal(t, 2, outcome.TotalQuestions)
	assert.Equal(t, 2, outcome.CorrectAnswers)
	assert.Equal(t, 2, outcome.TotalScore)
	assert.Equal(t, 100.0, outcome.Percentage)
}

func TestEngine_Grade_EmptySubmissionFails(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Grade(twoQuestionDefinition(), submissionWith())
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestEngine_Grade_UnusableDefinitionFails(t *testing.T) {
	engine := NewEngine()
	submission := submissionWith(SubmittedAnswer{QuestionID: "q1", SelectedOptionID: "1"})

	for _, raw := range [][]byte{nil, []byte(`[]`), []byte(`not json`)} {
		_, err := engine.Grade(Definition{RawQuestions: raw, MaxScore: 1}, submission)
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
	}
}

func TestEngine_Grade_ZeroMaxScoreYieldsZeroPercentage(t *testing.T) {
	definition := twoQuestionDefinition()
	definition.MaxScore = 0
	engine := NewEngine()

	outcome, err := engine.Grade(definition, submissionWith(
		SubmittedAnswer{QuestionID: "q1", SelectedOptionID: "2"},
		SubmittedAnswer{QuestionID: "q2", SelectedOptionID: "1"},
	))
	require.NoError(t, err)

	assert.Equal(t, 3, outcome.TotalScore)
	assert.Equal(t, 0.0, outcome.Percentage)
	assert.False(t, outcome.IsPassed)
}

func TestEngine_Grade_ThresholdIsInclusive(t *testing.T) {
	// 7 of 10 points is exactly 70%.
	definition := Definition{
		RawQuestions: []byte(`[
			{"id": "q1", "correctOption": "1", "points": 7},
			{"id": "q2", "correctOption": "1", "points": 3}
		]`),
		MaxScore: 10,
	}
	engine := NewEngine()

	outcome, err := engine.Grade(definition, submissionWith(
		SubmittedAnswer{QuestionID: "q1", SelectedOptionID: "1"},
		SubmittedAnswer{QuestionID: "q2", SelectedOptionID: "9"},
	))
	require.NoError(t, err)

	assert.Equal(t, 70.0, outcome.Percentage)
	assert.True(t, outcome.IsPassed)
}

func TestEngine_Grade_CustomThreshold(t *testing.T) {
	engine := NewEngineWithThreshold(40.0)

	outcome, err := engine.Grade(twoQuestionDefinition(), submissionWith(
		SubmittedAnswer{QuestionID: "q2", SelectedOptionID: "1"},
	))
	require.NoError(t, err)

	assert.Equal(t, 66.67, outcome.Percentage)
	assert.True(t, outcome.IsPassed)
}

func TestEngine_Grade_DuplicateAnswersLastWriteWins(t *testing.T) {
	engine := NewEngine()

	outcome, err := engine.Grade(twoQuestionDefinition(), submissionWith(
		SubmittedAnswer{QuestionID: "q1", SelectedOptionID: "2"},
		SubmittedAnswer{QuestionID: "q1", SelectedOptionID: "wrong"},
	))
	require.NoError(t, err)

	assert.Equal(t, 0, outcome.CorrectAnswers)
}

func TestEngine_Grade_IsDeterministic(t *testing.T) {
	engine := NewEngine()
	definition := twoQuestionDefinition()
	submission := submissionWith(
		SubmittedAnswer{QuestionID: "q2", SelectedOptionID: "1"},
		SubmittedAnswer{QuestionID: "q1", SelectedOptionID: "2"},
	)

	first, err := engine.Grade(definition, submission)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		again, err := engine.Grade(definition, submission)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
