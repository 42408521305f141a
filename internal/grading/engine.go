// Package grading scores a learner's submission against an assessment's
// authored question definition blob. Parsing is tolerant of malformed
// entries, matching is strict, and the whole computation is pure: the same
// definition and submission always produce an identical outcome.
package grading

import "math"

// DefaultPassThreshold is the percentage at or above which an outcome is a
// pass, unless the engine is constructed with a different threshold.
const DefaultPassThreshold = 70.0

// Definition carries the grading-relevant slice of a stored assessment.
// MaxScore is the authoritative ceiling for percentage normalization even
// when the question points sum elsewhere; misconfigured ceilings are a data
// quality issue for the authoring side, not clamped here.
type Definition struct {
	RawQuestions []byte
	MaxScore     int
}

// SubmittedAnswer is one (question, selected option) pair from a learner.
type SubmittedAnswer struct {
	QuestionID       string `json:"question_id" validate:"required"`
	SelectedOptionID string `json:"selected_option_id"`
}

// Submission is a learner's full set of selected answers for one attempt.
type Submission struct {
	AssessmentID     string
	UserID           string
	SubmittedAnswers []SubmittedAnswer
}

// Outcome is the deterministic result of grading one submission.
type Outcome struct {
	TotalScore       int     `json:"total_score"`
	TotalQuestions   int     `json:"total_questions"`
	CorrectAnswers   int     `json:"correct_answers"`
	MaxPossibleScore int     `json:"max_possible_score"`
	Percentage       float64 `json:"percentage"`
	IsPassed         bool    `json:"is_passed"`
}

// Engine grades submissions. It holds no mutable state and is safe for
// concurrent use by any number of callers.
type Engine struct {
	passThreshold float64
}

func NewEngine() *Engine {
	return NewEngineWithThreshold(DefaultPassThreshold)
}

func NewEngineWithThreshold(threshold float64) *Engine {
	return &Engine{passThreshold: threshold}
}

// Grade parses the definition's question blob, indexes the submission and
// scores each parsed question in parse order.
//
// An answer is correct only when the selected option id is byte-for-byte
// equal to the question's correct option. Option ids are machine-generated
// keys, so trimming or case-folding would mask authoring bugs rather than
// help anyone; "A" does not match "a". Unanswered questions carry no
// penalty and dropped entries count toward nothing.
//
// Errors are *SchemaError (unusable definition) or *ValidationError (empty
// submission), both surfaced as-is. Grade performs no I/O and never touches
// a clock; persistence is the caller's concern.
func (e *Engine) Grade(definition Definition, submission Submission) (Outcome, error) {
	questions, err := ParseQuestionSet(definition.RawQuestions)
	if err != nil {
		return Outcome{}, err
	}

	index, err := BuildAnswerIndex(submission)
	if err != nil {
		return Outcome{}, err
	}

	outcome := Outcome{
		TotalQuestions:   len(questions),
		MaxPossibleScore: definition.MaxScore,
	}

	for _, question := range questions {
		selected, answered := index[question.ID]
		if !answered {
			continue
		}
		if selected == question.CorrectOption {
			outcome.CorrectAnswers++
			outcome.TotalScore += question.Points
		}
	}

	if definition.MaxScore > 0 {
		outcome.Percentage = round2(float64(outcome.TotalScore) / float64(definition.MaxScore) * 100)
	}
	outcome.IsPassed = outcome.Percentage >= e.passThreshold

	return outcome, nil
}

// PassThreshold reports the configured pass percentage.
func (e *Engine) PassThreshold() float64 {
	return e.passThreshold
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
