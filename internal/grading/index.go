package grading

// BuildAnswerIndex maps a submission's answers by question id for O(1)
// lookup during grading.
//
// A submission with no answers at all fails with *ValidationError: a learner
// who answered nothing is an input error, not a zero score. Duplicate
// question ids are resolved last-write-wins in submission order.
func BuildAnswerIndex(submission Submission) (map[string]string, error) {
	if len(submission.SubmittedAnswers) == 0 {
		return nil, &ValidationError{Field: "submitted_answers", Message: "no answers were submitted"}
	}

	index := make(map[string]string, len(submission.SubmittedAnswers))
	for _, answer := range submission.SubmittedAnswers {
		index[answer.QuestionID] = answer.SelectedOptionID
	}
	return index, nil
}
