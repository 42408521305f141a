package models

import "time"

// Attempt is one immutable, persisted grading outcome. Rows are append-only:
// nothing in this service updates or deletes them, and a (user, assessment)
// pair may accumulate any number of attempts.
type Attempt struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	AssessmentID   string    `json:"assessment_id" gorm:"size:36;index;not null"`
	UserID         string    `json:"user_id" gorm:"size:36;index;not null"`
	Score          int       `json:"score" gorm:"not null"`
	CorrectAnswers int       `json:"correct_answers" gorm:"not null"`
	TotalQuestions int       `json:"total_questions" gorm:"not null"`
	MaxScore       int       `json:"max_score" gorm:"not null"`
	Percentage     float64   `json:"percentage" gorm:"not null"`
	Passed         bool      `json:"passed" gorm:"not null"`
	AttemptedAt    time.Time `json:"attempted_at" gorm:"not null;index"`
}

func (Attempt) TableName() string {
	return "attempts"
}
