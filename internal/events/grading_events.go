package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents different types of grading events
type EventType string

const (
	// Assessment lifecycle events
	EventAssessmentCreated EventType = "assessment.created"
	EventAssessmentUpdated EventType = "assessment.updated"
	EventAssessmentDeleted EventType = "assessment.deleted"

	// Attempt events
	EventAttemptRecorded EventType = "attempt.recorded"

	// Enrollment events
	EventStudentEnrolled EventType = "enrollment.created"
)

const eventSource = "grading-service"

// Event is the base envelope for all events published by this service
type Event struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Assessment event payloads

type AssessmentLifecycleEvent struct {
	AssessmentID string `json:"assessment_id"`
	CourseID     string `json:"course_id"`
	Title        string `json:"title"`
	MaxScore     int    `json:"max_score"`
}

// Attempt event payload

type AttemptRecordedEvent struct {
	AttemptID      string    `json:"attempt_id"`
	AssessmentID   string    `json:"assessment_id"`
	UserID         string    `json:"user_id"`
	Score          int       `json:"score"`
	MaxScore       int       `json:"max_score"`
	Percentage     float64   `json:"percentage"`
	Passed         bool      `json:"passed"`
	CorrectAnswers int       `json:"correct_answers"`
	TotalQuestions int       `json:"total_questions"`
	AttemptedAt    time.Time `json:"attempted_at"`
}

// Enrollment event payload

type StudentEnrolledEvent struct {
	CourseID   string    `json:"course_id"`
	StudentID  string    `json:"student_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// Event factory functions

func NewAssessmentEvent(eventType EventType, assessmentID, courseID, title string, maxScore int) *Event {
	return &Event{
		ID:        generateEventID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   "1.0",
		Data: AssessmentLifecycleEvent{
			AssessmentID: assessmentID,
			CourseID:     courseID,
			Title:        title,
			MaxScore:     maxScore,
		},
	}
}

func NewAttemptRecordedEvent(attemptID, assessmentID, userID string, score, maxScore int, percentage float64, passed bool, correct, total int, attemptedAt time.Time) *Event {
	return &Event{
		ID:        generateEventID(),
		Type:      EventAttemptRecorded,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   "1.0",
		Data: AttemptRecordedEvent{
			AttemptID:      attemptID,
			AssessmentID:   assessmentID,
			UserID:         userID,
			Score:          score,
			MaxScore:       maxScore,
			Percentage:     percentage,
			Passed:         passed,
			CorrectAnswers: correct,
			TotalQuestions: total,
			AttemptedAt:    attemptedAt,
		},
	}
}

func NewStudentEnrolledEvent(courseID, studentID string, enrolledAt time.Time) *Event {
	return &Event{
		ID:        generateEventID(),
		Type:      EventStudentEnrolled,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   "1.0",
		Data: StudentEnrolledEvent{
			CourseID:   courseID,
			StudentID:  studentID,
			EnrolledAt: enrolledAt,
		},
	}
}

func generateEventID() string {
	return uuid.NewString()
}
