package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/edusync/grading-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type AssessmentFilters struct {
	CourseID  *string `json:"course_id"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
	SortBy    string  `json:"sort_by"`    // "created_at", "title"
	SortOrder string  `json:"sort_order"` // "asc", "desc"
}

type AttemptFilters struct {
	AssessmentID *string    `json:"assessment_id"`
	UserID       *string    `json:"user_id"`
	Passed       *bool      `json:"passed"`
	DateFrom     *time.Time `json:"date_from"`
	DateTo       *time.Time `json:"date_to"`
	Limit        int        `json:"limit"`
	Offset       int        `json:"offset"`
	SortBy       string     `json:"sort_by"`    // "attempted_at", "percentage"
	SortOrder    string     `json:"sort_order"` // "asc", "desc"
}

type CourseFilters struct {
	InstructorID *string `json:"instructor_id"`
	Limit        int     `json:"limit"`
	Offset       int     `json:"offset"`
	SortBy       string  `json:"sort_by"`
	SortOrder    string  `json:"sort_order"`
}

// ===== REPOSITORY INTERFACES =====

type AssessmentRepository interface {
	Create(ctx context.Context, assessment *models.Assessment) error
	GetByID(ctx context.Context, id string) (*models.Assessment, error)
	GetByCourse(ctx context.Context, courseID string) ([]*models.Assessment, error)
	List(ctx context.Context, filters AssessmentFilters) ([]*models.Assessment, int64, error)
	Update(ctx context.Context, assessment *models.Assessment) error
	Delete(ctx context.Context, id string) error
}

// AttemptRepository persists grading outcomes. Attempts are append-only,
// which is why the interface has no Update or Delete.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *models.Attempt) error
	GetByID(ctx context.Context, id string) (*models.Attempt, error)
	List(ctx context.Context, filters AttemptFilters) ([]*models.Attempt, int64, error)
	GetByAssessment(ctx context.Context, assessmentID string, filters AttemptFilters) ([]*models.Attempt, int64, error)
	GetByUser(ctx context.Context, userID string, filters AttemptFilters) ([]*models.Attempt, int64, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error

	// Enrollment management
	Enroll(ctx context.Context, enrollment *models.Enrollment) error
	EnrollmentExists(ctx context.Context, studentID, courseID string) (bool, error)
	CountEnrollments(ctx context.Context, courseID string) (int64, error)
	GetEnrolledCourses(ctx context.Context, studentID string) ([]*models.Course, error)

	// Course materials
	AddMaterial(ctx context.Context, material *models.CourseMaterial) error
	GetMaterials(ctx context.Context, courseID string) ([]*models.CourseMaterial, error)
}

// Repository aggregates the per-entity repositories behind one dependency.
type Repository interface {
	Assessment() AssessmentRepository
	Attempt() AttemptRepository
	Course() CourseRepository
}

// IsNotFoundError checks if error represents a missing record
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
