package postgres

import (
	"github.com/edusync/grading-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	assessment repositories.AssessmentRepository
	attempt    repositories.AttemptRepository
	course     repositories.CourseRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		assessment: NewAssessmentPostgreSQL(db),
		attempt:    NewAttemptPostgreSQL(db),
		course:     NewCoursePostgreSQL(db),
	}
}

func (r *repository) Assessment() repositories.AssessmentRepository {
	return r.assessment
}

func (r *repository) Attempt() repositories.AttemptRepository {
	return r.attempt
}

func (r *repository) Course() repositories.CourseRepository {
	return r.course
}
