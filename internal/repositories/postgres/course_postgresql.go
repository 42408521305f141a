package postgres

import (
	"context"

	"github.com/edusync/grading-service/internal/models"
	"github.com/edusync/grading-service/internal/repositories"
	"gorm.io/gorm"
)

type CoursePostgreSQL struct {
	db *gorm.DB
}

func NewCoursePostgreSQL(db *gorm.DB) repositories.CourseRepository {
	return &CoursePostgreSQL{db: db}
}

func (c CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	return c.db.WithContext(ctx).Create(course).Error
}

func (c CoursePostgreSQL) GetByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := c.db.WithContext(ctx).
		Preload("Materials").
		First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (c CoursePostgreSQL) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	var courses []*models.Course
	var total int64

	query := c.db.WithContext(ctx).Model(&models.Course{})
	if filters.InstructorID != nil {
		query = query.Where("instructor_id = ?", *filters.InstructorID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, "created_at", filters.Limit, filters.Offset)

	if err := query.Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func (c CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	return c.db.WithContext(ctx).Save(course).Error
}

func (c CoursePostgreSQL) Delete(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Delete(&models.Course{}, "id = ?", id).Error
}

// ===== ENROLLMENT MANAGEMENT =====

func (c CoursePostgreSQL) Enroll(ctx context.Context, enrollment *models.Enrollment) error {
	return c.db.WithContext(ctx).Create(enrollment).Error
}

func (c CoursePostgreSQL) EnrollmentExists(ctx context.Context, studentID, courseID string) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c CoursePostgreSQL) CountEnrollments(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (c CoursePostgreSQL) GetEnrolledCourses(ctx context.Context, studentID string) ([]*models.Course, error) {
	var courses []*models.Course
	if err := c.db.WithContext(ctx).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.student_id = ?", studentID).
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

// ===== COURSE MATERIALS =====

func (c CoursePostgreSQL) AddMaterial(ctx context.Context, material *models.CourseMaterial) error {
	return c.db.WithContext(ctx).Create(material).Error
}

func (c CoursePostgreSQL) GetMaterials(ctx context.Context, courseID string) ([]*models.CourseMaterial, error) {
	var materials []*models.CourseMaterial
	if err := c.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("uploaded_at desc").
		Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}
