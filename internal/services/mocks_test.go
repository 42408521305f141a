package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/edusync/grading-service/internal/cache"
	"github.com/edusync/grading-service/internal/models"
	"github.com/edusync/grading-service/internal/repositories"
)

// ===== REPOSITORY MOCKS =====

type MockAssessmentRepository struct {
	mock.Mock
}

func (m *MockAssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) GetByCourse(ctx context.Context, courseID string) ([]*models.Assessment, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Assessment), args.Error(1)
}

func (m *MockAssessmentRepository) List(ctx context.Context, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Assessment), args.Get(1).(int64), args.Error(2)
}

func (m *MockAssessmentRepository) Update(ctx context.Context, assessment *models.Assessment) error {
	args := m.Called(ctx, assessment)
	return args.Error(0)
}

func (m *MockAssessmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Create(ctx context.Context, attempt *models.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) GetByID(ctx context.Context, id string) (*models.Attempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) List(ctx context.Context, filters repositories.AttemptFilters) ([]*models.Attempt, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Attempt), args.Get(1).(int64), args.Error(2)
}

func (m *MockAttemptRepository) GetByAssessment(ctx context.Context, assessmentID string, filters repositories.AttemptFilters) ([]*models.Attempt, int64, error) {
	args := m.Called(ctx, assessmentID, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Attempt), args.Get(1).(int64), args.Error(2)
}

func (m *MockAttemptRepository) GetByUser(ctx context.Context, userID string, filters repositories.AttemptFilters) ([]*models.Attempt, int64, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Attempt), args.Get(1).(int64), args.Error(2)
}

type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseRepository) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.Course), args.Get(1).(int64), args.Error(2)
}

func (m *MockCourseRepository) Update(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCourseRepository) Enroll(ctx context.Context, enrollment *models.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockCourseRepository) EnrollmentExists(ctx context.Context, studentID, courseID string) (bool, error) {
	args := m.Called(ctx, studentID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCourseRepository) CountEnrollments(ctx context.Context, courseID string) (int64, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCourseRepository) GetEnrolledCourses(ctx context.Context, studentID string) ([]*models.Course, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}

func (m *MockCourseRepository) AddMaterial(ctx context.Context, material *models.CourseMaterial) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockCourseRepository) GetMaterials(ctx context.Context, courseID string) ([]*models.CourseMaterial, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CourseMaterial), args.Error(1)
}

// MockRepository aggregates the per-entity mocks
type MockRepository struct {
	assessment *MockAssessmentRepository
	attempt    *MockAttemptRepository
	course     *MockCourseRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		assessment: new(MockAssessmentRepository),
		attempt:    new(MockAttemptRepository),
		course:     new(MockCourseRepository),
	}
}

func (m *MockRepository) Assessment() repositories.AssessmentRepository { return m.assessment }
func (m *MockRepository) Attempt() repositories.AttemptRepository       { return m.attempt }
func (m *MockRepository) Course() repositories.CourseRepository         { return m.course }

// ===== CACHE MOCK =====

type noopCache struct{}

func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (noopCache) Get(ctx context.Context, key string, dest interface{}) error {
	return cache.ErrCacheMiss
}
func (noopCache) Delete(ctx context.Context, key string) error      { return nil }
func (noopCache) DeletePattern(ctx context.Context, p string) error { return nil }
