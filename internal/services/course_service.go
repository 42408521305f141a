package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edusync/grading-service/internal/events"
	"github.com/edusync/grading-service/internal/models"
	"github.com/edusync/grading-service/internal/repositories"
	"github.com/edusync/grading-service/internal/utils"
)

// CourseService manages courses, enrollments and course materials
type CourseService interface {
	Create(ctx context.Context, req *CreateCourseRequest) (*models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error)
	Update(ctx context.Context, id string, req *UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id string) error

	Enroll(ctx context.Context, courseID, studentID string) error
	GetEnrolledCourses(ctx context.Context, studentID string) ([]*models.Course, error)

	AddMaterial(ctx context.Context, courseID string, req *AddMaterialRequest) (*models.CourseMaterial, error)
	GetMaterials(ctx context.Context, courseID string) ([]*models.CourseMaterial, error)
}

// ===== REQUEST TYPES =====

type CreateCourseRequest struct {
	Title          string  `json:"title" validate:"required,max=200"`
	Description    string  `json:"description" validate:"required,max=2000"`
	InstructorID   string  `json:"instructor_id" validate:"required"`
	InstructorName string  `json:"instructor_name" validate:"max=200"`
	MediaURL       *string `json:"media_url" validate:"omitempty,url"`
}

type UpdateCourseRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	MediaURL    *string `json:"media_url" validate:"omitempty,url"`
}

type AddMaterialRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Type  string `json:"type" validate:"max=50"`
	URL   string `json:"url" validate:"required,url"`
}

type courseService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
	publisher events.EventPublisher
}

func NewCourseService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *utils.Validator,
	publisher events.EventPublisher,
) CourseService {
	return &courseService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest) (*models.Course, error) {
	s.logger.Info("Creating course", "title", req.Title, "instructor_id", req.InstructorID)

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	course := &models.Course{
		ID:             uuid.NewString(),
		Title:          req.Title,
		Description:    req.Description,
		InstructorID:   req.InstructorID,
		InstructorName: req.InstructorName,
		MediaURL:       req.MediaURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return course, nil
}

func (s *courseService) GetByID(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if err := s.populateEnrollmentCount(ctx, course); err != nil {
		s.logger.Warn("Failed to count enrollments", "course_id", id, "error", err)
	}
	return course, nil
}

func (s *courseService) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	courses, total, err := s.repo.Course().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	for _, course := range courses {
		if err := s.populateEnrollmentCount(ctx, course); err != nil {
			s.logger.Warn("Failed to count enrollments", "course_id", course.ID, "error", err)
		}
	}
	return courses, total, nil
}

func (s *courseService) Update(ctx context.Context, id string, req *UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	course.Title = req.Title
	course.Description = req.Description
	course.MediaURL = req.MediaURL
	course.UpdatedAt = time.Now().UTC()

	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Course().GetByID(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to get course: %w", err)
	}
	return s.repo.Course().Delete(ctx, id)
}

// ===== ENROLLMENT =====

func (s *courseService) Enroll(ctx context.Context, courseID, studentID string) error {
	s.logger.Info("Enrolling student", "course_id", courseID, "student_id", studentID)

	if _, err := s.repo.Course().GetByID(ctx, courseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to get course: %w", err)
	}

	exists, err := s.repo.Course().EnrollmentExists(ctx, studentID, courseID)
	if err != nil {
		return fmt.Errorf("failed to check enrollment: %w", err)
	}
	if exists {
		return ErrAlreadyEnrolled
	}

	enrollment := &models.Enrollment{
		ID:        uuid.NewString(),
		CourseID:  courseID,
		StudentID: studentID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Course().Enroll(ctx, enrollment); err != nil {
		return fmt.Errorf("failed to enroll student: %w", err)
	}

	event := events.NewStudentEnrolledEvent(courseID, studentID, enrollment.CreatedAt)
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish enrollment event",
			"course_id", courseID,
			"student_id", studentID,
			"error", err)
	}
	return nil
}

func (s *courseService) GetEnrolledCourses(ctx context.Context, studentID string) ([]*models.Course, error) {
	courses, err := s.repo.Course().GetEnrolledCourses(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get enrolled courses: %w", err)
	}
	return courses, nil
}

// ===== MATERIALS =====

func (s *courseService) AddMaterial(ctx context.Context, courseID string, req *AddMaterialRequest) (*models.CourseMaterial, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.Course().GetByID(ctx, courseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	material := &models.CourseMaterial{
		ID:         uuid.NewString(),
		CourseID:   courseID,
		Title:      req.Title,
		Type:       req.Type,
		URL:        req.URL,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.repo.Course().AddMaterial(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to add material: %w", err)
	}
	return material, nil
}

func (s *courseService) GetMaterials(ctx context.Context, courseID string) ([]*models.CourseMaterial, error) {
	materials, err := s.repo.Course().GetMaterials(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get materials: %w", err)
	}
	return materials, nil
}

func (s *courseService) populateEnrollmentCount(ctx context.Context, course *models.Course) error {
	count, err := s.repo.Course().CountEnrollments(ctx, course.ID)
	if err != nil {
		return err
	}
	course.EnrolledStudents = int(count)
	return nil
}
