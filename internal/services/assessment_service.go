package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/edusync/grading-service/internal/cache"
	"github.com/edusync/grading-service/internal/events"
	"github.com/edusync/grading-service/internal/models"
	"github.com/edusync/grading-service/internal/repositories"
	"github.com/edusync/grading-service/internal/utils"
)

const assessmentCacheTTL = 5 * time.Minute

// AssessmentService manages assessment definitions and their question blobs
type AssessmentService interface {
	Create(ctx context.Context, req *CreateAssessmentRequest) (*AssessmentResponse, error)
	GetByID(ctx context.Context, id string) (*AssessmentResponse, error)
	GetByCourse(ctx context.Context, courseID string) ([]*AssessmentResponse, error)
	List(ctx context.Context, filters repositories.AssessmentFilters) (*AssessmentListResponse, error)
	Update(ctx context.Context, id string, req *UpdateAssessmentRequest) (*AssessmentResponse, error)
	Delete(ctx context.Context, id string) error
}

// ===== REQUEST / RESPONSE TYPES =====

type CreateAssessmentRequest struct {
	CourseID  string          `json:"course_id" validate:"required"`
	Title     string          `json:"title" validate:"required,max=200"`
	Questions json.RawMessage `json:"questions" validate:"required"`
	MaxScore  int             `json:"max_score" validate:"required,min=1"`
}

// UpdateAssessmentRequest replaces the stored definition wholesale. Partial
// patches are not supported; callers send the full new state.
type UpdateAssessmentRequest struct {
	Title     string          `json:"title" validate:"required,max=200"`
	Questions json.RawMessage `json:"questions" validate:"required"`
	MaxScore  int             `json:"max_score" validate:"required,min=1"`
}

type AssessmentResponse struct {
	ID        string          `json:"id"`
	CourseID  string          `json:"course_id"`
	Title     string          `json:"title"`
	Questions json.RawMessage `json:"questions"`
	MaxScore  int             `json:"max_score"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type AssessmentListResponse struct {
	Assessments []*AssessmentResponse `json:"assessments"`
	Total       int64                 `json:"total"`
}

type assessmentService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
	cache     cache.CacheService
	publisher events.EventPublisher
}

func NewAssessmentService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *utils.Validator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
) AssessmentService {
	return &assessmentService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		cache:     cacheService,
		publisher: publisher,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *assessmentService) Create(ctx context.Context, req *CreateAssessmentRequest) (*AssessmentResponse, error) {
	s.logger.Info("Creating assessment", "course_id", req.CourseID, "title", req.Title)

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.validateDefinition(req.Questions, req.MaxScore); err != nil {
		return nil, err
	}

	// The owning course must exist before an assessment can hang off it.
	if _, err := s.repo.Course().GetByID(ctx, req.CourseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	now := time.Now().UTC()
	assessment := &models.Assessment{
		ID:        uuid.NewString(),
		CourseID:  req.CourseID,
		Title:     req.Title,
		Questions: datatypes.JSON(req.Questions),
		MaxScore:  req.MaxScore,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Assessment().Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	s.publishLifecycleEvent(ctx, events.EventAssessmentCreated, assessment)
	s.logger.Info("Assessment created successfully", "assessment_id", assessment.ID)

	return buildAssessmentResponse(assessment), nil
}

func (s *assessmentService) GetByID(ctx context.Context, id string) (*AssessmentResponse, error) {
	cacheKey := assessmentCacheKey(id)

	var cached AssessmentResponse
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	resp := buildAssessmentResponse(assessment)
	if err := s.cache.Set(ctx, cacheKey, resp, assessmentCacheTTL); err != nil {
		s.logger.Warn("Failed to cache assessment", "assessment_id", id, "error", err)
	}
	return resp, nil
}

func (s *assessmentService) GetByCourse(ctx context.Context, courseID string) ([]*AssessmentResponse, error) {
	assessments, err := s.repo.Assessment().GetByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list course assessments: %w", err)
	}

	responses := make([]*AssessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		responses = append(responses, buildAssessmentResponse(a))
	}
	return responses, nil
}

func (s *assessmentService) List(ctx context.Context, filters repositories.AssessmentFilters) (*AssessmentListResponse, error) {
	assessments, total, err := s.repo.Assessment().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	responses := make([]*AssessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		responses = append(responses, buildAssessmentResponse(a))
	}
	return &AssessmentListResponse{Assessments: responses, Total: total}, nil
}

func (s *assessmentService) Update(ctx context.Context, id string, req *UpdateAssessmentRequest) (*AssessmentResponse, error) {
	s.logger.Info("Updating assessment", "assessment_id", id)

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.validateDefinition(req.Questions, req.MaxScore); err != nil {
		return nil, err
	}

	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	assessment.Title = req.Title
	assessment.Questions = datatypes.JSON(req.Questions)
	assessment.MaxScore = req.MaxScore
	assessment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Assessment().Update(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to update assessment: %w", err)
	}

	s.invalidateCache(ctx, id)
	s.publishLifecycleEvent(ctx, events.EventAssessmentUpdated, assessment)

	return buildAssessmentResponse(assessment), nil
}

func (s *assessmentService) Delete(ctx context.Context, id string) error {
	s.logger.Info("Deleting assessment", "assessment_id", id)

	assessment, err := s.repo.Assessment().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAssessmentNotFound
		}
		return fmt.Errorf("failed to get assessment: %w", err)
	}

	// Attempts reference the assessment and are immutable; refuse to orphan them.
	_, total, err := s.repo.Attempt().GetByAssessment(ctx, id, repositories.AttemptFilters{Limit: 1})
	if err != nil {
		return fmt.Errorf("failed to check attempts: %w", err)
	}
	if total > 0 {
		return ErrAssessmentHasAttempts
	}

	if err := s.repo.Assessment().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete assessment: %w", err)
	}

	s.invalidateCache(ctx, id)
	s.publishLifecycleEvent(ctx, events.EventAssessmentDeleted, assessment)
	return nil
}

// ===== HELPERS =====

// validateDefinition rejects definitions that could never be graded. The
// stored blob stays tolerant of per-question junk; only whole-blob problems
// are rejected at write time.
func (s *assessmentService) validateDefinition(questions json.RawMessage, maxScore int) error {
	if maxScore <= 0 {
		return ErrAssessmentInvalidScore
	}
	if !json.Valid(questions) {
		return ErrAssessmentInvalidBlob
	}
	return nil
}

func (s *assessmentService) invalidateCache(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, assessmentCacheKey(id)); err != nil {
		s.logger.Warn("Failed to invalidate assessment cache", "assessment_id", id, "error", err)
	}
}

func (s *assessmentService) publishLifecycleEvent(ctx context.Context, eventType events.EventType, assessment *models.Assessment) {
	event := events.NewAssessmentEvent(eventType, assessment.ID, assessment.CourseID, assessment.Title, assessment.MaxScore)
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		// Event delivery is best-effort; the write already committed.
		s.logger.Warn("Failed to publish assessment event",
			"event_type", eventType,
			"assessment_id", assessment.ID,
			"error", err)
	}
}

func assessmentCacheKey(id string) string {
	return "assessment:" + id
}

func buildAssessmentResponse(assessment *models.Assessment) *AssessmentResponse {
	return &AssessmentResponse{
		ID:        assessment.ID,
		CourseID:  assessment.CourseID,
		Title:     assessment.Title,
		Questions: json.RawMessage(assessment.Questions),
		MaxScore:  assessment.MaxScore,
		CreatedAt: assessment.CreatedAt,
		UpdatedAt: assessment.UpdatedAt,
	}
}
