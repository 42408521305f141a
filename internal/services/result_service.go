package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edusync/grading-service/internal/events"
	"github.com/edusync/grading-service/internal/grading"
	"github.com/edusync/grading-service/internal/models"
	"github.com/edusync/grading-service/internal/repositories"
	"github.com/edusync/grading-service/internal/utils"
)

// ResultService grades submissions and manages the attempt log
type ResultService interface {
	SubmitAssessment(ctx context.Context, req *SubmitAssessmentRequest) (*SubmissionResult, error)
	GetByID(ctx context.Context, id string) (*AttemptResponse, error)
	List(ctx context.Context, filters repositories.AttemptFilters) (*AttemptListResponse, error)
	GetByAssessment(ctx context.Context, assessmentID string, filters repositories.AttemptFilters) (*AttemptListResponse, error)
	GetByUser(ctx context.Context, userID string, filters repositories.AttemptFilters) (*AttemptListResponse, error)
}

// ===== REQUEST / RESPONSE TYPES =====

type SubmitAssessmentRequest struct {
	AssessmentID     string                    `json:"assessment_id" validate:"required"`
	UserID           string                    `json:"user_id" validate:"required"`
	// Emptiness is checked by the grading engine, not the request validator.
	SubmittedAnswers []grading.SubmittedAnswer `json:"submitted_answers" validate:"dive"`
}

type SubmissionResult struct {
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
	Message        string    `json:"message"`
}

type AttemptResponse struct {
	ID             string    `json:"id"`
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

type AttemptListResponse struct {
	Attempts []*AttemptResponse `json:"attempts"`
	Total    int64              `json:"total"`
}

type resultService struct {
	repo      repositories.Repository
	engine    *grading.Engine
	logger    *slog.Logger
	validator *utils.Validator
	publisher events.EventPublisher
}

func NewResultService(
	repo repositories.Repository,
	engine *grading.Engine,
	logger *slog.Logger,
	validator *utils.Validator,
	publisher events.EventPublisher,
) ResultService {
	return &resultService{
		repo:      repo,
		engine:    engine,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// ===== SUBMISSION =====

// SubmitAssessment grades a submission against the stored definition and
// appends the outcome to the attempt log. Grading and recording share one
// code path so every caller gets identical scoring.
func (s *resultService) SubmitAssessment(ctx context.Context, req *SubmitAssessmentRequest) (*SubmissionResult, error) {
	s.logger.Info("Grading submission",
		"assessment_id", req.AssessmentID,
		"user_id", req.UserID,
		"answer_count", len(req.SubmittedAnswers))

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	assessment, err := s.repo.Assessment().GetByID(ctx, req.AssessmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	definition := grading.Definition{
		RawQuestions: []byte(assessment.Questions),
		MaxScore:     assessment.MaxScore,
	}
	submission := grading.Submission{
		AssessmentID:     req.AssessmentID,
		UserID:           req.UserID,
		SubmittedAnswers: req.SubmittedAnswers,
	}

	outcome, err := s.engine.Grade(definition, submission)
	if err != nil {
		return nil, err
	}

	attempt, err := s.record(ctx, outcome, assessment, req.UserID)
	if err != nil {
		return nil, err
	}

	s.publishAttemptEvent(ctx, attempt)

	return &SubmissionResult{
		AttemptID:      attempt.ID,
		AssessmentID:   attempt.AssessmentID,
		UserID:         attempt.UserID,
		Score:          attempt.Score,
		MaxScore:       attempt.MaxScore,
		Percentage:     attempt.Percentage,
		Passed:         attempt.Passed,
		CorrectAnswers: attempt.CorrectAnswers,
		TotalQuestions: attempt.TotalQuestions,
		AttemptedAt:    attempt.AttemptedAt,
		Message:        resultMessage(attempt.Passed),
	}, nil
}

// record stamps the outcome with a fresh identity and persists it. Each call
// produces a distinct attempt; resubmissions never overwrite prior rows.
func (s *resultService) record(ctx context.Context, outcome grading.Outcome, assessment *models.Assessment, userID string) (*models.Attempt, error) {
	attempt := &models.Attempt{
		ID:             uuid.NewString(),
		AssessmentID:   assessment.ID,
		UserID:         userID,
		Score:          outcome.TotalScore,
		CorrectAnswers: outcome.CorrectAnswers,
		TotalQuestions: outcome.TotalQuestions,
		MaxScore:       outcome.MaxPossibleScore,
		Percentage:     outcome.Percentage,
		Passed:         outcome.IsPassed,
		AttemptedAt:    time.Now().UTC(),
	}

	if err := s.repo.Attempt().Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	s.logger.Info("Attempt recorded",
		"attempt_id", attempt.ID,
		"assessment_id", attempt.AssessmentID,
		"user_id", attempt.UserID,
		"percentage", attempt.Percentage,
		"passed", attempt.Passed)

	return attempt, nil
}

// ===== QUERIES =====

func (s *resultService) GetByID(ctx context.Context, id string) (*AttemptResponse, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return buildAttemptResponse(attempt), nil
}

func (s *resultService) List(ctx context.Context, filters repositories.AttemptFilters) (*AttemptListResponse, error) {
	attempts, total, err := s.repo.Attempt().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	return buildAttemptListResponse(attempts, total), nil
}

func (s *resultService) GetByAssessment(ctx context.Context, assessmentID string, filters repositories.AttemptFilters) (*AttemptListResponse, error) {
	attempts, total, err := s.repo.Attempt().GetByAssessment(ctx, assessmentID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessment attempts: %w", err)
	}
	return buildAttemptListResponse(attempts, total), nil
}

func (s *resultService) GetByUser(ctx context.Context, userID string, filters repositories.AttemptFilters) (*AttemptListResponse, error) {
	attempts, total, err := s.repo.Attempt().GetByUser(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list user attempts: %w", err)
	}
	return buildAttemptListResponse(attempts, total), nil
}

// ===== HELPERS =====

func (s *resultService) publishAttemptEvent(ctx context.Context, attempt *models.Attempt) {
	event := events.NewAttemptRecordedEvent(
		attempt.ID,
		attempt.AssessmentID,
		attempt.UserID,
		attempt.Score,
		attempt.MaxScore,
		attempt.Percentage,
		attempt.Passed,
		attempt.CorrectAnswers,
		attempt.TotalQuestions,
		attempt.AttemptedAt,
	)
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		// The attempt is already committed; losing the event must not fail
		// the submission.
		s.logger.Warn("Failed to publish attempt event",
			"attempt_id", attempt.ID,
			"error", err)
	}
}

func resultMessage(passed bool) string {
	if passed {
		return "Congratulations! You passed the assessment."
	}
	return "You did not pass the assessment. Keep practicing!"
}

func buildAttemptResponse(attempt *models.Attempt) *AttemptResponse {
	return &AttemptResponse{
		ID:             attempt.ID,
		AssessmentID:   attempt.AssessmentID,
		UserID:         attempt.UserID,
		Score:          attempt.Score,
		MaxScore:       attempt.MaxScore,
		Percentage:     attempt.Percentage,
		Passed:         attempt.Passed,
		CorrectAnswers: attempt.CorrectAnswers,
		TotalQuestions: attempt.TotalQuestions,
		AttemptedAt:    attempt.AttemptedAt,
	}
}

func buildAttemptListResponse(attempts []*models.Attempt, total int64) *AttemptListResponse {
	responses := make([]*AttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		responses = append(responses, buildAttemptResponse(a))
	}
	return &AttemptListResponse{Attempts: responses, Total: total}
}
