package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/edusync/grading-service/internal/models"
	"github.com/edusync/grading-service/internal/repositories"
)

// ExportService renders attempt data as downloadable files
type ExportService interface {
	ExportAssessmentResultsCSV(ctx context.Context, assessmentID string) ([]byte, error)
	ExportAssessmentResultsExcel(ctx context.Context, assessmentID string) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

var resultExportHeaders = []string{
	"attempt_id", "user_id", "score", "max_score",
	"percentage", "passed", "correct_answers", "total_questions", "attempted_at",
}

// ===== EXPORT OPERATIONS =====

func (s *exportService) ExportAssessmentResultsCSV(ctx context.Context, assessmentID string) ([]byte, error) {
	attempts, err := s.loadAttempts(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(resultExportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, attempt := range attempts {
		if err := writer.Write(resultExportRow(attempt)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	s.logger.Info("Exported assessment results to CSV",
		"assessment_id", assessmentID,
		"row_count", len(attempts))
	return buf.Bytes(), nil
}

func (s *exportService) ExportAssessmentResultsExcel(ctx context.Context, assessmentID string) ([]byte, error) {
	attempts, err := s.loadAttempts(ctx, assessmentID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range resultExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for rowIdx, attempt := range attempts {
		for col, value := range resultExportRow(attempt) {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported assessment results to Excel",
		"assessment_id", assessmentID,
		"row_count", len(attempts))
	return buf.Bytes(), nil
}

// ===== HELPERS =====

func (s *exportService) loadAttempts(ctx context.Context, assessmentID string) ([]*models.Attempt, error) {
	if _, err := s.repo.Assessment().GetByID(ctx, assessmentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	attempts, _, err := s.repo.Attempt().GetByAssessment(ctx, assessmentID, repositories.AttemptFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}
	return attempts, nil
}

func resultExportRow(attempt *models.Attempt) []string {
	return []string{
		attempt.ID,
		attempt.UserID,
		strconv.Itoa(attempt.Score),
		strconv.Itoa(attempt.MaxScore),
		strconv.FormatFloat(attempt.Percentage, 'f', 2, 64),
		strconv.FormatBool(attempt.Passed),
		strconv.Itoa(attempt.CorrectAnswers),
		strconv.Itoa(attempt.TotalQuestions),
		attempt.AttemptedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
