package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/edusync/grading-service/internal/models"
)

func newExportServiceForTest(repo *MockRepository) ExportService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewExportService(repo, logger)
}

func exportTestAttempts() []*models.Attempt {
	attemptedAt := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	return []*models.Attempt{
		{
			ID:             "at-1",
			AssessmentID:   "a-1",
			UserID:         "u-1",
			Score:          3,
			MaxScore:       3,
			Percentage:     100.0,
			Passed:         true,
			CorrectAnswers: 2,
			TotalQuestions: 2,
			AttemptedAt:    attemptedAt,
		},
		{
			ID:             "at-2",
			AssessmentID:   "a-1",
			UserID:         "u-2",
			Score:          1,
			MaxScore:       3,
			Percentage:     33.33,
			Passed:         false,
			CorrectAnswers: 1,
			TotalQuestions: 2,
			AttemptedAt:    attemptedAt,
		},
	}
}

func TestExportService_CSV(t *testing.T) {
	ctx := context.Background()

	t.Run("writes header and one row per attempt", func(t *testing.T) {
		repo := NewMockRepository()
		service := newExportServiceForTest(repo)

		repo.assessment.On("GetByID", ctx, "a-1").Return(newTestAssessment(), nil)
		repo.attempt.On("GetByAssessment", ctx, "a-1", mock.Anything).
			Return(exportTestAttempts(), int64(2), nil)

		data, err := service.ExportAssessmentResultsCSV(ctx, "a-1")
		require.NoError(t, err)

		records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, resultExportHeaders, records[0])
		assert.Equal(t, "at-1", records[1][0])
		assert.Equal(t, "100.00", records[1][4])
		assert.Equal(t, "true", records[1][5])
		assert.Equal(t, "33.33", records[2][4])
		assert.Equal(t, "false", records[2][5])
	})

	t.Run("unknown assessment", func(t *testing.T) {
		repo := NewMockRepository()
		service := newExportServiceForTest(repo)

		repo.assessment.On("GetByID", ctx, "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.ExportAssessmentResultsCSV(ctx, "missing")
		assert.ErrorIs(t, err, ErrAssessmentNotFound)
	})
}

func TestExportService_Excel(t *testing.T) {
	ctx := context.Background()

	repo := NewMockRepository()
	service := newExportServiceForTest(repo)

	repo.assessment.On("GetByID", ctx, "a-1").Return(newTestAssessment(), nil)
	repo.attempt.On("GetByAssessment", ctx, "a-1", mock.Anything).
		Return(exportTestAttempts(), int64(2), nil)

	data, err := service.ExportAssessmentResultsExcel(ctx, "a-1")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, resultExportHeaders, rows[0])
	assert.Equal(t, "at-2", rows[2][0])
	assert.Equal(t, "u-2", rows[2][1])
}
