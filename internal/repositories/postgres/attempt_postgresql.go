package postgres

import (
	"context"

	"github.com/edusync/grading-service/internal/models"
	"github.com/edusync/grading-service/internal/repositories"
	"gorm.io/gorm"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{db: db}
}

// Create appends one attempt. There is deliberately no Update or Delete on
// this repository: the attempt log is immutable.
func (a AttemptPostgreSQL) Create(ctx context.Context, attempt *models.Attempt) error {
	return a.db.WithContext(ctx).Create(attempt).Error
}

func (a AttemptPostgreSQL) GetByID(ctx context.Context, id string) (*models.Attempt, error) {
	var attempt models.Attempt
	if err := a.db.WithContext(ctx).First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (a AttemptPostgreSQL) List(ctx context.Context, filters repositories.AttemptFilters) ([]*models.Attempt, int64, error) {
	var attempts []*models.Attempt
	var total int64

	query := a.db.WithContext(ctx).Model(&models.Attempt{})
	query = a.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, "attempted_at", filters.Limit, filters.Offset)

	if err := query.Find(&attempts).Error; err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

func (a AttemptPostgreSQL) GetByAssessment(ctx context.Context, assessmentID string, filters repositories.AttemptFilters) ([]*models.Attempt, int64, error) {
	filters.AssessmentID = &assessmentID
	return a.List(ctx, filters)
}

func (a AttemptPostgreSQL) GetByUser(ctx context.Context, userID string, filters repositories.AttemptFilters) ([]*models.Attempt, int64, error) {
	filters.UserID = &userID
	return a.List(ctx, filters)
}

func (a AttemptPostgreSQL) applyFilters(query *gorm.DB, filters repositories.AttemptFilters) *gorm.DB {
	if filters.AssessmentID != nil {
		query = query.Where("assessment_id = ?", *filters.AssessmentID)
	}
	if filters.UserID != nil {
		query = query.Where("user_id = ?", *filters.UserID)
	}
	if filters.Passed != nil {
		query = query.Where("passed = ?", *filters.Passed)
	}
	if filters.DateFrom != nil {
		query = query.Where("attempted_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("attempted_at <= ?", *filters.DateTo)
	}
	return query
}
