package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edusync/grading-service/internal/events"
	"github.com/edusync/grading-service/internal/models"
	"github.com/edusync/grading-service/internal/utils"
)

func newCourseServiceForTest(repo *MockRepository, publisher events.EventPublisher) CourseService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewCourseService(repo, logger, utils.NewValidator(), publisher)
}

func TestCourseService_Enroll(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	course := &models.Course{ID: "c-1", Title: "Intro to Go", Description: "basics"}

	t.Run("enrolls and publishes event", func(t *testing.T) {
		repo := NewMockRepository()
		publisher := events.NewMockEventPublisher(logger)
		service := newCourseServiceForTest(repo, publisher)

		repo.course.On("GetByID", ctx, "c-1").Return(course, nil)
		repo.course.On("EnrollmentExists", ctx, "s-1", "c-1").Return(false, nil)
		repo.course.On("Enroll", ctx, mock.AnythingOfType("*models.Enrollment")).Return(nil)

		err := service.Enroll(ctx, "c-1", "s-1")
		require.NoError(t, err)

		published := publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventStudentEnrolled, published[0].Type)
	})

	t.Run("rejects duplicate enrollment", func(t *testing.T) {
		repo := NewMockRepository()
		service := newCourseServiceForTest(repo, events.NewMockEventPublisher(logger))

		repo.course.On("GetByID", ctx, "c-1").Return(course, nil)
		repo.course.On("EnrollmentExists", ctx, "s-1", "c-1").Return(true, nil)

		err := service.Enroll(ctx, "c-1", "s-1")
		assert.ErrorIs(t, err, ErrAlreadyEnrolled)
		repo.course.AssertNotCalled(t, "Enroll", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown course", func(t *testing.T) {
		repo := NewMockRepository()
		service := newCourseServiceForTest(repo, events.NewMockEventPublisher(logger))

		repo.course.On("GetByID", ctx, "missing").Return(nil, gorm.ErrRecordNotFound)

		err := service.Enroll(ctx, "missing", "s-1")
		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func TestCourseService_Create(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("creates course", func(t *testing.T) {
		repo := NewMockRepository()
		service := newCourseServiceForTest(repo, events.NewMockEventPublisher(logger))

		repo.course.On("Create", ctx, mock.AnythingOfType("*models.Course")).Return(nil)

		course, err := service.Create(ctx, &CreateCourseRequest{
			Title:        "Intro to Go",
			Description:  "Language fundamentals",
			InstructorID: "i-1",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, course.ID)
		assert.Equal(t, "Intro to Go", course.Title)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		repo := NewMockRepository()
		service := newCourseServiceForTest(repo, events.NewMockEventPublisher(logger))

		_, err := service.Create(ctx, &CreateCourseRequest{})
		require.Error(t, err)

		var ve ValidationErrors
		assert.ErrorAs(t, err, &ve)
	})
}

func TestCourseService_GetByID(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	t.Run("populates enrollment count", func(t *testing.T) {
		repo := NewMockRepository()
		service := newCourseServiceForTest(repo, events.NewMockEventPublisher(logger))

		repo.course.On("GetByID", ctx, "c-1").
			Return(&models.Course{ID: "c-1", Title: "Intro to Go"}, nil)
		repo.course.On("CountEnrollments", ctx, "c-1").Return(int64(7), nil)

		course, err := service.GetByID(ctx, "c-1")
		require.NoError(t, err)
		assert.Equal(t, 7, course.EnrolledStudents)
	})
}
