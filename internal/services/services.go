package services

import (
	"log/slog"

	"github.com/edusync/grading-service/internal/cache"
	"github.com/edusync/grading-service/internal/events"
	"github.com/edusync/grading-service/internal/grading"
	"github.com/edusync/grading-service/internal/repositories"
	"github.com/edusync/grading-service/internal/utils"
)

// ServiceManager aggregates all services behind one dependency for wiring
type ServiceManager interface {
	Assessment() AssessmentService
	Result() ResultService
	Course() CourseService
	Export() ExportService
}

type serviceManager struct {
	assessment AssessmentService
	result     ResultService
	course     CourseService
	export     ExportService
}

func NewServiceManager(
	repo repositories.Repository,
	engine *grading.Engine,
	logger *slog.Logger,
	validator *utils.Validator,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
) ServiceManager {
	return &serviceManager{
		assessment: NewAssessmentService(repo, logger, validator, cacheService, publisher),
		result:     NewResultService(repo, engine, logger, validator, publisher),
		course:     NewCourseService(repo, logger, validator, publisher),
		export:     NewExportService(repo, logger),
	}
}

func (m *serviceManager) Assessment() AssessmentService { return m.assessment }
func (m *serviceManager) Result() ResultService         { return m.result }
func (m *serviceManager) Course() CourseService         { return m.course }
func (m *serviceManager) Export() ExportService         { return m.export }
