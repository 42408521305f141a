package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/edusync/grading-service/internal/services"
	"github.com/edusync/grading-service/internal/utils"
)

type HandlerManager struct {
	assessmentHandler *AssessmentHandler
	resultHandler     *ResultHandler
	courseHandler     *CourseHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		assessmentHandler: NewAssessmentHandler(serviceManager.Assessment(), serviceManager.Result(), logger),
		resultHandler:     NewResultHandler(serviceManager.Result(), serviceManager.Export(), logger),
		courseHandler:     NewCourseHandler(serviceManager.Course(), serviceManager.Assessment(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "grading-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Assessment routes
		assessments := v1.Group("/assessments")
		{
			assessments.POST("", hm.assessmentHandler.CreateAssessment)
			assessments.GET("", hm.assessmentHandler.ListAssessments)
			assessments.GET("/:id", hm.assessmentHandler.GetAssessment)
			assessments.PUT("/:id", hm.assessmentHandler.UpdateAssessment)
			assessments.DELETE("/:id", hm.assessmentHandler.DeleteAssessment)
			assessments.POST("/:id/submit", hm.assessmentHandler.SubmitAssessment)
		}

		// Result routes
		results := v1.Group("/results")
		{
			results.GET("", hm.resultHandler.ListResults)
			results.GET("/:id", hm.resultHandler.GetResult)
			results.GET("/assessment/:assessment_id", hm.resultHandler.GetResultsByAssessment)
			results.GET("/assessment/:assessment_id/export", hm.resultHandler.ExportResults)
			results.GET("/user/:user_id", hm.resultHandler.GetResultsByUser)
		}

		// Course routes
		courses := v1.Group("/courses")
		{
			courses.POST("", hm.courseHandler.CreateCourse)
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/:id", hm.courseHandler.GetCourse)
			courses.PUT("/:id", hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", hm.courseHandler.DeleteCourse)
			courses.GET("/:id/assessments", hm.courseHandler.GetCourseAssessments)
			courses.POST("/:id/enroll", hm.courseHandler.EnrollStudent)
			courses.GET("/:id/materials", hm.courseHandler.GetMaterials)
			courses.POST("/:id/materials", hm.courseHandler.AddMaterial)
			courses.GET("/student/:student_id", hm.courseHandler.GetEnrolledCourses)
		}
	}
}
