package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusync/grading-service/internal/repositories"
	"github.com/edusync/grading-service/internal/services"
	"github.com/edusync/grading-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	courseService     services.CourseService
	assessmentService services.AssessmentService
}

func NewCourseHandler(
	courseService services.CourseService,
	assessmentService services.AssessmentService,
	logger utils.Logger,
) *CourseHandler {
	return &CourseHandler{
		BaseHandler:       NewBaseHandler(logger),
		courseService:     courseService,
		assessmentService: assessmentService,
	}
}

// ===== CRUD =====

// CreateCourse handles POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// ListCourses handles GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	limit, offset := ParsePagination(c)

	filters := repositories.CourseFilters{
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if instructorID := c.Query("instructor_id"); instructorID != "" {
		filters.InstructorID = &instructorID
	}

	courses, total, err := h.courseService.List(c.Request.Context(), filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses, "total": total})
}

// UpdateCourse handles PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	course, err := h.courseService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// DeleteCourse handles DELETE /api/v1/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Course deleted successfully", nil)
}

// ===== COURSE ASSESSMENTS =====

// GetCourseAssessments handles GET /api/v1/courses/:id/assessments
func (h *CourseHandler) GetCourseAssessments(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	assessments, err := h.assessmentService.GetByCourse(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": assessments})
}

// ===== ENROLLMENT =====

type EnrollRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// EnrollStudent handles POST /api/v1/courses/:id/enroll
func (h *CourseHandler) EnrollStudent(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.courseService.Enroll(c.Request.Context(), id, req.StudentID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Student enrolled successfully", nil)
}

// GetEnrolledCourses handles GET /api/v1/courses/student/:student_id
func (h *CourseHandler) GetEnrolledCourses(c *gin.Context) {
	studentID := ParseStringIDParam(c, "student_id")
	if studentID == "" {
		return
	}

	courses, err := h.courseService.GetEnrolledCourses(c.Request.Context(), studentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// ===== MATERIALS =====

// AddMaterial handles POST /api/v1/courses/:id/materials
func (h *CourseHandler) AddMaterial(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.AddMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	material, err := h.courseService.AddMaterial(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, material)
}

// GetMaterials handles GET /api/v1/courses/:id/materials
func (h *CourseHandler) GetMaterials(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	materials, err := h.courseService.GetMaterials(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"materials": materials})
}
