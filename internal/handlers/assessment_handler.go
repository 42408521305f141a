package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusync/grading-service/internal/repositories"
	"github.com/edusync/grading-service/internal/services"
	"github.com/edusync/grading-service/internal/utils"
)

type AssessmentHandler struct {
	BaseHandler
	assessmentService services.AssessmentService
	resultService     services.ResultService
}

func NewAssessmentHandler(
	assessmentService services.AssessmentService,
	resultService services.ResultService,
	logger utils.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assessmentService: assessmentService,
		resultService:     resultService,
	}
}

// ===== CRUD =====

// CreateAssessment handles POST /api/v1/assessments
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	var req services.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.assessmentService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetAssessment handles GET /api/v1/assessments/:id
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	resp, err := h.assessmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListAssessments handles GET /api/v1/assessments
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	limit, offset := ParsePagination(c)

	filters := repositories.AssessmentFilters{
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if courseID := c.Query("course_id"); courseID != "" {
		filters.CourseID = &courseID
	}

	resp, err := h.assessmentService.List(c.Request.Context(), filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateAssessment handles PUT /api/v1/assessments/:id
func (h *AssessmentHandler) UpdateAssessment(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.UpdateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.assessmentService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteAssessment handles DELETE /api/v1/assessments/:id
func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.assessmentService.Delete(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Assessment deleted successfully", nil)
}

// ===== SUBMISSION =====

// SubmitAssessment handles POST /api/v1/assessments/:id/submit
func (h *AssessmentHandler) SubmitAssessment(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.SubmitAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.AssessmentID = id

	result, err := h.resultService.SubmitAssessment(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}
