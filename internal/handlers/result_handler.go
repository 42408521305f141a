package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edusync/grading-service/internal/repositories"
	"github.com/edusync/grading-service/internal/services"
	"github.com/edusync/grading-service/internal/utils"
)

type ResultHandler struct {
	BaseHandler
	resultService services.ResultService
	exportService services.ExportService
}

func NewResultHandler(
	resultService services.ResultService,
	exportService services.ExportService,
	logger utils.Logger,
) *ResultHandler {
	return &ResultHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
		exportService: exportService,
	}
}

// ===== QUERIES =====

// GetResult handles GET /api/v1/results/:id
func (h *ResultHandler) GetResult(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	resp, err := h.resultService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListResults handles GET /api/v1/results
func (h *ResultHandler) ListResults(c *gin.Context) {
	resp, err := h.resultService.List(c.Request.Context(), h.parseAttemptFilters(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetResultsByAssessment handles GET /api/v1/results/assessment/:assessment_id
func (h *ResultHandler) GetResultsByAssessment(c *gin.Context) {
	assessmentID := ParseStringIDParam(c, "assessment_id")
	if assessmentID == "" {
		return
	}

	resp, err := h.resultService.GetByAssessment(c.Request.Context(), assessmentID, h.parseAttemptFilters(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetResultsByUser handles GET /api/v1/results/user/:user_id
func (h *ResultHandler) GetResultsByUser(c *gin.Context) {
	userID := ParseStringIDParam(c, "user_id")
	if userID == "" {
		return
	}

	resp, err := h.resultService.GetByUser(c.Request.Context(), userID, h.parseAttemptFilters(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ===== EXPORT =====

// ExportResults handles GET /api/v1/results/assessment/:assessment_id/export
func (h *ResultHandler) ExportResults(c *gin.Context) {
	assessmentID := ParseStringIDParam(c, "assessment_id")
	if assessmentID == "" {
		return
	}

	format := c.DefaultQuery("format", "csv")
	filename := fmt.Sprintf("results-%s-%s", assessmentID, time.Now().UTC().Format("20060102-150405"))

	var (
		data        []byte
		contentType string
		err         error
	)
	switch format {
	case "csv":
		data, err = h.exportService.ExportAssessmentResultsCSV(c.Request.Context(), assessmentID)
		contentType = "text/csv"
		filename += ".csv"
	case "xlsx":
		data, err = h.exportService.ExportAssessmentResultsExcel(c.Request.Context(), assessmentID)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename += ".xlsx"
	default:
		h.RespondWithError(c, http.StatusBadRequest, "Unsupported export format", nil, format)
		return
	}
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// ===== HELPERS =====

func (h *ResultHandler) parseAttemptFilters(c *gin.Context) repositories.AttemptFilters {
	limit, offset := ParsePagination(c)

	filters := repositories.AttemptFilters{
		Limit:     limit,
		Offset:    offset,
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if v := c.Query("assessment_id"); v != "" {
		filters.AssessmentID = &v
	}
	if v := c.Query("user_id"); v != "" {
		filters.UserID = &v
	}
	if v := c.Query("passed"); v != "" {
		if passed, err := strconv.ParseBool(v); err == nil {
			filters.Passed = &passed
		}
	}
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.DateFrom = &t
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.DateTo = &t
		}
	}
	return filters
}
