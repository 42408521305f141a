package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/edusync/grading-service/internal/errors"
	"github.com/edusync/grading-service/internal/grading"
	"github.com/edusync/grading-service/internal/services"
	"github.com/edusync/grading-service/internal/utils"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and response functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"request_id", c.GetHeader("X-Request-ID"),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	fields = append(fields, additionalFields...)

	h.logger.LogError(err, message, fields...)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
	}
	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil {
		h.LogError(c, err, message, "status_code", statusCode)
	}

	c.JSON(statusCode, errorResp)
}

// RespondWithSuccess sends a consistent success response
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// HandleServiceError maps service-layer errors onto HTTP status codes so
// every handler reports failures the same way.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	var validationErrs apperrors.ValidationErrors
	var gradingValidation *grading.ValidationError

	switch {
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, err.Error(), nil)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, err.Error(), nil)
	case grading.IsSchemaError(err):
		h.RespondWithError(c, http.StatusBadRequest, "Assessment definition is not gradable", err, err.Error())
	case errors.As(err, &gradingValidation):
		h.RespondWithError(c, http.StatusBadRequest, gradingValidation.Message, nil, gin.H{"field": gradingValidation.Field})
	case errors.As(err, &validationErrs):
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", nil, validationErrs)
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, err.Error(), nil)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
