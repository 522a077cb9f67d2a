package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-iot/attendance-service/internal/services"
	"github.com/campus-iot/attendance-service/internal/utils"
	"github.com/campus-iot/attendance-service/internal/validator"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// BaseHandler carries the helpers every handler shares.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string) {
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, "error", err)
}

func (h *BaseHandler) RespondWithError(c *gin.Context, status int, message string, err error) {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(status, resp)
}

// ParseStringIDParam rejects empty path ids with a 400.
func ParseStringIDParam(c *gin.Context, param string) string {
	id := strings.TrimSpace(c.Param(param))
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return id
}

// handleServiceError maps domain errors to HTTP statuses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Attendance record not found"})
	case errors.Is(err, services.ErrJustificationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Justification not found"})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "User not found"})
	case errors.Is(err, services.ErrClassroomNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Classroom not found"})
	case errors.Is(err, services.ErrAlreadyExists):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "Resource already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Invalid credentials"})
	case errors.Is(err, services.ErrMalformedQRPayload):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Malformed QR payload"})
	case errors.Is(err, services.ErrUnknownProjection):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Unknown export projection"})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
			Details: err.Error(),
		})
	}
}
