package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eems-edu/exam-marking-service/internal/services"
	"github.com/eems-edu/exam-marking-service/internal/utils"
)

// ErrorResponse is the body of every user-visible failure.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// BaseHandler provides common logging and response functionality for all
// handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"remote_addr", c.ClientIP(),
	}
	if email := c.GetString("email"); email != "" {
		fields = append(fields, "email", email)
	}
	fields = append(fields, additionalFields...)

	h.logger.Info(message, fields...)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Success: false,
		Message: message,
	}
	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil {
		h.logger.LogError(err, message,
			"status_code", statusCode,
			"method", c.Request.Method,
			"path", c.Request.URL.Path)
	} else {
		h.logger.Warn(message,
			"status_code", statusCode,
			"method", c.Request.Method,
			"path", c.Request.URL.Path)
	}

	c.JSON(statusCode, errorResp)
}

// handleServiceError maps service-layer errors onto the HTTP taxonomy:
// validation and not-found to 400/404, duplicates to 409, credential and
// token failures to 401, everything else to 500.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if ok := asValidationErrors(err, &validationErrors); ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Success: false,
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	switch {
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, err.Error(), nil)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, err.Error(), nil)
	case err == services.ErrInvalidCredentials:
		h.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials", nil)
	case err == services.ErrInvalidToken:
		h.RespondWithError(c, http.StatusUnauthorized, "Invalid token", nil)
	case err == services.ErrForbidden:
		h.RespondWithError(c, http.StatusForbidden, "Forbidden", nil)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// parseIDParam reads an integer id path parameter. A missing or
// non-numeric id can never match a stored item, so it answers 404 directly.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) (int, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Success: false,
			Message: "Invalid " + param,
		})
		return 0, false
	}
	return id, true
}

func asValidationErrors(err error, target *services.ValidationErrors) bool {
	ve, ok := err.(services.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}
