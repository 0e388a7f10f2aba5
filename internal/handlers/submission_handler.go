package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eems-edu/exam-marking-service/internal/services"
	"github.com/eems-edu/exam-marking-service/internal/utils"
)

type SubmissionHandler struct {
	BaseHandler
	submissionService services.SubmissionService
}

func NewSubmissionHandler(submissionService services.SubmissionService, logger utils.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler:       NewBaseHandler(logger),
		submissionService: submissionService,
	}
}

// CreateSubmission scores raw answers against the referenced exam and
// persists the result.
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	var req services.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Creating submission", "exam_id", req.ExamID, "student", req.StudentName)

	submission, err := h.submissionService.Create(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Submission recorded",
		"submission": submission,
	})
}

// ListSubmissions returns submissions, optionally filtered by examId.
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	var examID *int
	if raw := c.Query("examId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, "Invalid examId", err)
			return
		}
		examID = &id
	}

	submissions := h.submissionService.List(c.Request.Context(), examID)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": submissions,
	})
}

// GradeSubmission applies manual grade overrides. The body is either a
// single override object or a list of them; older clients send the single
// form.
func (h *SubmissionHandler) GradeSubmission(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	overrides, err := decodeOverrides(raw)
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	h.LogRequest(c, "Grading submission", "submission_id", id, "overrides", len(overrides))

	submission, err := h.submissionService.Grade(c.Request.Context(), id, overrides, c.GetString("email"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Grades updated",
		"submission": submission,
	})
}

func decodeOverrides(raw json.RawMessage) ([]services.GradeOverride, error) {
	var list []services.GradeOverride
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var single services.GradeOverride
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, err
	}
	return []services.GradeOverride{single}, nil
}
