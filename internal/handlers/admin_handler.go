package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eems-edu/exam-marking-service/internal/store"
	"github.com/eems-edu/exam-marking-service/internal/utils"
)

type AdminHandler struct {
	BaseHandler
	store *store.Store
}

func NewAdminHandler(st *store.Store, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		store:       st,
	}
}

// ReloadDB re-reads the backing file and replaces the in-memory state.
func (h *AdminHandler) ReloadDB(c *gin.Context) {
	h.LogRequest(c, "Reloading store from disk")
	h.store.Reload()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database reloaded",
	})
}

// ClearSubmissions empties the submission collection.
func (h *AdminHandler) ClearSubmissions(c *gin.Context) {
	removed := h.store.ClearSubmissions()
	h.LogRequest(c, "Cleared submissions", "removed", removed)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"removed": removed,
	})
}

// ClearExams empties the exam collection and, with it, every submission.
func (h *AdminHandler) ClearExams(c *gin.Context) {
	result := h.store.ClearExams()
	h.LogRequest(c, "Cleared exams",
		"removed_exams", result.RemovedExams,
		"removed_submissions", result.RemovedSubmissions)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"details": result,
	})
}

// ClearAll empties exams and submissions but keeps user accounts.
func (h *AdminHandler) ClearAll(c *gin.Context) {
	result := h.store.ClearAllExceptUsers()
	h.LogRequest(c, "Cleared all except users",
		"removed_exams", result.RemovedExams,
		"removed_submissions", result.RemovedSubmissions)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"details": result,
	})
}
