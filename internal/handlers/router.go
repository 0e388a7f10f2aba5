package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eems-edu/exam-marking-service/internal/models"
	"github.com/eems-edu/exam-marking-service/internal/services"
	"github.com/eems-edu/exam-marking-service/internal/utils"
)

type HandlerManager struct {
	authService       services.AuthService
	authHandler       *AuthHandler
	examHandler       *ExamHandler
	submissionHandler *SubmissionHandler
	adminHandler      *AdminHandler
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authService:       serviceManager.Auth(),
		authHandler:       NewAuthHandler(serviceManager.Auth(), logger),
		examHandler:       NewExamHandler(serviceManager.Exam(), serviceManager.Export(), logger),
		submissionHandler: NewSubmissionHandler(serviceManager.Submission(), logger),
		adminHandler:      NewAdminHandler(serviceManager.Store(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	banner := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "EEMS API is running",
			"version": "1.0.0",
			"endpoints": []string{
				"/api/login", "/api/exams", "/api/submissions",
			},
		})
	}
	router.GET("/", banner)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "exam-marking-service",
		})
	})

	authRequired := AuthRequired(hm.authService)

	api := router.Group("/api")
	{
		api.POST("/login", hm.authHandler.Login)
		api.POST("/register", hm.authHandler.Register)

		// Exams are publicly listable so students can pick one to take.
		api.GET("/exams", hm.examHandler.ListExams)
		api.GET("/exams/:id", hm.examHandler.GetExam)
		api.POST("/exams", authRequired,
			RequireRoles(models.RoleInstructor, models.RoleAdmin),
			hm.examHandler.CreateExam)
		api.DELETE("/exams/:id", authRequired,
			RequireRoles(models.RoleInstructor, models.RoleAdmin),
			hm.examHandler.DeleteExam)
		api.GET("/exams/:id/submissions/export", authRequired,
			RequireRoles(models.RoleInstructor, models.RoleGrader, models.RoleAdmin),
			hm.examHandler.ExportResults)

		// Submission creation is the student-facing path and carries no
		// token; review and grading are gated.
		api.POST("/submissions", hm.submissionHandler.CreateSubmission)
		api.GET("/submissions", authRequired,
			RequireRoles(models.RoleInstructor, models.RoleGrader, models.RoleAdmin),
			hm.submissionHandler.ListSubmissions)
		api.POST("/submissions/:id/grade", authRequired,
			RequireRoles(models.RoleInstructor, models.RoleGrader, models.RoleAdmin),
			hm.submissionHandler.GradeSubmission)

		admin := api.Group("/admin", authRequired)
		{
			admin.POST("/reload-db",
				RequireRoles(models.RoleAdmin, models.RoleInstructor),
				hm.adminHandler.ReloadDB)
			admin.POST("/clear-submissions",
				RequireRoles(models.RoleAdmin),
				hm.adminHandler.ClearSubmissions)
			admin.POST("/clear-exams",
				RequireRoles(models.RoleAdmin),
				hm.adminHandler.ClearExams)
			admin.POST("/clear-all",
				RequireRoles(models.RoleAdmin),
				hm.adminHandler.ClearAll)
		}
	}
}
