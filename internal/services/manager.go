package services

import (
	"time"

	"github.com/eems-edu/exam-marking-service/internal/events"
	"github.com/eems-edu/exam-marking-service/internal/store"
	"github.com/eems-edu/exam-marking-service/internal/utils"
	"github.com/eems-edu/exam-marking-service/internal/validator"
)

// ServiceManager bundles every service behind one constructor so the
// entrypoint and the handler layer share a single wiring point.
type ServiceManager interface {
	Auth() AuthService
	Exam() ExamService
	Submission() SubmissionService
	Export() ExportService
	Store() *store.Store
}

type serviceManager struct {
	auth       AuthService
	exam       ExamService
	submission SubmissionService
	export     ExportService
	store      *store.Store
}

func NewServiceManager(
	st *store.Store,
	publisher events.Publisher,
	v *validator.Validator,
	logger utils.Logger,
	jwtSecret string,
	tokenTTL time.Duration,
) ServiceManager {
	return &serviceManager{
		auth:       NewAuthService(st, v, logger, jwtSecret, tokenTTL),
		exam:       NewExamService(st, publisher, v, logger),
		submission: NewSubmissionService(st, publisher, v, logger),
		export:     NewExportService(st, logger),
		store:      st,
	}
}

func (m *serviceManager) Auth() AuthService              { return m.auth }
func (m *serviceManager) Exam() ExamService              { return m.exam }
func (m *serviceManager) Submission() SubmissionService  { return m.submission }
func (m *serviceManager) Export() ExportService          { return m.export }
func (m *serviceManager) Store() *store.Store            { return m.store }
