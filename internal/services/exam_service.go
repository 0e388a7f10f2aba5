package services

import (
	"context"
	"errors"

	"github.com/eems-edu/exam-marking-service/internal/events"
	"github.com/eems-edu/exam-marking-service/internal/models"
	"github.com/eems-edu/exam-marking-service/internal/store"
	"github.com/eems-edu/exam-marking-service/internal/utils"
	"github.com/eems-edu/exam-marking-service/internal/validator"
)

type CreateExamRequest struct {
	ID              int               `json:"id"`
	Title           string            `json:"title" validate:"required,min=1,max=200"`
	DurationMinutes int               `json:"durationMinutes" validate:"required,min=1,max=600"`
	Questions       []models.Question `json:"questions" validate:"required,min=1"`
	Status          models.ExamStatus `json:"status"`
	CreatedAt       string            `json:"createdAt"`
}

type ExamService interface {
	List(ctx context.Context) []models.Exam
	Get(ctx context.Context, id int) (models.Exam, error)
	Create(ctx context.Context, req CreateExamRequest, createdBy string) (models.Exam, error)
	Delete(ctx context.Context, id int) (store.DeleteResult, error)
}

type examService struct {
	store     *store.Store
	publisher events.Publisher
	validator *validator.Validator
	logger    utils.Logger
}

func NewExamService(st *store.Store, publisher events.Publisher, v *validator.Validator, logger utils.Logger) ExamService {
	return &examService{
		store:     st,
		publisher: publisher,
		validator: v,
		logger:    logger,
	}
}

func (s *examService) List(ctx context.Context) []models.Exam {
	return s.store.Exams()
}

func (s *examService) Get(ctx context.Context, id int) (models.Exam, error) {
	exam, ok := s.store.FindExamByID(id)
	if !ok {
		return models.Exam{}, ErrExamNotFound
	}
	return exam, nil
}

// Create validates and stores a new exam, stamping the creator and deriving
// totalMarks from the question list.
func (s *examService) Create(ctx context.Context, req CreateExamRequest, createdBy string) (models.Exam, error) {
	if err := s.validator.Validate(&req); err != nil {
		return models.Exam{}, err
	}
	if err := s.validator.ValidateQuestions(req.Questions); err != nil {
		return models.Exam{}, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}

	exam := models.Exam{
		ID:              req.ID,
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		Questions:       req.Questions,
		CreatedBy:       createdBy,
		CreatedAt:       req.CreatedAt,
		Status:          status,
	}
	exam.TotalMarks = exam.SumMarks()

	created, err := s.store.AddExam(exam)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.Exam{}, ErrDuplicateExam
		}
		return models.Exam{}, err
	}

	if err := s.publisher.Publish(ctx, events.NewExamCreatedEvent(created)); err != nil {
		s.logger.LogError(err, "failed to publish exam.created", "exam_id", created.ID)
	}

	s.logger.Info("exam created", "exam_id", created.ID, "title", created.Title, "created_by", createdBy)
	return created, nil
}

// Delete removes the exam and every submission referencing it.
func (s *examService) Delete(ctx context.Context, id int) (store.DeleteResult, error) {
	result, err := s.store.DeleteExam(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.DeleteResult{}, ErrExamNotFound
		}
		return store.DeleteResult{}, err
	}

	if err := s.publisher.Publish(ctx, events.NewExamDeletedEvent(id, result.RemovedSubmissions)); err != nil {
		s.logger.LogError(err, "failed to publish exam.deleted", "exam_id", id)
	}

	s.logger.Info("exam deleted", "exam_id", id,
		"removed_exams", result.RemovedExams,
		"removed_submissions", result.RemovedSubmissions)
	return result, nil
}
