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

type CreateSubmissionRequest struct {
	ExamID      int                       `json:"examId" validate:"required,min=1"`
	StudentName string                    `json:"studentName" validate:"required,min=1"`
	Answers     map[string]any            `json:"answers"`
	Metadata    models.SubmissionMetadata `json:"metadata"`
	CreatedAt   string                    `json:"createdAt"`
}

type SubmissionService interface {
	List(ctx context.Context, examID *int) []models.Submission
	Get(ctx context.Context, id int) (models.Submission, error)
	Create(ctx context.Context, req CreateSubmissionRequest) (models.Submission, error)
	Grade(ctx context.Context, submissionID int, overrides []GradeOverride, gradedBy string) (models.Submission, error)
}

type submissionService struct {
	store     *store.Store
	publisher events.Publisher
	validator *validator.Validator
	logger    utils.Logger
}

func NewSubmissionService(st *store.Store, publisher events.Publisher, v *validator.Validator, logger utils.Logger) SubmissionService {
	return &submissionService{
		store:     st,
		publisher: publisher,
		validator: v,
		logger:    logger,
	}
}

func (s *submissionService) List(ctx context.Context, examID *int) []models.Submission {
	if examID != nil {
		return s.store.SubmissionsByExam(*examID)
	}
	return s.store.Submissions()
}

func (s *submissionService) Get(ctx context.Context, id int) (models.Submission, error) {
	sub, ok := s.store.FindSubmissionByID(id)
	if !ok {
		return models.Submission{}, ErrSubmissionNotFound
	}
	return sub, nil
}

// Create scores the raw answers against the referenced exam and persists the
// resulting submission. The per-question sequence snapshots the exam's
// questions at this moment; later exam edits never alter it.
func (s *submissionService) Create(ctx context.Context, req CreateSubmissionRequest) (models.Submission, error) {
	if err := s.validator.Validate(&req); err != nil {
		return models.Submission{}, err
	}

	exam, ok := s.store.FindExamByID(req.ExamID)
	if !ok {
		return models.Submission{}, ErrExamNotFound
	}

	createdAt := req.CreatedAt
	if createdAt == "" {
		createdAt = models.NowISO()
	}

	sub := models.Submission{
		ExamID:      exam.ID,
		ExamTitle:   exam.Title,
		StudentName: req.StudentName,
		PerQuestion: GradeExam(exam, req.Answers),
		Metadata:    req.Metadata,
		TotalMarks:  exam.TotalMarks,
		CreatedAt:   createdAt,
	}
	if sub.TotalMarks == 0 {
		sub.TotalMarks = exam.SumMarks()
	}
	sub.RecomputeAwarded()

	created, err := s.store.AddSubmission(sub)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.Submission{}, ErrDuplicateSubmission
		}
		return models.Submission{}, err
	}

	if err := s.publisher.Publish(ctx, events.NewSubmissionCreatedEvent(created)); err != nil {
		s.logger.LogError(err, "failed to publish submission.created", "submission_id", created.ID)
	}

	s.logger.Info("submission created",
		"submission_id", created.ID,
		"exam_id", created.ExamID,
		"student", created.StudentName,
		"awarded", created.Awarded,
		"total_marks", created.TotalMarks)
	return created, nil
}

// Grade merges manual overrides into a submission and recomputes its total.
// Fails with a not-found error when the submission id does not resolve or
// when none of the supplied question ids match any per-question entry.
func (s *submissionService) Grade(ctx context.Context, submissionID int, overrides []GradeOverride, gradedBy string) (models.Submission, error) {
	for i := range overrides {
		if err := s.validator.Validate(&overrides[i]); err != nil {
			return models.Submission{}, err
		}
	}

	sub, ok := s.store.FindSubmissionByID(submissionID)
	if !ok {
		return models.Submission{}, ErrSubmissionNotFound
	}

	if ApplyOverrides(&sub, overrides) == 0 {
		return models.Submission{}, ErrNoMatchingQuestions
	}

	if err := s.store.UpdateSubmission(sub); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Submission{}, ErrSubmissionNotFound
		}
		return models.Submission{}, err
	}

	if err := s.publisher.Publish(ctx, events.NewSubmissionGradedEvent(sub, gradedBy)); err != nil {
		s.logger.LogError(err, "failed to publish submission.graded", "submission_id", sub.ID)
	}

	s.logger.Info("submission graded",
		"submission_id", sub.ID,
		"graded_by", gradedBy,
		"awarded", sub.Awarded)
	return sub, nil
}
