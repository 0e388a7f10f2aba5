package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/eems-edu/exam-marking-service/internal/errors"
	"github.com/eems-edu/exam-marking-service/internal/events"
	"github.com/eems-edu/exam-marking-service/internal/models"
	"github.com/eems-edu/exam-marking-service/internal/store"
	"github.com/eems-edu/exam-marking-service/internal/utils"
	"github.com/eems-edu/exam-marking-service/internal/validator"
)

func newExamFixture(t *testing.T) (ExamService, *store.Store, *events.MockPublisher) {
	t.Helper()
	logger := utils.NewDevelopmentLogger()
	st := store.Open(filepath.Join(t.TempDir(), "data.json"), logger)
	publisher := events.NewMockPublisher()
	return NewExamService(st, publisher, validator.New(), logger), st, publisher
}

func validCreateRequest() CreateExamRequest {
	return CreateExamRequest{
		Title:           "Physics 101",
		DurationMinutes: 45,
		Questions: []models.Question{
			{ID: 1, Type: models.QuestionMCQ, Text: "Capital of France?", Marks: 5,
				Options: []string{"Paris", "London"}, Correct: "Paris"},
			{ID: 2, Type: models.QuestionNumeric, Text: "6 x 7 = ?", Marks: 3, Correct: 42.0},
		},
	}
}

func TestExamService_Create(t *testing.T) {
	svc, _, publisher := newExamFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest(), "instructor@test.com")
	require.NoError(t, err)

	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "instructor@test.com", created.CreatedBy)
	assert.Equal(t, models.StatusDraft, created.Status, "status defaults to draft")
	assert.Equal(t, 8.0, created.TotalMarks, "totalMarks is derived from the questions")
	assert.NotEmpty(t, created.CreatedAt)

	require.Len(t, publisher.PublishedEvents(), 1)
	assert.Equal(t, events.EventExamCreated, publisher.PublishedEvents()[0].Type)
}

func TestExamService_Create_Invalid(t *testing.T) {
	svc, st, _ := newExamFixture(t)
	ctx := context.Background()

	t.Run("missing title", func(t *testing.T) {
		req := validCreateRequest()
		req.Title = ""
		_, err := svc.Create(ctx, req, "instructor@test.com")
		var verrs apperrors.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("mcq answer not among options", func(t *testing.T) {
		req := validCreateRequest()
		req.Questions[0].Correct = "Madrid"
		_, err := svc.Create(ctx, req, "instructor@test.com")
		assert.Error(t, err)
	})

	t.Run("duplicate question ids", func(t *testing.T) {
		req := validCreateRequest()
		req.Questions[1].ID = req.Questions[0].ID
		_, err := svc.Create(ctx, req, "instructor@test.com")
		assert.Error(t, err)
	})

	assert.Empty(t, st.Exams(), "no invalid exam reaches the store")
}

func TestExamService_Create_Duplicate(t *testing.T) {
	svc, _, _ := newExamFixture(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, validCreateRequest(), "instructor@test.com")
	require.NoError(t, err)

	req := validCreateRequest()
	req.ID = first.ID
	_, err = svc.Create(ctx, req, "instructor@test.com")
	assert.ErrorIs(t, err, ErrDuplicateExam)
}

func TestExamService_Delete(t *testing.T) {
	svc, st, publisher := newExamFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest(), "instructor@test.com")
	require.NoError(t, err)
	_, err = st.AddSubmission(models.Submission{ExamID: created.ID, StudentName: "Alice", CreatedAt: models.NowISO()})
	require.NoError(t, err)

	result, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RemovedExams)
	assert.Equal(t, 1, result.RemovedSubmissions)
	assert.Empty(t, st.Submissions())

	evts := publisher.PublishedEvents()
	require.Len(t, evts, 2)
	assert.Equal(t, events.EventExamDeleted, evts[1].Type)

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Delete(ctx, 999)
		assert.ErrorIs(t, err, ErrExamNotFound)
	})
}

func TestExamService_Get(t *testing.T) {
	svc, _, _ := newExamFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateRequest(), "instructor@test.com")
	require.NoError(t, err)

	found, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, found.Title)

	_, err = svc.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrExamNotFound)
}
