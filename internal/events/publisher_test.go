package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eems-edu/exam-marking-service/internal/models"
)

func TestChannelPublisher_RoundTrip(t *testing.T) {
	p := NewChannelPublisher("test.events", slog.Default())
	defer p.Close()

	ctx := context.Background()
	msgs, err := p.Subscribe(ctx)
	require.NoError(t, err)

	exam := models.Exam{ID: 7, Title: "Physics 101", CreatedBy: "instructor@test.com",
		Questions: []models.Question{{ID: 1, Type: models.QuestionMCQ}}, TotalMarks: 5}
	require.NoError(t, p.Publish(ctx, NewExamCreatedEvent(exam)))

	select {
	case msg := <-msgs:
		assert.Equal(t, string(EventExamCreated), msg.Metadata.Get("event_type"))
		assert.Equal(t, "exam-marking-service", msg.Metadata.Get("source"))

		var evt Event
		require.NoError(t, json.Unmarshal(msg.Payload, &evt))
		assert.Equal(t, EventExamCreated, evt.Type)
		assert.Equal(t, "1.0", evt.Version)
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestNewSubmissionCreatedEvent_FlagsManualWork(t *testing.T) {
	sub := models.Submission{
		ID: 1, ExamID: 2, StudentName: "Alice",
		PerQuestion: []models.PerQuestionResult{
			{QuestionID: 1, AutoGraded: true},
			{QuestionID: 2, AutoGraded: false},
		},
	}

	evt := NewSubmissionCreatedEvent(sub)
	payload, ok := evt.Data.(SubmissionCreatedEvent)
	require.True(t, ok)
	assert.True(t, payload.NeedsManualWork)

	sub.PerQuestion[1].AutoGraded = true
	evt = NewSubmissionCreatedEvent(sub)
	payload = evt.Data.(SubmissionCreatedEvent)
	assert.False(t, payload.NeedsManualWork)
}

func TestMockPublisher_Records(t *testing.T) {
	m := NewMockPublisher()
	require.NoError(t, m.Publish(context.Background(), NewExamDeletedEvent(3, 2)))

	events := m.PublishedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventExamDeleted, events[0].Type)
	assert.NotEmpty(t, events[0].ID)
}
