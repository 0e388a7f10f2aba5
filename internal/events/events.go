package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/eems-edu/exam-marking-service/internal/models"
)

// EventType represents different types of domain events
type EventType string

const (
	EventExamCreated       EventType = "exam.created"
	EventExamDeleted       EventType = "exam.deleted"
	EventSubmissionCreated EventType = "submission.created"
	EventSubmissionGraded  EventType = "submission.graded"
)

// Event is the base structure for all domain events
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Data      any       `json:"data"`
}

const eventSource = "exam-marking-service"

type ExamCreatedEvent struct {
	ExamID        int     `json:"exam_id"`
	Title         string  `json:"title"`
	CreatedBy     string  `json:"created_by"`
	QuestionCount int     `json:"question_count"`
	TotalMarks    float64 `json:"total_marks"`
}

type ExamDeletedEvent struct {
	ExamID             int `json:"exam_id"`
	RemovedSubmissions int `json:"removed_submissions"`
}

type SubmissionCreatedEvent struct {
	SubmissionID    int     `json:"submission_id"`
	ExamID          int     `json:"exam_id"`
	ExamTitle       string  `json:"exam_title"`
	StudentName     string  `json:"student_name"`
	Awarded         float64 `json:"awarded"`
	TotalMarks      float64 `json:"total_marks"`
	NeedsManualWork bool    `json:"needs_manual_grading"`
}

type SubmissionGradedEvent struct {
	SubmissionID int     `json:"submission_id"`
	ExamID       int     `json:"exam_id"`
	Awarded      float64 `json:"awarded"`
	TotalMarks   float64 `json:"total_marks"`
	GradedBy     string  `json:"graded_by"`
}

// Event factory functions

func NewExamCreatedEvent(exam models.Exam) *Event {
	return newEvent(EventExamCreated, ExamCreatedEvent{
		ExamID:        exam.ID,
		Title:         exam.Title,
		CreatedBy:     exam.CreatedBy,
		QuestionCount: len(exam.Questions),
		TotalMarks:    exam.TotalMarks,
	})
}

func NewExamDeletedEvent(examID, removedSubmissions int) *Event {
	return newEvent(EventExamDeleted, ExamDeletedEvent{
		ExamID:             examID,
		RemovedSubmissions: removedSubmissions,
	})
}

func NewSubmissionCreatedEvent(sub models.Submission) *Event {
	needsManual := false
	for _, pq := range sub.PerQuestion {
		if !pq.AutoGraded {
			needsManual = true
			break
		}
	}
	return newEvent(EventSubmissionCreated, SubmissionCreatedEvent{
		SubmissionID:    sub.ID,
		ExamID:          sub.ExamID,
		ExamTitle:       sub.ExamTitle,
		StudentName:     sub.StudentName,
		Awarded:         sub.Awarded,
		TotalMarks:      sub.TotalMarks,
		NeedsManualWork: needsManual,
	})
}

func NewSubmissionGradedEvent(sub models.Submission, gradedBy string) *Event {
	return newEvent(EventSubmissionGraded, SubmissionGradedEvent{
		SubmissionID: sub.ID,
		ExamID:       sub.ExamID,
		Awarded:      sub.Awarded,
		TotalMarks:   sub.TotalMarks,
		GradedBy:     gradedBy,
	})
}

func newEvent(eventType EventType, data any) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   "1.0",
		Data:      data,
	}
}
