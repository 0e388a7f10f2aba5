package models

import (
	"strconv"
	"time"
)

// QuestionType discriminates the question union.
type QuestionType string

const (
	QuestionMCQ       QuestionType = "mcq"
	QuestionTrueFalse QuestionType = "truefalse"
	QuestionShort     QuestionType = "short"
	QuestionNumeric   QuestionType = "numeric"
)

// ValidQuestionTypes lists every supported question kind.
var ValidQuestionTypes = []QuestionType{QuestionMCQ, QuestionTrueFalse, QuestionShort, QuestionNumeric}

func (t QuestionType) Valid() bool {
	for _, qt := range ValidQuestionTypes {
		if t == qt {
			return true
		}
	}
	return false
}

// ExamStatus tracks an exam's lifecycle.
type ExamStatus string

const (
	StatusDraft     ExamStatus = "draft"
	StatusPublished ExamStatus = "published"
	StatusClosed    ExamStatus = "closed"
)

// Question is a tagged union over the four question kinds. Correct holds the
// expected answer for mcq (string), truefalse (bool) and numeric (number)
// questions; short questions carry their expected text in Answer instead.
type Question struct {
	ID      int          `json:"id"`
	Type    QuestionType `json:"type"`
	Text    string       `json:"text"`
	Marks   float64      `json:"marks"`
	Options []string     `json:"options,omitempty"`
	Correct any          `json:"correct,omitempty"`
	Answer  string       `json:"answer,omitempty"`
}

// CanonicalAnswer returns the expected answer regardless of which field the
// question kind stores it in. The second return is false for unknown kinds.
func (q Question) CanonicalAnswer() (any, bool) {
	switch q.Type {
	case QuestionMCQ, QuestionTrueFalse, QuestionNumeric:
		return q.Correct, true
	case QuestionShort:
		return q.Answer, true
	default:
		return nil, false
	}
}

// Exam is an authored assessment. TotalMarks is derived from the question
// list on creation; Questions order is preserved as authored.
type Exam struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	DurationMinutes int        `json:"durationMinutes"`
	TotalMarks      float64    `json:"totalMarks"`
	Questions       []Question `json:"questions"`
	CreatedBy       string     `json:"createdBy,omitempty"`
	CreatedAt       string     `json:"createdAt"`
	Status          ExamStatus `json:"status,omitempty"`
}

// QuestionByID finds a question within the exam.
func (e Exam) QuestionByID(id int) (Question, bool) {
	for _, q := range e.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// SumMarks totals the marks across every question.
func (e Exam) SumMarks() float64 {
	var total float64
	for _, q := range e.Questions {
		total += q.Marks
	}
	return total
}

// NowISO renders the current time in the millisecond-precision UTC form used
// for every timestamp in the data file.
func NowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// AnswerKey renders a question id as the string key used in a submission's
// answers object.
func AnswerKey(questionID int) string {
	return strconv.Itoa(questionID)
}
