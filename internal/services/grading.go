package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eems-edu/exam-marking-service/internal/models"
)

// The grading engine is a set of pure functions: an exam's questions plus a
// student's raw answers in, scored per-question results out. Persistence and
// event publishing live in the submission service.

// NormalizeAnswer coerces a raw answer value to a comparable string: render
// to text, trim whitespace, lowercase. Numbers render without a trailing
// ".0" so 42 and 42.0 compare equal.
func NormalizeAnswer(v any) string {
	var s string
	switch val := v.(type) {
	case nil:
		s = ""
	case string:
		s = val
	case bool:
		s = strconv.FormatBool(val)
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		s = strconv.Itoa(val)
	default:
		s = fmt.Sprint(val)
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// GradeQuestion scores a single question against the student's raw answer.
//
// mcq, truefalse and numeric questions are always auto-graded: full marks on
// a normalized match, zero otherwise. A short question earns full marks only
// on an exact normalized match; any other answer is left at zero with
// autoGraded=false, flagging it for manual review — partial credit on short
// answers always requires a human.
func GradeQuestion(q models.Question, studentAnswer any) models.PerQuestionResult {
	correctAnswer, _ := q.CanonicalAnswer()

	result := models.PerQuestionResult{
		QuestionID:    q.ID,
		QuestionText:  q.Text,
		Type:          q.Type,
		StudentAnswer: studentAnswer,
		CorrectAnswer: correctAnswer,
		Marks:         q.Marks,
	}

	match := NormalizeAnswer(studentAnswer) == NormalizeAnswer(correctAnswer)

	switch q.Type {
	case models.QuestionMCQ, models.QuestionTrueFalse, models.QuestionNumeric:
		result.AutoGraded = true
		if match {
			result.Awarded = q.Marks
		}
	case models.QuestionShort:
		if match {
			result.AutoGraded = true
			result.Awarded = q.Marks
		}
	default:
		// Unknown question kind: nothing to compare against, leave for a
		// human.
	}

	return result
}

// GradeExam scores every question of the exam, producing exactly one result
// per question in exam order. Answers are keyed by question id rendered as a
// string; a missing key grades as an empty answer.
func GradeExam(exam models.Exam, answers map[string]any) []models.PerQuestionResult {
	results := make([]models.PerQuestionResult, 0, len(exam.Questions))
	for _, q := range exam.Questions {
		results = append(results, GradeQuestion(q, answers[models.AnswerKey(q.ID)]))
	}
	return results
}

// GradeOverride is one manual grading action: a grader overwriting the award
// and feedback of a single question inside a submission.
type GradeOverride struct {
	QuestionID int     `json:"questionId" validate:"required,min=1"`
	Awarded    float64 `json:"awarded" validate:"min=0"`
	Feedback   string  `json:"feedback"`
}

// ApplyOverrides merges manual grade overrides into the submission and
// recomputes its total. Returns the number of overrides that matched a
// per-question entry; entries with unknown question ids are skipped.
func ApplyOverrides(sub *models.Submission, overrides []GradeOverride) int {
	matched := 0
	for _, ov := range overrides {
		for i := range sub.PerQuestion {
			if sub.PerQuestion[i].QuestionID == ov.QuestionID {
				sub.PerQuestion[i].Awarded = ov.Awarded
				sub.PerQuestion[i].Feedback = ov.Feedback
				matched++
				break
			}
		}
	}
	if matched > 0 {
		sub.RecomputeAwarded()
	}
	return matched
}
