package validator

import (
	"fmt"

	apperrors "github.com/eems-edu/exam-marking-service/internal/errors"
	"github.com/eems-edu/exam-marking-service/internal/models"
)

// ValidateQuestions checks the question list of an exam: every question
// needs a positive id unique within the exam, non-negative marks, and the
// answer fields its type requires.
func (v *Validator) ValidateQuestions(questions []models.Question) error {
	var errs apperrors.ValidationErrors

	seen := make(map[int]struct{}, len(questions))
	for i, q := range questions {
		field := fmt.Sprintf("questions[%d]", i)

		if q.ID <= 0 {
			errs = append(errs, *apperrors.NewValidationError(field+".id", "must be a positive integer", q.ID))
		} else if _, dup := seen[q.ID]; dup {
			errs = append(errs, *apperrors.NewValidationError(field+".id", "must be unique within the exam", q.ID))
		} else {
			seen[q.ID] = struct{}{}
		}

		if q.Text == "" {
			errs = append(errs, *apperrors.NewValidationError(field+".text", "is required", nil))
		}
		if q.Marks < 0 {
			errs = append(errs, *apperrors.NewValidationError(field+".marks", "must not be negative", q.Marks))
		}

		errs = append(errs, validateQuestionContent(field, q)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateQuestionContent applies the per-variant rules of the question
// union.
func validateQuestionContent(field string, q models.Question) apperrors.ValidationErrors {
	var errs apperrors.ValidationErrors

	switch q.Type {
	case models.QuestionMCQ:
		if len(q.Options) < 2 {
			errs = append(errs, *apperrors.NewValidationError(field+".options", "must have at least 2 options", len(q.Options)))
		}
		correct, ok := q.Correct.(string)
		if !ok || correct == "" {
			errs = append(errs, *apperrors.NewValidationError(field+".correct", "must be a non-empty string", q.Correct))
			break
		}
		found := false
		for _, opt := range q.Options {
			if opt == correct {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, *apperrors.NewValidationError(field+".correct", "must be one of the options", correct))
		}

	case models.QuestionTrueFalse:
		if _, ok := q.Correct.(bool); !ok {
			errs = append(errs, *apperrors.NewValidationError(field+".correct", "must be a boolean", q.Correct))
		}

	case models.QuestionNumeric:
		switch q.Correct.(type) {
		case float64, int:
		default:
			errs = append(errs, *apperrors.NewValidationError(field+".correct", "must be a number", q.Correct))
		}

	case models.QuestionShort:
		if q.Answer == "" {
			errs = append(errs, *apperrors.NewValidationError(field+".answer", "is required", nil))
		}

	default:
		errs = append(errs, *apperrors.NewValidationError(field+".type", "must be a valid question type (mcq, truefalse, short, numeric)", string(q.Type)))
	}

	return errs
}
