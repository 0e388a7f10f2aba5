package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/eems-edu/exam-marking-service/internal/errors"
	"github.com/eems-edu/exam-marking-service/internal/models"
)

func validQuestions() []models.Question {
	return []models.Question{
		{ID: 1, Type: models.QuestionMCQ, Text: "Capital of France?", Marks: 5,
			Options: []string{"Paris", "London"}, Correct: "Paris"},
		{ID: 2, Type: models.QuestionTrueFalse, Text: "The sky is blue.", Marks: 2, Correct: true},
		{ID: 3, Type: models.QuestionShort, Text: "Name the property.", Marks: 10, Answer: "inertia"},
		{ID: 4, Type: models.QuestionNumeric, Text: "6 x 7 = ?", Marks: 3, Correct: 42.0},
	}
}

func TestValidateQuestions_Valid(t *testing.T) {
	v := New()
	assert.NoError(t, v.ValidateQuestions(validQuestions()))
}

func TestValidateQuestions_Invalid(t *testing.T) {
	v := New()

	mutate := func(fn func(qs []models.Question)) []models.Question {
		qs := validQuestions()
		fn(qs)
		return qs
	}

	tests := []struct {
		name      string
		questions []models.Question
		field     string
	}{
		{
			"non-positive id",
			mutate(func(qs []models.Question) { qs[0].ID = 0 }),
			"questions[0].id",
		},
		{
			"duplicate id",
			mutate(func(qs []models.Question) { qs[1].ID = qs[0].ID }),
			"questions[1].id",
		},
		{
			"missing text",
			mutate(func(qs []models.Question) { qs[0].Text = "" }),
			"questions[0].text",
		},
		{
			"negative marks",
			mutate(func(qs []models.Question) { qs[0].Marks = -1 }),
			"questions[0].marks",
		},
		{
			"mcq with one option",
			mutate(func(qs []models.Question) { qs[0].Options = []string{"Paris"} }),
			"questions[0].options",
		},
		{
			"mcq answer not among options",
			mutate(func(qs []models.Question) { qs[0].Correct = "Madrid" }),
			"questions[0].correct",
		},
		{
			"mcq answer is not a string",
			mutate(func(qs []models.Question) { qs[0].Correct = 3 }),
			"questions[0].correct",
		},
		{
			"truefalse answer is not a bool",
			mutate(func(qs []models.Question) { qs[1].Correct = "yes" }),
			"questions[1].correct",
		},
		{
			"short without expected answer",
			mutate(func(qs []models.Question) { qs[2].Answer = "" }),
			"questions[2].answer",
		},
		{
			"numeric answer is not a number",
			mutate(func(qs []models.Question) { qs[3].Correct = "forty-two" }),
			"questions[3].correct",
		},
		{
			"unknown type",
			mutate(func(qs []models.Question) { qs[0].Type = "essay" }),
			"questions[0].type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateQuestions(tt.questions)
			require.Error(t, err)

			verrs, ok := err.(apperrors.ValidationErrors)
			require.True(t, ok)

			fields := make([]string, 0, len(verrs))
			for _, ve := range verrs {
				fields = append(fields, ve.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidate_StructTags(t *testing.T) {
	v := New()

	type payload struct {
		Email string          `json:"email" validate:"required,email"`
		Role  models.UserRole `json:"role" validate:"omitempty,user_role"`
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(&payload{Email: "a@test.com", Role: models.RoleGrader}))
	})

	t.Run("error fields use json names", func(t *testing.T) {
		err := v.Validate(&payload{Email: "not-an-email", Role: "superuser"})
		require.Error(t, err)

		verrs, ok := err.(apperrors.ValidationErrors)
		require.True(t, ok)
		require.Len(t, verrs, 2)
		assert.Equal(t, "email", verrs[0].Field)
		assert.Equal(t, "role", verrs[1].Field)
	})
}
