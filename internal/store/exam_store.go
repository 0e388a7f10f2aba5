package store

import (
	"slices"
	"time"

	"github.com/eems-edu/exam-marking-service/internal/models"
)

// DeleteResult reports how many items a cascading delete removed.
type DeleteResult struct {
	RemovedExams       int `json:"removedExams"`
	RemovedSubmissions int `json:"removedSubmissions"`
}

// Exams returns a copy of the exam collection.
func (s *Store) Exams() []models.Exam {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Exams)
}

// FindExamByID looks an exam up by id.
func (s *Store) FindExamByID(id int) (models.Exam, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.state.Exams {
		if e.ID == id {
			return e, true
		}
	}
	return models.Exam{}, false
}

// AddExam stores a new exam. When the caller supplies no id the next
// sequential one is assigned, falling back to a time-based id if arithmetic
// yields an unusable value. CreatedAt is stamped if absent. Returns
// ErrDuplicate when an exam with the same id, or the same title+createdAt
// pair, already exists.
func (s *Store) AddExam(exam models.Exam) (models.Exam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if exam.ID == 0 {
		next := maxID(s.state.Exams, func(e models.Exam) int { return e.ID }) + 1
		if next <= 0 {
			next = int(time.Now().UnixMilli())
		}
		exam.ID = next
	}
	if exam.CreatedAt == "" {
		exam.CreatedAt = models.NowISO()
	}

	for _, e := range s.state.Exams {
		if e.ID == exam.ID {
			return models.Exam{}, ErrDuplicate
		}
		if exam.Title != "" && exam.CreatedAt != "" &&
			e.Title == exam.Title && e.CreatedAt == exam.CreatedAt {
			return models.Exam{}, ErrDuplicate
		}
	}

	s.state.Exams = append(s.state.Exams, exam)
	s.save()
	return exam, nil
}

// DeleteExam removes the exam and cascades to every submission referencing
// it, reporting counts removed. Returns ErrNotFound when nothing matched.
func (s *Store) DeleteExam(id int) (DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	beforeExams := len(s.state.Exams)
	beforeSubs := len(s.state.Submissions)

	s.state.Exams = slices.DeleteFunc(s.state.Exams, func(e models.Exam) bool {
		return e.ID == id
	})
	s.state.Submissions = slices.DeleteFunc(s.state.Submissions, func(sub models.Submission) bool {
		return sub.ExamID == id
	})

	result := DeleteResult{
		RemovedExams:       beforeExams - len(s.state.Exams),
		RemovedSubmissions: beforeSubs - len(s.state.Submissions),
	}
	if result.RemovedExams == 0 && result.RemovedSubmissions == 0 {
		return DeleteResult{}, ErrNotFound
	}

	s.save()
	return result, nil
}

// ClearExams empties the exam collection and, with it, every submission.
func (s *Store) ClearExams() DeleteResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := DeleteResult{
		RemovedExams:       len(s.state.Exams),
		RemovedSubmissions: len(s.state.Submissions),
	}
	s.state.Exams = []models.Exam{}
	s.state.Submissions = []models.Submission{}
	s.save()
	return result
}

// ClearAllExceptUsers empties exams and submissions but keeps user accounts.
func (s *Store) ClearAllExceptUsers() DeleteResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := DeleteResult{
		RemovedExams:       len(s.state.Exams),
		RemovedSubmissions: len(s.state.Submissions),
	}
	s.state.Exams = []models.Exam{}
	s.state.Submissions = []models.Submission{}
	s.save()
	return result
}
