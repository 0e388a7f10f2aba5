package store

import (
	"slices"

	"github.com/eems-edu/exam-marking-service/internal/models"
)

// Submissions returns a copy of the submission collection.
func (s *Store) Submissions() []models.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Submissions)
}

// SubmissionsByExam returns the submissions referencing one exam.
func (s *Store) SubmissionsByExam(examID int) []models.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Submission, 0)
	for _, sub := range s.state.Submissions {
		if sub.ExamID == examID {
			out = append(out, sub)
		}
	}
	return out
}

// FindSubmissionByID looks a submission up by id.
func (s *Store) FindSubmissionByID(id int) (models.Submission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.state.Submissions {
		if sub.ID == id {
			return sub, true
		}
	}
	return models.Submission{}, false
}

// AddSubmission stores a new submission, assigning the next sequential id
// (starting at 1) when the caller supplies none. An exact duplicate of
// (examId, studentName, createdAt) is rejected with ErrDuplicate.
func (s *Store) AddSubmission(sub models.Submission) (models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.state.Submissions {
		if existing.ExamID == sub.ExamID &&
			existing.StudentName == sub.StudentName &&
			existing.CreatedAt == sub.CreatedAt {
			return models.Submission{}, ErrDuplicate
		}
	}

	if sub.ID == 0 {
		sub.ID = maxID(s.state.Submissions, func(x models.Submission) int { return x.ID }) + 1
	}

	s.state.Submissions = append(s.state.Submissions, sub)
	s.save()
	return sub, nil
}

// UpdateSubmission replaces the stored submission matching id. Returns
// ErrNotFound, without mutating anything, when no submission matches.
func (s *Store) UpdateSubmission(sub models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.state.Submissions {
		if existing.ID == sub.ID {
			s.state.Submissions[i] = sub
			s.save()
			return nil
		}
	}
	return ErrNotFound
}

// ClearSubmissions empties the submission collection, returning the count
// removed.
func (s *Store) ClearSubmissions() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.state.Submissions)
	s.state.Submissions = []models.Submission{}
	s.save()
	return removed
}
