package models

// VisibilityEvent records a browser visibility change observed while the
// student had the exam open.
type VisibilityEvent struct {
	At         string `json:"at"`
	Visibility string `json:"visibility"`
}

// SubmissionMetadata carries timing and integrity data captured by the exam
// client. The server stores it as-is; nothing here affects scoring.
type SubmissionMetadata struct {
	StartedAt        string             `json:"startedAt,omitempty"`
	EndedAt          string             `json:"endedAt,omitempty"`
	DurationSeconds  float64            `json:"durationSeconds,omitempty"`
	PerQuestionTimes map[string]float64 `json:"perQuestionTimes,omitempty"`
	TabSwitchCount   int                `json:"tabSwitchCount,omitempty"`
	VisibilityEvents []VisibilityEvent  `json:"visibilityEvents,omitempty"`
}

// PerQuestionResult is one scored answer inside a submission. StudentAnswer
// and CorrectAnswer keep whatever JSON value the client and exam supplied.
type PerQuestionResult struct {
	QuestionID    int          `json:"questionId"`
	QuestionText  string       `json:"questionText"`
	Type          QuestionType `json:"type"`
	StudentAnswer any          `json:"studentAnswer"`
	CorrectAnswer any          `json:"correctAnswer"`
	Marks         float64      `json:"marks"`
	Awarded       float64      `json:"awarded"`
	AutoGraded    bool         `json:"autoGraded"`
	Feedback      string       `json:"feedback,omitempty"`
}

// Submission is one student's completed attempt at one exam. PerQuestion is
// a snapshot of the exam's questions at submission time; later exam edits do
// not alter it. Awarded is always the sum of PerQuestion awards and must be
// recomputed whenever any per-question award changes.
type Submission struct {
	ID          int                 `json:"id"`
	ExamID      int                 `json:"examId"`
	ExamTitle   string              `json:"examTitle"`
	StudentName string              `json:"studentName"`
	PerQuestion []PerQuestionResult `json:"perQuestion"`
	Metadata    SubmissionMetadata  `json:"metadata"`
	TotalMarks  float64             `json:"totalMarks"`
	Awarded     float64             `json:"awarded"`
	CreatedAt   string              `json:"createdAt"`
}

// RecomputeAwarded re-derives the submission total from its per-question
// entries.
func (s *Submission) RecomputeAwarded() {
	var total float64
	for _, pq := range s.PerQuestion {
		total += pq.Awarded
	}
	s.Awarded = total
}
