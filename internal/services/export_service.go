package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/eems-edu/exam-marking-service/internal/store"
	"github.com/eems-edu/exam-marking-service/internal/utils"
)

// ExportService renders grading results as downloadable spreadsheets.
type ExportService interface {
	ExportExamResults(ctx context.Context, examID int) ([]byte, error)
}

type exportService struct {
	store  *store.Store
	logger utils.Logger
}

func NewExportService(st *store.Store, logger utils.Logger) ExportService {
	return &exportService{store: st, logger: logger}
}

// ExportExamResults produces an .xlsx workbook with one row per submission
// for the given exam.
func (s *exportService) ExportExamResults(ctx context.Context, examID int) ([]byte, error) {
	exam, ok := s.store.FindExamByID(examID)
	if !ok {
		return nil, ErrExamNotFound
	}
	submissions := s.store.SubmissionsByExam(examID)

	f := excelize.NewFile()
	sheetName := "Results"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"Submission ID", "Student Name", "Submitted At", "Awarded", "Total Marks",
		"Auto-Graded Questions", "Manual-Review Questions", "Tab Switches", "Duration (s)",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, sub := range submissions {
		autoGraded := 0
		for _, pq := range sub.PerQuestion {
			if pq.AutoGraded {
				autoGraded++
			}
		}

		row := []interface{}{
			sub.ID,
			sub.StudentName,
			sub.CreatedAt,
			sub.Awarded,
			sub.TotalMarks,
			autoGraded,
			len(sub.PerQuestion) - autoGraded,
			sub.Metadata.TabSwitchCount,
			sub.Metadata.DurationSeconds,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("exported exam results", "exam_id", exam.ID, "submissions", len(submissions))
	return buf.Bytes(), nil
}
