package service

import (
	"time"

	"github.com/google/uuid"

	exammodel "github.com/Davie-07/school-management-system/internals/features/academics/exams/model"
)

// Grade maps a percentage to the fixed grading bands. The bands are not
// configurable per exam.
func Grade(percentage float64) string {
	switch {
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	case percentage >= 40:
		return "E"
	default:
		return "F"
	}
}

// Percentage computes score over total marks. A zero totalMarks exam yields
// zero rather than dividing.
func Percentage(score, totalMarks float64) float64 {
	if totalMarks <= 0 {
		return 0
	}
	return score / totalMarks * 100
}

// ScoreResult builds the derived fields for one student's score.
func ScoreResult(studentID uuid.UUID, score float64, remarks string, totalMarks float64, markedBy uuid.UUID, now time.Time) exammodel.ExamResult {
	pct := Percentage(score, totalMarks)
	return exammodel.ExamResult{
		StudentID:  studentID,
		Score:      score,
		Percentage: pct,
		Grade:      Grade(pct),
		Remarks:    remarks,
		MarkedBy:   markedBy,
		MarkedAt:   now,
	}
}

// UpsertResult merges a fresh scoring into the results list by student id.
// Existing publication state and misprint history survive a re-mark.
func UpsertResult(results []exammodel.ExamResult, fresh exammodel.ExamResult) []exammodel.ExamResult {
	for i, r := range results {
		if r.StudentID == fresh.StudentID {
			fresh.Published = r.Published
			fresh.PublishedAt = r.PublishedAt
			fresh.Misprints = r.Misprints
			results[i] = fresh
			return results
		}
	}
	return append(results, fresh)
}

// Publish flips every result to published with the same timestamp. The exam
// status change is the caller's job. Irreversible.
func Publish(results []exammodel.ExamResult, now time.Time) []exammodel.ExamResult {
	for i := range results {
		results[i].Published = true
		results[i].PublishedAt = &now
	}
	return results
}

// Rescore overwrites one result's score after a misprint resolution and
// recomputes the derived fields.
func Rescore(result *exammodel.ExamResult, newScore, totalMarks float64) {
	result.Score = newScore
	result.Percentage = Percentage(newScore, totalMarks)
	result.Grade = Grade(result.Percentage)
}
