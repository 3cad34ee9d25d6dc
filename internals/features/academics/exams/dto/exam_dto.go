package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	exammodel "github.com/Davie-07/school-management-system/internals/features/academics/exams/model"
)

/* ==============================
   REQUEST DTO
============================== */

type ExamCreateDTO struct {
	Title        string              `json:"title" validate:"required,max=160"`
	CourseID     string              `json:"course_id" validate:"required,uuid"`
	LevelID      string              `json:"level_id" validate:"required,uuid"`
	TeacherID    string              `json:"teacher_id" validate:"omitempty,uuid"`
	Unit         *exammodel.ExamUnit `json:"unit" validate:"omitempty"`
	ExamType     string              `json:"exam_type" validate:"required,oneof=CAT midterm final supplementary special"`
	Term         string              `json:"term" validate:"omitempty,max=20"`
	TotalMarks   float64             `json:"total_marks" validate:"omitempty,gt=0"`
	PassMark     float64             `json:"pass_mark" validate:"omitempty,gte=0"`
	Date         time.Time           `json:"date" validate:"required"`
	Duration     int                 `json:"duration" validate:"omitempty,gt=0"`
	Venue        *string             `json:"venue" validate:"omitempty,max=120"`
	Instructions *string             `json:"instructions" validate:"omitempty"`
}

type ExamUpdateDTO struct {
	Title        *string    `json:"title" validate:"omitempty,max=160"`
	Status       *string    `json:"status" validate:"omitempty,oneof=scheduled ongoing completed marked published cancelled"`
	Date         *time.Time `json:"date" validate:"omitempty"`
	Duration     *int       `json:"duration" validate:"omitempty,gt=0"`
	Venue        *string    `json:"venue" validate:"omitempty,max=120"`
	Instructions *string    `json:"instructions" validate:"omitempty"`
	PassMark     *float64   `json:"pass_mark" validate:"omitempty,gte=0"`
}

type ResultEntryDTO struct {
	StudentID string  `json:"student_id" validate:"required,uuid"`
	Score     float64 `json:"score" validate:"gte=0"`
	Remarks   string  `json:"remarks" validate:"omitempty,max=300"`
}

type BulkResultsDTO struct {
	Results []ResultEntryDTO `json:"results" validate:"required,min=1,dive"`
}

type MisprintReportDTO struct {
	Issue string `json:"issue" validate:"required,max=1000"`
}

type MisprintResolveDTO struct {
	Resolution string   `json:"resolution" validate:"required,max=1000"`
	NewScore   *float64 `json:"new_score" validate:"omitempty,gte=0"`
}

/* ==============================
   Mappers
============================== */

func (d *ExamCreateDTO) ToModel(teacherID uuid.UUID, term string) exammodel.Exam {
	courseID, _ := uuid.Parse(d.CourseID)
	levelID, _ := uuid.Parse(d.LevelID)

	exam := exammodel.Exam{
		ExamTitle:      d.Title,
		ExamCourseID:   courseID,
		ExamLevelID:    levelID,
		ExamTeacherID:  teacherID,
		ExamType:       exammodel.ExamType(d.ExamType),
		ExamTerm:       term,
		ExamTotalMarks: 100,
		ExamPassMark:   50,
		ExamDate:       d.Date,
		ExamDuration:   120,
		ExamVenue:      d.Venue,
		ExamInstructions: d.Instructions,
		ExamResults:    datatypes.NewJSONSlice([]exammodel.ExamResult{}),
	}
	if d.Unit != nil {
		exam.ExamUnit = datatypes.NewJSONType(*d.Unit)
	}
	if d.TotalMarks > 0 {
		exam.ExamTotalMarks = d.TotalMarks
	}
	if d.PassMark > 0 {
		exam.ExamPassMark = d.PassMark
	}
	if d.Duration > 0 {
		exam.ExamDuration = d.Duration
	}
	return exam
}

func ApplyExamUpdate(exam *exammodel.Exam, d *ExamUpdateDTO) {
	if d.Title != nil {
		exam.ExamTitle = *d.Title
	}
	if d.Status != nil {
		exam.ExamStatus = exammodel.ExamStatus(*d.Status)
	}
	if d.Date != nil {
		exam.ExamDate = *d.Date
	}
	if d.Duration != nil {
		exam.ExamDuration = *d.Duration
	}
	if d.Venue != nil {
		exam.ExamVenue = d.Venue
	}
	if d.Instructions != nil {
		exam.ExamInstructions = d.Instructions
	}
	if d.PassMark != nil {
		exam.ExamPassMark = *d.PassMark
	}
}

/* ==============================
   RESPONSE DTO
============================== */

// StudentExamResult is one published result in a student transcript view.
type StudentExamResult struct {
	ExamID     uuid.UUID            `json:"exam_id"`
	Title      string               `json:"title"`
	ExamType   exammodel.ExamType   `json:"exam_type"`
	Term       string               `json:"term"`
	Date       time.Time            `json:"date"`
	TotalMarks float64              `json:"total_marks"`
	Result     exammodel.ExamResult `json:"result"`
}
