package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — exam lifecycle & type
   scheduled → ongoing → completed → marked → published;
   cancelled is terminal from any state.
============================== */

type ExamStatus string

const (
	ExamStatusScheduled ExamStatus = "scheduled"
	ExamStatusOngoing   ExamStatus = "ongoing"
	ExamStatusCompleted ExamStatus = "completed"
	ExamStatusMarked    ExamStatus = "marked"
	ExamStatusPublished ExamStatus = "published"
	ExamStatusCancelled ExamStatus = "cancelled"
)

type ExamType string

const (
	ExamTypeCAT           ExamType = "CAT"
	ExamTypeMidterm       ExamType = "midterm"
	ExamTypeFinal         ExamType = "final"
	ExamTypeSupplementary ExamType = "supplementary"
	ExamTypeSpecial       ExamType = "special"
)

/* ==============================
   JSONB documents
============================== */

type ExamUnit struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Misprint is a student-filed dispute against their own published result.
type Misprint struct {
	MisprintID uuid.UUID  `json:"misprint_id"`
	ReportedBy uuid.UUID  `json:"reported_by"`
	Issue      string     `json:"issue"`
	ReportedAt time.Time  `json:"reported_at"`
	Resolved   bool       `json:"resolved"`
	ResolvedBy *uuid.UUID `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	Resolution string     `json:"resolution,omitempty"`
}

// ExamResult is one student's score. Percentage and grade are derived from
// the score and the exam's total marks, never stored independently.
type ExamResult struct {
	StudentID   uuid.UUID  `json:"student_id"`
	Score       float64    `json:"score"`
	Percentage  float64    `json:"percentage"`
	Grade       string     `json:"grade"`
	Remarks     string     `json:"remarks,omitempty"`
	MarkedBy    uuid.UUID  `json:"marked_by"`
	MarkedAt    time.Time  `json:"marked_at"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Misprints   []Misprint `json:"misprints,omitempty"`
}

/* ==============================
   MODEL
============================== */

type Exam struct {
	ExamID uuid.UUID `gorm:"column:exam_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"exam_id"`

	ExamTitle string `gorm:"column:exam_title;type:varchar(160);not null" json:"exam_title"`

	ExamCourseID  uuid.UUID `gorm:"column:exam_course_id;type:uuid;not null;index:idx_exam_course_level,priority:1" json:"exam_course_id"`
	ExamLevelID   uuid.UUID `gorm:"column:exam_level_id;type:uuid;not null;index:idx_exam_course_level,priority:2" json:"exam_level_id"`
	ExamTeacherID uuid.UUID `gorm:"column:exam_teacher_id;type:uuid;not null;index" json:"exam_teacher_id"`

	ExamUnit datatypes.JSONType[ExamUnit] `gorm:"column:exam_unit;type:jsonb" json:"exam_unit"`

	ExamType ExamType `gorm:"column:exam_type;type:varchar(20);not null" json:"exam_type"`
	ExamTerm string   `gorm:"column:exam_term;type:varchar(20);not null;index" json:"exam_term"`

	ExamTotalMarks float64 `gorm:"column:exam_total_marks;not null;default:100" json:"exam_total_marks"`
	ExamPassMark   float64 `gorm:"column:exam_pass_mark;not null;default:50" json:"exam_pass_mark"`

	ExamDate     time.Time `gorm:"column:exam_date;type:timestamptz;not null;index" json:"exam_date"`
	ExamDuration int       `gorm:"column:exam_duration;not null;default:120" json:"exam_duration"` // minutes

	ExamVenue        *string `gorm:"column:exam_venue;type:varchar(120)" json:"exam_venue,omitempty"`
	ExamInstructions *string `gorm:"column:exam_instructions;type:text" json:"exam_instructions,omitempty"`

	ExamResults datatypes.JSONSlice[ExamResult] `gorm:"column:exam_results;type:jsonb" json:"exam_results"`

	ExamStatus ExamStatus `gorm:"column:exam_status;type:varchar(12);not null;default:'scheduled';index" json:"exam_status"`

	// Audit
	ExamCreatedAt time.Time      `gorm:"column:exam_created_at;type:timestamptz;not null;default:now()" json:"exam_created_at"`
	ExamUpdatedAt time.Time      `gorm:"column:exam_updated_at;type:timestamptz;not null;default:now()" json:"exam_updated_at"`
	ExamDeletedAt gorm.DeletedAt `gorm:"column:exam_deleted_at;type:timestamptz;index" json:"-"`
}

func (Exam) TableName() string { return "exams" }

func (m *Exam) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.ExamCreatedAt.IsZero() {
		m.ExamCreatedAt = now
	}
	m.ExamUpdatedAt = now
	return nil
}

func (m *Exam) BeforeUpdate(tx *gorm.DB) error {
	m.ExamUpdatedAt = time.Now()
	return nil
}

// ResultFor returns the index of the student's result, or -1.
func (m *Exam) ResultFor(studentID uuid.UUID) int {
	for i, r := range m.ExamResults {
		if r.StudentID == studentID {
			return i
		}
	}
	return -1
}
