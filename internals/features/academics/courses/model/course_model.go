package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — course status
============================== */

type CourseStatus string

const (
	CourseStatusActive   CourseStatus = "active"
	CourseStatusInactive CourseStatus = "inactive"
	CourseStatusArchived CourseStatus = "archived"
)

/* ==============================
   JSONB documents
============================== */

type CourseUnit struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
	CreditHours int    `json:"credit_hours,omitempty"`
}

type CourseFees struct {
	Total   float64 `json:"total"`
	PerTerm float64 `json:"per_term"`
	PerYear float64 `json:"per_year"`
}

/* ==============================
   MODEL
============================== */

type Course struct {
	CourseID uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`

	CourseName        string `gorm:"column:course_name;type:varchar(120);not null;uniqueIndex" json:"course_name"`
	CourseCode        string `gorm:"column:course_code;type:varchar(20);not null;uniqueIndex" json:"course_code"`
	CourseDescription string `gorm:"column:course_description;type:text;not null" json:"course_description"`
	CourseDepartment  string `gorm:"column:course_department;type:varchar(80);not null" json:"course_department"`
	CourseDuration    string `gorm:"column:course_duration;type:varchar(40);not null" json:"course_duration"`

	CourseUnits datatypes.JSONSlice[CourseUnit] `gorm:"column:course_units;type:jsonb" json:"course_units,omitempty"`
	CourseFees  datatypes.JSONType[CourseFees]  `gorm:"column:course_fees;type:jsonb" json:"course_fees"`

	CourseMaxStudents       int `gorm:"column:course_max_students;not null;default:100" json:"course_max_students"`
	CourseCurrentEnrollment int `gorm:"column:course_current_enrollment;not null;default:0" json:"course_current_enrollment"`

	CourseStatus CourseStatus `gorm:"column:course_status;type:varchar(20);not null;default:'active';index" json:"course_status"`

	CourseCreatedBy *uuid.UUID `gorm:"column:course_created_by;type:uuid" json:"course_created_by,omitempty"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;type:timestamptz;not null;default:now()" json:"course_created_at"`
	CourseUpdatedAt time.Time      `gorm:"column:course_updated_at;type:timestamptz;not null;default:now()" json:"course_updated_at"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;type:timestamptz;index" json:"-"`
}

func (Course) TableName() string { return "courses" }

func (m *Course) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	m.CourseCode = strings.ToUpper(strings.TrimSpace(m.CourseCode))
	if m.CourseCreatedAt.IsZero() {
		m.CourseCreatedAt = now
	}
	m.CourseUpdatedAt = now
	return nil
}

func (m *Course) BeforeUpdate(tx *gorm.DB) error {
	m.CourseCode = strings.ToUpper(strings.TrimSpace(m.CourseCode))
	m.CourseUpdatedAt = time.Now()
	return nil
}
