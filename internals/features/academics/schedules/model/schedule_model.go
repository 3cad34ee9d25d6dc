package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — session type, recurrence, lifecycle, attendance
============================== */

type ScheduleType string

const (
	ScheduleTypeLecture    ScheduleType = "lecture"
	ScheduleTypeLab        ScheduleType = "lab"
	ScheduleTypeTutorial   ScheduleType = "tutorial"
	ScheduleTypeExam       ScheduleType = "exam"
	ScheduleTypeAssignment ScheduleType = "assignment"
	ScheduleTypeEvent      ScheduleType = "event"
)

type RecurringPattern string

const (
	RecurringNone    RecurringPattern = "none"
	RecurringDaily   RecurringPattern = "daily"
	RecurringWeekly  RecurringPattern = "weekly"
	RecurringMonthly RecurringPattern = "monthly"
)

type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "scheduled"
	ScheduleStatusOngoing   ScheduleStatus = "ongoing"
	ScheduleStatusCompleted ScheduleStatus = "completed"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
	ScheduleStatusPostponed ScheduleStatus = "postponed"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

func IsValidAttendance(s AttendanceStatus) bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	}
	return false
}

/* ==============================
   JSONB documents
============================== */

type ScheduleUnit struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Attendee is one student's attendance mark for the session.
type Attendee struct {
	StudentID uuid.UUID        `json:"student_id"`
	Status    AttendanceStatus `json:"status"`
	MarkedAt  *time.Time       `json:"marked_at,omitempty"`
}

/* ==============================
   MODEL
============================== */

type Schedule struct {
	// PK
	ScheduleID uuid.UUID `gorm:"column:schedule_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"schedule_id"`

	ScheduleTeacherID uuid.UUID `gorm:"column:schedule_teacher_id;type:uuid;not null;index:idx_schedule_teacher_date" json:"schedule_teacher_id"`
	ScheduleCourseID  uuid.UUID `gorm:"column:schedule_course_id;type:uuid;not null;index:idx_schedule_course_level" json:"schedule_course_id"`
	ScheduleLevelID   uuid.UUID `gorm:"column:schedule_level_id;type:uuid;not null;index:idx_schedule_course_level" json:"schedule_level_id"`

	ScheduleUnit datatypes.JSONType[ScheduleUnit] `gorm:"column:schedule_unit;type:jsonb" json:"schedule_unit"`

	ScheduleTitle       string  `gorm:"column:schedule_title;type:varchar(160);not null" json:"schedule_title"`
	ScheduleDescription *string `gorm:"column:schedule_description;type:text" json:"schedule_description,omitempty"`

	ScheduleDate time.Time `gorm:"column:schedule_date;type:date;not null;index:idx_schedule_teacher_date" json:"schedule_date"`
	// 24h clock "HH:MM"; zero-padded so string order equals time order
	ScheduleStartTime string `gorm:"column:schedule_start_time;type:varchar(5);not null" json:"schedule_start_time"`
	ScheduleEndTime   string `gorm:"column:schedule_end_time;type:varchar(5);not null" json:"schedule_end_time"`

	ScheduleVenue string       `gorm:"column:schedule_venue;type:varchar(120);not null" json:"schedule_venue"`
	ScheduleType  ScheduleType `gorm:"column:schedule_type;type:varchar(20);not null;default:'lecture'" json:"schedule_type"`

	ScheduleRecurringPattern RecurringPattern `gorm:"column:schedule_recurring_pattern;type:varchar(10);not null;default:'none'" json:"schedule_recurring_pattern"`
	ScheduleRecurringEndDate *time.Time       `gorm:"column:schedule_recurring_end_date;type:date" json:"schedule_recurring_end_date,omitempty"`

	ScheduleAttendees datatypes.JSONSlice[Attendee] `gorm:"column:schedule_attendees;type:jsonb" json:"schedule_attendees"`

	ScheduleStatus       ScheduleStatus `gorm:"column:schedule_status;type:varchar(20);not null;default:'scheduled';index" json:"schedule_status"`
	ScheduleNotes        *string        `gorm:"column:schedule_notes;type:text" json:"schedule_notes,omitempty"`
	ScheduleCancelReason *string        `gorm:"column:schedule_cancel_reason;type:text" json:"schedule_cancel_reason,omitempty"`

	// Audit
	ScheduleCreatedAt time.Time      `gorm:"column:schedule_created_at;type:timestamptz;not null;default:now()" json:"schedule_created_at"`
	ScheduleUpdatedAt time.Time      `gorm:"column:schedule_updated_at;type:timestamptz;not null;default:now()" json:"schedule_updated_at"`
	ScheduleDeletedAt gorm.DeletedAt `gorm:"column:schedule_deleted_at;type:timestamptz;index" json:"-"`
}

func (Schedule) TableName() string { return "schedules" }

func (m *Schedule) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.ScheduleCreatedAt.IsZero() {
		m.ScheduleCreatedAt = now
	}
	m.ScheduleUpdatedAt = now
	return nil
}

func (m *Schedule) BeforeUpdate(tx *gorm.DB) error {
	m.ScheduleUpdatedAt = time.Now()
	return nil
}

// AttendeeFor returns the index of the student's attendance entry, -1 when absent.
func (m *Schedule) AttendeeFor(studentID uuid.UUID) int {
	for i := range m.ScheduleAttendees {
		if m.ScheduleAttendees[i].StudentID == studentID {
			return i
		}
	}
	return -1
}
