package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	schedulemodel "github.com/Davie-07/school-management-system/internals/features/academics/schedules/model"
)

/* ==============================
   REQUEST DTO
============================== */

type ScheduleUnitDTO struct {
	Name string `json:"name" validate:"omitempty,max=120"`
	Code string `json:"code" validate:"omitempty,max=20"`
}

type ScheduleCreateDTO struct {
	// Admin only; teachers always schedule for themselves.
	TeacherID *string `json:"teacher" validate:"omitempty,uuid4"`

	CourseID string           `json:"course" validate:"required,uuid4"`
	LevelID  string           `json:"level" validate:"required,uuid4"`
	Unit     *ScheduleUnitDTO `json:"unit"`

	Title       string  `json:"title" validate:"required,min=3,max=160"`
	Description *string `json:"description"`

	Date      time.Time `json:"date" validate:"required"`
	StartTime string    `json:"startTime" validate:"required,len=5"`
	EndTime   string    `json:"endTime" validate:"required,len=5,gtfield=StartTime"`
	Venue     string    `json:"venue" validate:"required,max=120"`

	Type             string     `json:"type" validate:"omitempty,oneof=lecture lab tutorial exam assignment event"`
	RecurringPattern string     `json:"recurringPattern" validate:"omitempty,oneof=none daily weekly monthly"`
	RecurringEndDate *time.Time `json:"recurringEndDate"`

	Notes *string `json:"notes"`
}

type ScheduleUpdateDTO struct {
	Unit        *ScheduleUnitDTO `json:"unit"`
	Title       *string          `json:"title" validate:"omitempty,min=3,max=160"`
	Description *string          `json:"description"`

	Date      *time.Time `json:"date"`
	StartTime *string    `json:"startTime" validate:"omitempty,len=5"`
	EndTime   *string    `json:"endTime" validate:"omitempty,len=5"`
	Venue     *string    `json:"venue" validate:"omitempty,max=120"`

	Type   *string `json:"type" validate:"omitempty,oneof=lecture lab tutorial exam assignment event"`
	Status *string `json:"status" validate:"omitempty,oneof=scheduled ongoing completed cancelled postponed"`
	Notes  *string `json:"notes"`
}

type AttendanceDTO struct {
	StudentID string `json:"studentId" validate:"required,uuid4"`
	Status    string `json:"status" validate:"required,oneof=present absent late excused"`
}

type CancelDTO struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

/* ==============================
   MAPPING
============================== */

func (r *ScheduleCreateDTO) ToModel(teacherID uuid.UUID) schedulemodel.Schedule {
	courseID, _ := uuid.Parse(r.CourseID)
	levelID, _ := uuid.Parse(r.LevelID)

	sch := schedulemodel.Schedule{
		ScheduleTeacherID:        teacherID,
		ScheduleCourseID:         courseID,
		ScheduleLevelID:          levelID,
		ScheduleTitle:            r.Title,
		ScheduleDescription:      r.Description,
		ScheduleDate:             r.Date,
		ScheduleStartTime:        r.StartTime,
		ScheduleEndTime:          r.EndTime,
		ScheduleVenue:            r.Venue,
		ScheduleType:             schedulemodel.ScheduleTypeLecture,
		ScheduleRecurringPattern: schedulemodel.RecurringNone,
		ScheduleRecurringEndDate: r.RecurringEndDate,
		ScheduleStatus:           schedulemodel.ScheduleStatusScheduled,
		ScheduleNotes:            r.Notes,
		ScheduleAttendees:        datatypes.NewJSONSlice([]schedulemodel.Attendee{}),
	}
	if r.Type != "" {
		sch.ScheduleType = schedulemodel.ScheduleType(r.Type)
	}
	if r.RecurringPattern != "" {
		sch.ScheduleRecurringPattern = schedulemodel.RecurringPattern(r.RecurringPattern)
	}
	if r.Unit != nil {
		sch.ScheduleUnit = datatypes.NewJSONType(schedulemodel.ScheduleUnit{
			Name: r.Unit.Name,
			Code: r.Unit.Code,
		})
	}
	return sch
}

func ApplyScheduleUpdate(sch *schedulemodel.Schedule, r *ScheduleUpdateDTO) {
	if r.Unit != nil {
		sch.ScheduleUnit = datatypes.NewJSONType(schedulemodel.ScheduleUnit{
			Name: r.Unit.Name,
			Code: r.Unit.Code,
		})
	}
	if r.Title != nil {
		sch.ScheduleTitle = *r.Title
	}
	if r.Description != nil {
		sch.ScheduleDescription = r.Description
	}
	if r.Date != nil {
		sch.ScheduleDate = *r.Date
	}
	if r.StartTime != nil {
		sch.ScheduleStartTime = *r.StartTime
	}
	if r.EndTime != nil {
		sch.ScheduleEndTime = *r.EndTime
	}
	if r.Venue != nil {
		sch.ScheduleVenue = *r.Venue
	}
	if r.Type != nil {
		sch.ScheduleType = schedulemodel.ScheduleType(*r.Type)
	}
	if r.Status != nil {
		sch.ScheduleStatus = schedulemodel.ScheduleStatus(*r.Status)
	}
	if r.Notes != nil {
		sch.ScheduleNotes = r.Notes
	}
}
