package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	coursemodel "github.com/Davie-07/school-management-system/internals/features/academics/courses/model"
)

/* ==============================
   COURSE — DTO
============================== */

type CourseCreateDTO struct {
	CourseName        string                  `json:"course_name" validate:"required,min=3"`
	CourseCode        string                  `json:"course_code" validate:"required,min=2,max=20"`
	CourseDescription string                  `json:"course_description" validate:"required"`
	CourseDepartment  string                  `json:"course_department" validate:"required"`
	CourseDuration    string                  `json:"course_duration" validate:"required"`
	CourseUnits       []coursemodel.CourseUnit `json:"course_units,omitempty"`
	CourseFees        coursemodel.CourseFees   `json:"course_fees"`
	CourseMaxStudents *int                    `json:"course_max_students,omitempty"`
}

type CourseUpdateDTO struct {
	CourseName        *string                  `json:"course_name,omitempty"`
	CourseDescription *string                  `json:"course_description,omitempty"`
	CourseDepartment  *string                  `json:"course_department,omitempty"`
	CourseDuration    *string                  `json:"course_duration,omitempty"`
	CourseUnits       *[]coursemodel.CourseUnit `json:"course_units,omitempty"`
	CourseFees        *coursemodel.CourseFees   `json:"course_fees,omitempty"`
	CourseMaxStudents *int                     `json:"course_max_students,omitempty"`
	CourseStatus      *string                  `json:"course_status,omitempty" validate:"omitempty,oneof=active inactive archived"`
}

type LevelCreateDTO struct {
	LevelName     string    `json:"level_name" validate:"required"`
	LevelCourseID uuid.UUID `json:"level_course_id" validate:"required"`
	LevelOrder    int       `json:"level_order" validate:"required,min=1"`
}

/* ==============================
   MAPPERS
============================== */

func CourseCreateDTOToModel(d CourseCreateDTO, createdBy uuid.UUID) coursemodel.Course {
	m := coursemodel.Course{
		CourseName:        d.CourseName,
		CourseCode:        d.CourseCode,
		CourseDescription: d.CourseDescription,
		CourseDepartment:  d.CourseDepartment,
		CourseDuration:    d.CourseDuration,
		CourseUnits:       datatypes.NewJSONSlice(d.CourseUnits),
		CourseFees:        datatypes.NewJSONType(d.CourseFees),
		CourseCreatedBy:   &createdBy,
	}
	if d.CourseMaxStudents != nil {
		m.CourseMaxStudents = *d.CourseMaxStudents
	}
	return m
}

func ApplyCourseUpdate(m *coursemodel.Course, d CourseUpdateDTO) {
	if d.CourseName != nil {
		m.CourseName = *d.CourseName
	}
	if d.CourseDescription != nil {
		m.CourseDescription = *d.CourseDescription
	}
	if d.CourseDepartment != nil {
		m.CourseDepartment = *d.CourseDepartment
	}
	if d.CourseDuration != nil {
		m.CourseDuration = *d.CourseDuration
	}
	if d.CourseUnits != nil {
		m.CourseUnits = datatypes.NewJSONSlice(*d.CourseUnits)
	}
	if d.CourseFees != nil {
		m.CourseFees = datatypes.NewJSONType(*d.CourseFees)
	}
	if d.CourseMaxStudents != nil {
		m.CourseMaxStudents = *d.CourseMaxStudents
	}
	if d.CourseStatus != nil {
		m.CourseStatus = coursemodel.CourseStatus(*d.CourseStatus)
	}
}

/* ==============================
   RESPONSES
============================== */

type CourseResponse struct {
	CourseID                uuid.UUID                `json:"course_id"`
	CourseName              string                   `json:"course_name"`
	CourseCode              string                   `json:"course_code"`
	CourseDescription       string                   `json:"course_description"`
	CourseDepartment        string                   `json:"course_department"`
	CourseDuration          string                   `json:"course_duration"`
	CourseUnits             []coursemodel.CourseUnit `json:"course_units,omitempty"`
	CourseFees              coursemodel.CourseFees   `json:"course_fees"`
	CourseMaxStudents       int                      `json:"course_max_students"`
	CourseCurrentEnrollment int                      `json:"course_current_enrollment"`
	CourseStatus            string                   `json:"course_status"`
	CourseCreatedAt         time.Time                `json:"course_created_at"`
}

func ToCourseResponse(m coursemodel.Course) CourseResponse {
	return CourseResponse{
		CourseID:                m.CourseID,
		CourseName:              m.CourseName,
		CourseCode:              m.CourseCode,
		CourseDescription:       m.CourseDescription,
		CourseDepartment:        m.CourseDepartment,
		CourseDuration:          m.CourseDuration,
		CourseUnits:             m.CourseUnits,
		CourseFees:              m.CourseFees.Data(),
		CourseMaxStudents:       m.CourseMaxStudents,
		CourseCurrentEnrollment: m.CourseCurrentEnrollment,
		CourseStatus:            string(m.CourseStatus),
		CourseCreatedAt:         m.CourseCreatedAt,
	}
}

func ToCourseResponses(list []coursemodel.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToCourseResponse(v))
	}
	return out
}
