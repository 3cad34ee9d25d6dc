package dto

import (
	"time"

	"github.com/google/uuid"
)

/* ==============================
   REQUEST DTO
============================== */

type UserCreateDTO struct {
	FirstName  string  `json:"firstName" validate:"required,min=2,max=60"`
	MiddleName *string `json:"middleName" validate:"omitempty,max=60"`
	LastName   string  `json:"lastName" validate:"required,min=2,max=60"`
	Email      string  `json:"email" validate:"required,email"`
	Role       string  `json:"role" validate:"required,oneof=student teacher admin finance gatepass"`

	// Students
	AdmissionNumber *string `json:"admissionNumber" validate:"omitempty,min=3,max=20"`
	CourseID        *string `json:"course" validate:"omitempty,uuid4"`
	LevelID         *string `json:"level" validate:"omitempty,uuid4"`

	// Teachers
	AssignedCourseIDs []string `json:"assignedCourses" validate:"omitempty,dive,uuid4"`

	PhoneNumber *string    `json:"phoneNumber" validate:"omitempty,max=20"`
	Address     *string    `json:"address"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Gender      *string    `json:"gender" validate:"omitempty,oneof=male female other"`

	// Defaults to the shared temporary password when omitted.
	Password string `json:"password" validate:"omitempty,min=8"`
}

type UserUpdateDTO struct {
	FirstName  *string `json:"firstName" validate:"omitempty,min=2,max=60"`
	MiddleName *string `json:"middleName" validate:"omitempty,max=60"`
	LastName   *string `json:"lastName" validate:"omitempty,min=2,max=60"`
	Email      *string `json:"email" validate:"omitempty,email"`

	// Admin only
	Role *string `json:"role" validate:"omitempty,oneof=student teacher admin finance gatepass"`

	CourseID          *string  `json:"course" validate:"omitempty,uuid4"`
	LevelID           *string  `json:"level" validate:"omitempty,uuid4"`
	AssignedCourseIDs []string `json:"assignedCourses" validate:"omitempty,dive,uuid4"`

	PhoneNumber *string    `json:"phoneNumber" validate:"omitempty,max=20"`
	Address     *string    `json:"address"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Gender      *string    `json:"gender" validate:"omitempty,oneof=male female other"`
}

type UserStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=active suspended graduated inactive"`
}

/* ==============================
   RESPONSE DTO
============================== */

// RecoveryCodeEntry lists a staff account whose reset code is still valid.
type RecoveryCodeEntry struct {
	UserID    uuid.UUID `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	AccountID *string   `json:"account_id,omitempty"`
	ResetCode string    `json:"reset_code"`
	ExpiresAt time.Time `json:"expires_at"`
}
