package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — user role & status
============================== */

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusGraduated UserStatus = "graduated"
	UserStatusInactive  UserStatus = "inactive"
)

/* ==============================
   MODEL
============================== */

type User struct {
	// PK
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`

	UserFirstName  string  `gorm:"column:user_first_name;type:varchar(60);not null" json:"user_first_name"`
	UserMiddleName *string `gorm:"column:user_middle_name;type:varchar(60)" json:"user_middle_name,omitempty"`
	UserLastName   string  `gorm:"column:user_last_name;type:varchar(60);not null" json:"user_last_name"`

	UserEmail    string `gorm:"column:user_email;type:varchar(120);not null;uniqueIndex" json:"user_email"`
	UserPassword string `gorm:"column:user_password;type:varchar(100);not null" json:"-"`

	// student|teacher|admin|finance|gatepass
	UserRole string `gorm:"column:user_role;type:varchar(20);not null;index" json:"user_role"`

	// Students only, uppercase, unique when present
	UserAdmissionNumber *string `gorm:"column:user_admission_number;type:varchar(20);uniqueIndex" json:"user_admission_number,omitempty"`
	// 6-digit ID for staff accounts
	UserAccountID *string `gorm:"column:user_account_id;type:varchar(10);uniqueIndex" json:"user_account_id,omitempty"`

	UserCourseID *uuid.UUID `gorm:"column:user_course_id;type:uuid;index" json:"user_course_id,omitempty"`
	UserLevelID  *uuid.UUID `gorm:"column:user_level_id;type:uuid;index" json:"user_level_id,omitempty"`

	// Teachers: ids of courses they are assigned to
	UserAssignedCourseIDs pq.StringArray `gorm:"column:user_assigned_course_ids;type:uuid[]" json:"user_assigned_course_ids,omitempty"`

	UserPhoneNumber *string    `gorm:"column:user_phone_number;type:varchar(20)" json:"user_phone_number,omitempty"`
	UserAddress     *string    `gorm:"column:user_address;type:text" json:"user_address,omitempty"`
	UserDateOfBirth *time.Time `gorm:"column:user_date_of_birth" json:"user_date_of_birth,omitempty"`
	UserGender      *string    `gorm:"column:user_gender;type:varchar(10)" json:"user_gender,omitempty"`

	UserStatus        UserStatus `gorm:"column:user_status;type:varchar(20);not null;default:'active';index" json:"user_status"`
	UserTermsAccepted bool       `gorm:"column:user_terms_accepted;not null;default:false" json:"user_terms_accepted"`

	UserPasswordResetCode    *string    `gorm:"column:user_password_reset_code;type:varchar(12)" json:"-"`
	UserPasswordResetExpires *time.Time `gorm:"column:user_password_reset_expires" json:"-"`

	UserLastLogin *time.Time `gorm:"column:user_last_login" json:"user_last_login,omitempty"`

	UserCreatedBy *uuid.UUID `gorm:"column:user_created_by;type:uuid" json:"user_created_by,omitempty"`

	// Audit
	UserCreatedAt time.Time      `gorm:"column:user_created_at;type:timestamptz;not null;default:now();index" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;type:timestamptz;not null;default:now()" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;type:timestamptz;index" json:"-"`
}

func (User) TableName() string { return "users" }

/* ======================================
   HOOKS — normalisation & timestamps
====================================== */

func (m *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	m.UserEmail = strings.ToLower(strings.TrimSpace(m.UserEmail))
	if m.UserAdmissionNumber != nil {
		up := strings.ToUpper(strings.TrimSpace(*m.UserAdmissionNumber))
		m.UserAdmissionNumber = &up
	}
	if m.UserCreatedAt.IsZero() {
		m.UserCreatedAt = now
	}
	m.UserUpdatedAt = now
	return nil
}

func (m *User) BeforeUpdate(tx *gorm.DB) error {
	m.UserUpdatedAt = time.Now()
	return nil
}

/* ======================================
   HELPERS
====================================== */

// FullName joins first/middle/last, skipping an empty middle name.
func (m *User) FullName() string {
	parts := []string{m.UserFirstName}
	if m.UserMiddleName != nil && *m.UserMiddleName != "" {
		parts = append(parts, *m.UserMiddleName)
	}
	parts = append(parts, m.UserLastName)
	return strings.Join(parts, " ")
}

// IsActive: suspended/inactive accounts are locked out; graduated keeps read access.
func (m *User) IsActive() bool {
	return m.UserStatus == UserStatusActive || m.UserStatus == UserStatusGraduated
}

// HasAssignedCourse reports whether a teacher is assigned to the course.
func (m *User) HasAssignedCourse(courseID uuid.UUID) bool {
	for _, id := range m.UserAssignedCourseIDs {
		if id == courseID.String() {
			return true
		}
	}
	return false
}
