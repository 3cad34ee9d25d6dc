package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — verification status
   verified → used | expired; denied is terminal at issue time.
============================== */

type VerificationStatus string

const (
	StatusVerified VerificationStatus = "verified"
	StatusDenied   VerificationStatus = "denied"
	StatusExpired  VerificationStatus = "expired"
	StatusUsed     VerificationStatus = "used"
)

/* ==============================
   JSONB documents
============================== */

// FeeDetails is the fee snapshot frozen at verification time. The live fee
// record keeps moving; the gatepass shows what the operator saw.
type FeeDetails struct {
	TotalAmount  float64    `json:"total_amount"`
	PaidAmount   float64    `json:"paid_amount"`
	Balance      float64    `json:"balance"`
	AllowedUntil *time.Time `json:"allowed_until,omitempty"`
}

type DuplicateAttempt struct {
	AttemptTime time.Time `json:"attempt_time"`
	DeniedBy    uuid.UUID `json:"denied_by"`
	Reason      string    `json:"reason"`
}

/* ==============================
   MODEL
============================== */

type GatepassRecord struct {
	GatepassID uuid.UUID `gorm:"column:gatepass_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"gatepass_id"`

	GatepassStudentID       uuid.UUID `gorm:"column:gatepass_student_id;type:uuid;not null;index:idx_gatepass_student_time,priority:1" json:"gatepass_student_id"`
	GatepassAdmissionNumber string    `gorm:"column:gatepass_admission_number;type:varchar(20);not null;index" json:"gatepass_admission_number"`

	GatepassVerificationCode string `gorm:"column:gatepass_verification_code;type:varchar(8);not null;uniqueIndex" json:"gatepass_verification_code"`
	GatepassReceiptNumber    string `gorm:"column:gatepass_receipt_number;type:varchar(20);not null;uniqueIndex" json:"gatepass_receipt_number"`

	GatepassVerifiedBy       uuid.UUID `gorm:"column:gatepass_verified_by;type:uuid;not null" json:"gatepass_verified_by"`
	GatepassVerificationTime time.Time `gorm:"column:gatepass_verification_time;type:timestamptz;not null;index:idx_gatepass_student_time,priority:2,sort:desc" json:"gatepass_verification_time"`
	GatepassVerificationDay  string    `gorm:"column:gatepass_verification_day;type:varchar(10);not null" json:"gatepass_verification_day"`

	GatepassStatus        VerificationStatus `gorm:"column:gatepass_status;type:varchar(10);not null;default:'verified';index" json:"gatepass_status"`
	GatepassPaymentStatus string             `gorm:"column:gatepass_payment_status;type:varchar(10);not null" json:"gatepass_payment_status"`

	GatepassFeeDetails datatypes.JSONType[FeeDetails] `gorm:"column:gatepass_fee_details;type:jsonb" json:"gatepass_fee_details"`

	GatepassMessage string `gorm:"column:gatepass_message;type:text;not null" json:"gatepass_message"`

	// Always verification time + 2h; expiry is detected lazily on read/use.
	GatepassExpiryTime time.Time  `gorm:"column:gatepass_expiry_time;type:timestamptz;not null;index" json:"gatepass_expiry_time"`
	GatepassUsedAt     *time.Time `gorm:"column:gatepass_used_at;type:timestamptz" json:"gatepass_used_at,omitempty"`

	GatepassDuplicateAttempts datatypes.JSONSlice[DuplicateAttempt] `gorm:"column:gatepass_duplicate_attempts;type:jsonb" json:"gatepass_duplicate_attempts,omitempty"`

	GatepassNotes *string `gorm:"column:gatepass_notes;type:text" json:"gatepass_notes,omitempty"`

	// Audit
	GatepassCreatedAt time.Time      `gorm:"column:gatepass_created_at;type:timestamptz;not null;default:now()" json:"gatepass_created_at"`
	GatepassUpdatedAt time.Time      `gorm:"column:gatepass_updated_at;type:timestamptz;not null;default:now()" json:"gatepass_updated_at"`
	GatepassDeletedAt gorm.DeletedAt `gorm:"column:gatepass_deleted_at;type:timestamptz;index" json:"-"`
}

func (GatepassRecord) TableName() string { return "gatepass_records" }

func (m *GatepassRecord) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.GatepassCreatedAt.IsZero() {
		m.GatepassCreatedAt = now
	}
	m.GatepassUpdatedAt = now
	return nil
}

func (m *GatepassRecord) BeforeUpdate(tx *gorm.DB) error {
	m.GatepassUpdatedAt = time.Now()
	return nil
}

// IsExpired reports whether the pass has outlived its 2-hour window.
func (m *GatepassRecord) IsExpired(now time.Time) bool {
	return now.After(m.GatepassExpiryTime)
}
