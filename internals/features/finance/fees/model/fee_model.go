package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — payment method & status
============================== */

type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodBank    PaymentMethod = "bank"
	PaymentMethodMpesa   PaymentMethod = "mpesa"
	PaymentMethodCheque  PaymentMethod = "cheque"
	PaymentMethodCard    PaymentMethod = "card"
	PaymentMethodGateway PaymentMethod = "gateway" // online checkout settlements
)

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusOverpaid PaymentStatus = "overpaid"
)

/* ==============================
   JSONB documents
============================== */

// FeeStructure holds the named components of a term's fees.
type FeeStructure struct {
	Tuition      float64 `json:"tuition"`
	Registration float64 `json:"registration"`
	Library      float64 `json:"library"`
	Laboratory   float64 `json:"laboratory"`
	Examination  float64 `json:"examination"`
	Medical      float64 `json:"medical"`
	Activity     float64 `json:"activity"`
	Other        float64 `json:"other"`
}

func (s FeeStructure) Sum() float64 {
	return s.Tuition + s.Registration + s.Library + s.Laboratory +
		s.Examination + s.Medical + s.Activity + s.Other
}

type FeePayment struct {
	Amount          float64       `json:"amount"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	ReferenceNumber string        `json:"reference_number"`
	ReceiptNumber   string        `json:"receipt_number"`
	ReceivedBy      uuid.UUID     `json:"received_by"`
	PaymentDate     time.Time     `json:"payment_date"`
	Notes           string        `json:"notes,omitempty"`
}

type FeeWaiver struct {
	Amount       float64   `json:"amount"`
	Reason       string    `json:"reason"`
	ApprovedBy   uuid.UUID `json:"approved_by"`
	ApprovedDate time.Time `json:"approved_date"`
}

// GatepassPermission is the manual override finance/admin can set independent
// of payment status (e.g. an approved installment plan).
type GatepassPermission struct {
	Allowed      bool       `json:"allowed"`
	AllowedUntil *time.Time `json:"allowed_until,omitempty"`
	Reason       string     `json:"reason,omitempty"`
	UpdatedBy    *uuid.UUID `json:"updated_by,omitempty"`
	LastUpdated  *time.Time `json:"last_updated,omitempty"`
}

type FeePenalty struct {
	Amount      float64    `json:"amount"`
	Reason      string     `json:"reason,omitempty"`
	AppliedDate *time.Time `json:"applied_date,omitempty"`
}

/* ==============================
   MODEL — one row per (student, year, term)
============================== */

type FeeRecord struct {
	FeeID uuid.UUID `gorm:"column:fee_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_id"`

	FeeStudentID    uuid.UUID `gorm:"column:fee_student_id;type:uuid;not null;index;uniqueIndex:uniq_fee_student_year_term,priority:1" json:"fee_student_id"`
	FeeAcademicYear string    `gorm:"column:fee_academic_year;type:varchar(10);not null;uniqueIndex:uniq_fee_student_year_term,priority:2" json:"fee_academic_year"`
	FeeTerm         string    `gorm:"column:fee_term;type:varchar(10);not null;uniqueIndex:uniq_fee_student_year_term,priority:3" json:"fee_term"`

	FeeCourseID uuid.UUID `gorm:"column:fee_course_id;type:uuid;not null;index" json:"fee_course_id"`
	FeeLevelID  uuid.UUID `gorm:"column:fee_level_id;type:uuid;not null" json:"fee_level_id"`

	FeeStructure datatypes.JSONType[FeeStructure]  `gorm:"column:fee_structure;type:jsonb" json:"fee_structure"`
	FeePayments  datatypes.JSONSlice[FeePayment]   `gorm:"column:fee_payments;type:jsonb" json:"fee_payments"`
	FeeWaivers   datatypes.JSONSlice[FeeWaiver]    `gorm:"column:fee_waivers;type:jsonb" json:"fee_waivers"`

	// Derived on every mutation, persisted for querying
	FeeTotalAmount   float64       `gorm:"column:fee_total_amount;type:numeric(12,2);not null;default:0" json:"fee_total_amount"`
	FeeTotalPaid     float64       `gorm:"column:fee_total_paid;type:numeric(12,2);not null;default:0" json:"fee_total_paid"`
	FeeBalance       float64       `gorm:"column:fee_balance;type:numeric(12,2);not null;default:0;index" json:"fee_balance"`
	FeePaymentStatus PaymentStatus `gorm:"column:fee_payment_status;type:varchar(10);not null;default:'unpaid';index" json:"fee_payment_status"`

	FeeDueDate time.Time `gorm:"column:fee_due_date;type:timestamptz;not null" json:"fee_due_date"`

	FeeGatepass datatypes.JSONType[GatepassPermission] `gorm:"column:fee_gatepass;type:jsonb" json:"fee_gatepass"`
	FeePenalty  datatypes.JSONType[FeePenalty]         `gorm:"column:fee_penalty;type:jsonb" json:"fee_penalty"`

	FeeNotes *string `gorm:"column:fee_notes;type:text" json:"fee_notes,omitempty"`

	// Audit
	FeeCreatedAt time.Time      `gorm:"column:fee_created_at;type:timestamptz;not null;default:now();index" json:"fee_created_at"`
	FeeUpdatedAt time.Time      `gorm:"column:fee_updated_at;type:timestamptz;not null;default:now()" json:"fee_updated_at"`
	FeeDeletedAt gorm.DeletedAt `gorm:"column:fee_deleted_at;type:timestamptz;index" json:"-"`
}

func (FeeRecord) TableName() string { return "fee_records" }

func (m *FeeRecord) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.FeeCreatedAt.IsZero() {
		m.FeeCreatedAt = now
	}
	m.FeeUpdatedAt = now
	return nil
}

func (m *FeeRecord) BeforeUpdate(tx *gorm.DB) error {
	m.FeeUpdatedAt = time.Now()
	return nil
}
