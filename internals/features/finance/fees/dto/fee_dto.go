package dto

import (
	"time"

	"github.com/google/uuid"

	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
)

/* ==============================
   REQUEST DTO
============================== */

type FeeCreateDTO struct {
	StudentID    string                 `json:"student_id" validate:"required,uuid"`
	AcademicYear string                 `json:"academic_year" validate:"omitempty,len=9"`
	Term         string                 `json:"term" validate:"omitempty,oneof='Term 1' 'Term 2' 'Term 3'"`
	FeeStructure *feemodel.FeeStructure `json:"fee_structure" validate:"omitempty"`
	Notes        *string                `json:"notes" validate:"omitempty,max=500"`
}

// Amount is deliberately not range-checked; overpayment is an allowed
// terminal state.
type PaymentCreateDTO struct {
	Amount          float64 `json:"amount" validate:"required"`
	PaymentMethod   string  `json:"payment_method" validate:"required,oneof=cash bank mpesa cheque card gateway"`
	ReferenceNumber string  `json:"reference_number" validate:"omitempty,max=100"`
	Notes           string  `json:"notes" validate:"omitempty,max=500"`
}

type WaiverCreateDTO struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Reason string  `json:"reason" validate:"required,max=500"`
}

type GatepassOverrideDTO struct {
	Allowed      bool       `json:"allowed"`
	AllowedUntil *time.Time `json:"allowed_until" validate:"omitempty"`
	Reason       string     `json:"reason" validate:"omitempty,max=500"`
}

type CheckoutCreateDTO struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

/* ==============================
   RESPONSE DTO
============================== */

type PaymentReceiptResponse struct {
	ReceiptNumber string              `json:"receipt_number"`
	Fee           *feemodel.FeeRecord `json:"fee"`
}

type StudentFeeSummary struct {
	TotalBilled      float64 `json:"total_billed"`
	TotalPaid        float64 `json:"total_paid"`
	TotalOutstanding float64 `json:"total_outstanding"`
	Records          int     `json:"records"`
}

type StudentFeesResponse struct {
	Summary StudentFeeSummary    `json:"summary"`
	Fees    []feemodel.FeeRecord `json:"fees"`
}

type DefaulterEntry struct {
	Fee         feemodel.FeeRecord `json:"fee"`
	StudentName string             `json:"student_name"`
	Admission   string             `json:"admission_number"`
	DaysOverdue int                `json:"days_overdue"`
}

type CheckoutResponse struct {
	OrderID     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
}

/* ==============================
   Helpers
============================== */

// ApplyOverride stamps the override document with actor and time.
func (d *GatepassOverrideDTO) ToPermission(updatedBy uuid.UUID, now time.Time) feemodel.GatepassPermission {
	return feemodel.GatepassPermission{
		Allowed:      d.Allowed,
		AllowedUntil: d.AllowedUntil,
		Reason:       d.Reason,
		UpdatedBy:    &updatedBy,
		LastUpdated:  &now,
	}
}
