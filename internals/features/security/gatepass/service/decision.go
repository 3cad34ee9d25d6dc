package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
	gpmodel "github.com/Davie-07/school-management-system/internals/features/security/gatepass/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
)

// PassValidity is how long an issued gatepass stays usable.
const PassValidity = 2 * time.Hour

// DuplicateLookback is the window within which a second verification attempt
// for the same student is rejected.
const DuplicateLookback = 2 * time.Hour

// Outcome is the decision for one verification attempt. Denied outcomes are
// still persisted for audit.
type Outcome struct {
	Status       gpmodel.VerificationStatus
	Message      string
	AllowedUntil *time.Time
}

func (o Outcome) Verified() bool { return o.Status == gpmodel.StatusVerified }

// Decide computes the verification outcome from the student's current fee
// record. Pure function of its inputs; persistence happens in the controller.
//
// Settled fees pass outright. Otherwise a manual gatepass override can admit
// the student until its allowed-until date (or end of term when unset).
func Decide(studentName string, fee *feemodel.FeeRecord, now time.Time) Outcome {
	if fee.FeePaymentStatus == feemodel.PaymentStatusPaid ||
		fee.FeePaymentStatus == feemodel.PaymentStatusOverpaid {
		return Outcome{
			Status:  gpmodel.StatusVerified,
			Message: fmt.Sprintf("%s has been verified at %s", studentName, helper.FormatTime12h(now)),
		}
	}

	override := fee.FeeGatepass.Data()
	if override.Allowed {
		if override.AllowedUntil != nil && override.AllowedUntil.Before(now) {
			return Outcome{
				Status:  gpmodel.StatusDenied,
				Message: "Gatepass permission has expired",
			}
		}
		label := "end of term"
		if override.AllowedUntil != nil {
			label = helper.FormatDateLong(*override.AllowedUntil)
		}
		return Outcome{
			Status:       gpmodel.StatusVerified,
			Message:      fmt.Sprintf("%s has been verified, allowed until %s", studentName, label),
			AllowedUntil: override.AllowedUntil,
		}
	}

	return Outcome{
		Status: gpmodel.StatusDenied,
		Message: fmt.Sprintf("%s - Verification denied: Unpaid fees (Balance: KES %s)",
			studentName, strconv.FormatFloat(fee.FeeBalance, 'f', -1, 64)),
	}
}

var (
	ErrPassUsed    = errors.New("gatepass already used")
	ErrPassExpired = errors.New("gatepass expired")
)

// Consume marks a verified pass as used at the gate. An expired pass flips
// to expired with usedAt left unset; the caller persists the record either
// way and maps the error to a response.
func Consume(rec *gpmodel.GatepassRecord, now time.Time) error {
	if rec.GatepassUsedAt != nil {
		return ErrPassUsed
	}
	if rec.IsExpired(now) {
		rec.GatepassStatus = gpmodel.StatusExpired
		return ErrPassExpired
	}
	rec.GatepassUsedAt = &now
	rec.GatepassStatus = gpmodel.StatusUsed
	return nil
}

// NewRecord snapshots a decision into a persistable gatepass record with a
// fresh verification code and receipt number. Expiry is always exactly two
// hours after the verification time.
func NewRecord(studentID, verifiedBy uuid.UUID, admissionNumber string, fee *feemodel.FeeRecord, outcome Outcome, now time.Time) gpmodel.GatepassRecord {
	return gpmodel.GatepassRecord{
		GatepassStudentID:        studentID,
		GatepassAdmissionNumber:  admissionNumber,
		GatepassVerificationCode: helper.GenerateVerificationCode(),
		GatepassReceiptNumber:    helper.GenerateReceiptNumber(now),
		GatepassVerifiedBy:       verifiedBy,
		GatepassVerificationTime: now,
		GatepassVerificationDay:  now.Weekday().String(),
		GatepassStatus:           outcome.Status,
		GatepassPaymentStatus:    string(fee.FeePaymentStatus),
		GatepassFeeDetails: datatypes.NewJSONType(gpmodel.FeeDetails{
			TotalAmount:  fee.FeeTotalAmount,
			PaidAmount:   fee.FeeTotalPaid,
			Balance:      fee.FeeBalance,
			AllowedUntil: outcome.AllowedUntil,
		}),
		GatepassMessage:    outcome.Message,
		GatepassExpiryTime: now.Add(PassValidity),
	}
}
