package service

import (
	"time"

	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
)

/* ==============================
   Standing ancillary charges (KES)
============================== */

const (
	ChargeRegistration = 2000
	ChargeLibrary      = 1500
	ChargeLaboratory   = 3000
	ChargeExamination  = 2500
	ChargeMedical      = 1000
	ChargeActivity     = 500
)

// DueDateOffset is how long after record creation a term's fees fall due.
const DueDateOffset = 30 * 24 * time.Hour

// DefaultFeeStructure builds a term's fee structure from the course's
// per-term tuition plus the standing ancillary charges.
func DefaultFeeStructure(tuitionPerTerm float64) feemodel.FeeStructure {
	return feemodel.FeeStructure{
		Tuition:      tuitionPerTerm,
		Registration: ChargeRegistration,
		Library:      ChargeLibrary,
		Laboratory:   ChargeLaboratory,
		Examination:  ChargeExamination,
		Medical:      ChargeMedical,
		Activity:     ChargeActivity,
	}
}

// Recompute refreshes the derived money fields from the structure, waivers and
// payments documents. Call after every mutation, before saving.
//
//	totalAmount = sum(structure) - sum(waivers)
//	totalPaid   = sum(payments)
//	balance     = totalAmount - totalPaid
func Recompute(rec *feemodel.FeeRecord) {
	total := rec.FeeStructure.Data().Sum()
	for _, w := range rec.FeeWaivers {
		total -= w.Amount
	}

	paid := 0.0
	for _, p := range rec.FeePayments {
		paid += p.Amount
	}

	rec.FeeTotalAmount = total
	rec.FeeTotalPaid = paid
	rec.FeeBalance = total - paid
	rec.FeePaymentStatus = deriveStatus(rec.FeeBalance, paid)
}

func deriveStatus(balance, totalPaid float64) feemodel.PaymentStatus {
	switch {
	case balance < 0:
		return feemodel.PaymentStatusOverpaid
	case balance == 0:
		// a fully waived record with no payments still counts as settled
		return feemodel.PaymentStatusPaid
	case totalPaid > 0:
		return feemodel.PaymentStatusPartial
	default:
		return feemodel.PaymentStatusUnpaid
	}
}
