package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
)

func newRecord(structure feemodel.FeeStructure) *feemodel.FeeRecord {
	return &feemodel.FeeRecord{
		FeeStructure: datatypes.NewJSONType(structure),
		FeePayments:  datatypes.NewJSONSlice([]feemodel.FeePayment{}),
		FeeWaivers:   datatypes.NewJSONSlice([]feemodel.FeeWaiver{}),
	}
}

func TestDefaultFeeStructureSum(t *testing.T) {
	s := DefaultFeeStructure(50000)

	assert.Equal(t, float64(50000), s.Tuition)
	assert.Equal(t, float64(60500), s.Sum())
}

func TestRecomputeUnpaid(t *testing.T) {
	rec := newRecord(DefaultFeeStructure(50000))
	Recompute(rec)

	assert.Equal(t, float64(60500), rec.FeeTotalAmount)
	assert.Equal(t, float64(0), rec.FeeTotalPaid)
	assert.Equal(t, float64(60500), rec.FeeBalance)
	assert.Equal(t, feemodel.PaymentStatusUnpaid, rec.FeePaymentStatus)
}

func TestRecomputePartialThenPaid(t *testing.T) {
	rec := newRecord(DefaultFeeStructure(50000))

	rec.FeePayments = append(rec.FeePayments, feemodel.FeePayment{Amount: 20000})
	Recompute(rec)
	assert.Equal(t, float64(20000), rec.FeeTotalPaid)
	assert.Equal(t, float64(40500), rec.FeeBalance)
	assert.Equal(t, feemodel.PaymentStatusPartial, rec.FeePaymentStatus)

	rec.FeePayments = append(rec.FeePayments, feemodel.FeePayment{Amount: 40500})
	Recompute(rec)
	assert.Equal(t, float64(0), rec.FeeBalance)
	assert.Equal(t, feemodel.PaymentStatusPaid, rec.FeePaymentStatus)
}

func TestRecomputeOverpaid(t *testing.T) {
	rec := newRecord(DefaultFeeStructure(50000))
	rec.FeePayments = append(rec.FeePayments, feemodel.FeePayment{Amount: 70000})
	Recompute(rec)

	assert.Equal(t, float64(-9500), rec.FeeBalance)
	assert.Equal(t, feemodel.PaymentStatusOverpaid, rec.FeePaymentStatus)
}

func TestRecomputeWaiverReducesTotal(t *testing.T) {
	rec := newRecord(DefaultFeeStructure(50000))
	rec.FeeWaivers = append(rec.FeeWaivers, feemodel.FeeWaiver{
		Amount:       10500,
		Reason:       "bursary award",
		ApprovedBy:   uuid.New(),
		ApprovedDate: time.Now(),
	})
	Recompute(rec)

	assert.Equal(t, float64(50000), rec.FeeTotalAmount)
	assert.Equal(t, float64(50000), rec.FeeBalance)

	// a waiver covering the full remainder settles the record without payments
	rec.FeeWaivers = append(rec.FeeWaivers, feemodel.FeeWaiver{Amount: 50000})
	Recompute(rec)
	assert.Equal(t, float64(0), rec.FeeBalance)
	assert.Equal(t, feemodel.PaymentStatusPaid, rec.FeePaymentStatus)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	rec := newRecord(DefaultFeeStructure(42000))
	rec.FeePayments = append(rec.FeePayments, feemodel.FeePayment{Amount: 15000})

	Recompute(rec)
	first := *rec
	Recompute(rec)

	require.Equal(t, first.FeeTotalAmount, rec.FeeTotalAmount)
	require.Equal(t, first.FeeTotalPaid, rec.FeeTotalPaid)
	require.Equal(t, first.FeeBalance, rec.FeeBalance)
	require.Equal(t, first.FeePaymentStatus, rec.FeePaymentStatus)
}

func TestSettlementAccepted(t *testing.T) {
	assert.True(t, SettlementAccepted("settlement", ""))
	assert.True(t, SettlementAccepted("capture", "accept"))
	assert.False(t, SettlementAccepted("capture", "deny"))
	assert.False(t, SettlementAccepted("pending", ""))
	assert.False(t, SettlementAccepted("expire", ""))
}
