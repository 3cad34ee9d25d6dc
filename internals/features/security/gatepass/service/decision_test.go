package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
	gpmodel "github.com/Davie-07/school-management-system/internals/features/security/gatepass/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
)

// Tuesday 10:00 EAT
var tuesdayMorning = time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

func feeWithStatus(status feemodel.PaymentStatus, balance float64) *feemodel.FeeRecord {
	return &feemodel.FeeRecord{
		FeePaymentStatus: status,
		FeeBalance:       balance,
	}
}

func TestDecidePaidIsVerified(t *testing.T) {
	out := Decide("Jane Wanjiku", feeWithStatus(feemodel.PaymentStatusPaid, 0), tuesdayMorning)

	assert.True(t, out.Verified())
	assert.Equal(t, "Jane Wanjiku has been verified at 10:00 AM", out.Message)
}

func TestDecideOverpaidIsVerified(t *testing.T) {
	out := Decide("Jane Wanjiku", feeWithStatus(feemodel.PaymentStatusOverpaid, -500), tuesdayMorning)
	assert.True(t, out.Verified())
}

func TestDecideUnpaidIsDeniedWithBalance(t *testing.T) {
	out := Decide("John Otieno", feeWithStatus(feemodel.PaymentStatusUnpaid, 40500), tuesdayMorning)

	assert.False(t, out.Verified())
	assert.Equal(t, "John Otieno - Verification denied: Unpaid fees (Balance: KES 40500)", out.Message)
}

func TestDecideOverrideAllowsUntilDate(t *testing.T) {
	until := tuesdayMorning.AddDate(0, 1, 0)
	fee := feeWithStatus(feemodel.PaymentStatusPartial, 20000)
	fee.FeeGatepass = datatypes.NewJSONType(feemodel.GatepassPermission{
		Allowed:      true,
		AllowedUntil: &until,
	})

	out := Decide("John Otieno", fee, tuesdayMorning)

	assert.True(t, out.Verified())
	assert.Equal(t, "John Otieno has been verified, allowed until April 10, 2026", out.Message)
	require.NotNil(t, out.AllowedUntil)
}

func TestDecideOverrideWithoutDateAllowsUntilEndOfTerm(t *testing.T) {
	fee := feeWithStatus(feemodel.PaymentStatusPartial, 20000)
	fee.FeeGatepass = datatypes.NewJSONType(feemodel.GatepassPermission{Allowed: true})

	out := Decide("John Otieno", fee, tuesdayMorning)

	assert.True(t, out.Verified())
	assert.Equal(t, "John Otieno has been verified, allowed until end of term", out.Message)
}

func TestDecideLapsedOverrideIsDenied(t *testing.T) {
	until := tuesdayMorning.AddDate(0, 0, -1)
	fee := feeWithStatus(feemodel.PaymentStatusPartial, 20000)
	fee.FeeGatepass = datatypes.NewJSONType(feemodel.GatepassPermission{
		Allowed:      true,
		AllowedUntil: &until,
	})

	out := Decide("John Otieno", fee, tuesdayMorning)

	assert.False(t, out.Verified())
	assert.Equal(t, "Gatepass permission has expired", out.Message)
}

func TestNewRecordExpiryIsExactlyTwoHours(t *testing.T) {
	fee := feeWithStatus(feemodel.PaymentStatusPaid, 0)
	fee.FeeTotalAmount = 60500
	fee.FeeTotalPaid = 60500

	out := Decide("Jane Wanjiku", fee, tuesdayMorning)
	rec := NewRecord(uuid.New(), uuid.New(), "ADM001", fee, out, tuesdayMorning)

	assert.Equal(t, tuesdayMorning.Add(2*time.Hour), rec.GatepassExpiryTime)
	assert.Equal(t, "Tuesday", rec.GatepassVerificationDay)
	assert.Equal(t, gpmodel.StatusVerified, rec.GatepassStatus)
	assert.Len(t, rec.GatepassVerificationCode, 8)
	assert.Nil(t, rec.GatepassUsedAt)

	details := rec.GatepassFeeDetails.Data()
	assert.Equal(t, float64(60500), details.TotalAmount)
	assert.Equal(t, float64(60500), details.PaidAmount)
	assert.Equal(t, float64(0), details.Balance)
}

func TestOperatingHoursGate(t *testing.T) {
	saturday := time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)
	early := time.Date(2026, time.March, 10, 5, 59, 0, 0, time.UTC)
	late := time.Date(2026, time.March, 10, 17, 0, 0, 0, time.UTC)

	assert.False(t, helper.GateOperatingStatus(saturday).IsOpen)
	assert.Equal(t, "Closed on weekends", helper.GateOperatingStatus(saturday).Message)

	assert.False(t, helper.GateOperatingStatus(early).IsOpen)
	assert.False(t, helper.GateOperatingStatus(late).IsOpen)
	assert.Equal(t, "Closed - Operating hours: 6:00 AM - 5:00 PM", helper.GateOperatingStatus(late).Message)

	assert.True(t, helper.GateOperatingStatus(tuesdayMorning).IsOpen)
}

func TestConsumeMarksUsed(t *testing.T) {
	rec := gpmodel.GatepassRecord{
		GatepassStatus:     gpmodel.StatusVerified,
		GatepassExpiryTime: tuesdayMorning.Add(PassValidity),
	}

	err := Consume(&rec, tuesdayMorning.Add(30*time.Minute))

	require.NoError(t, err)
	assert.Equal(t, gpmodel.StatusUsed, rec.GatepassStatus)
	require.NotNil(t, rec.GatepassUsedAt)
	assert.Equal(t, tuesdayMorning.Add(30*time.Minute), *rec.GatepassUsedAt)
}

func TestConsumeExpiredFlipsStatusAndLeavesUsedAtUnset(t *testing.T) {
	rec := gpmodel.GatepassRecord{
		GatepassStatus:     gpmodel.StatusVerified,
		GatepassExpiryTime: tuesdayMorning.Add(PassValidity),
	}

	err := Consume(&rec, tuesdayMorning.Add(PassValidity).Add(time.Minute))

	assert.ErrorIs(t, err, ErrPassExpired)
	assert.Equal(t, gpmodel.StatusExpired, rec.GatepassStatus)
	assert.Nil(t, rec.GatepassUsedAt)
}

func TestConsumeRejectsSecondUse(t *testing.T) {
	used := tuesdayMorning.Add(15 * time.Minute)
	rec := gpmodel.GatepassRecord{
		GatepassStatus:     gpmodel.StatusUsed,
		GatepassExpiryTime: tuesdayMorning.Add(PassValidity),
		GatepassUsedAt:     &used,
	}

	err := Consume(&rec, tuesdayMorning.Add(time.Hour))

	assert.ErrorIs(t, err, ErrPassUsed)
	assert.Equal(t, gpmodel.StatusUsed, rec.GatepassStatus)
	assert.Equal(t, used, *rec.GatepassUsedAt)
}
