package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
)

func paymentOn(day time.Time, amount float64, method feemodel.PaymentMethod) feemodel.FeePayment {
	return feemodel.FeePayment{Amount: amount, PaymentMethod: method, PaymentDate: day}
}

func recordWithPayments(payments ...feemodel.FeePayment) feemodel.FeeRecord {
	return feemodel.FeeRecord{FeePayments: datatypes.NewJSONSlice(payments)}
}

func TestSummarizePaymentsDateRange(t *testing.T) {
	march10 := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	march12 := time.Date(2026, time.March, 12, 15, 0, 0, 0, time.UTC)
	march20 := time.Date(2026, time.March, 20, 11, 0, 0, 0, time.UTC)

	fees := []feemodel.FeeRecord{
		recordWithPayments(
			paymentOn(march10, 5000, feemodel.PaymentMethodCash),
			paymentOn(march12, 3000, feemodel.PaymentMethodMpesa),
		),
		recordWithPayments(paymentOn(march20, 7000, feemodel.PaymentMethodCash)),
	}

	start := time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)

	got := SummarizePayments(fees, &start, &end, "")

	assert.Equal(t, 3000.0, got.TotalCollection)
	assert.Equal(t, map[string]float64{"mpesa": 3000}, got.ByMethod)
	assert.Equal(t, map[string]float64{"2026-03-12": 3000}, got.Daily)
}

func TestSummarizePaymentsByMethod(t *testing.T) {
	day := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	fees := []feemodel.FeeRecord{
		recordWithPayments(
			paymentOn(day, 5000, feemodel.PaymentMethodCash),
			paymentOn(day, 3000, feemodel.PaymentMethodMpesa),
		),
	}

	got := SummarizePayments(fees, nil, nil, feemodel.PaymentMethodCash)

	assert.Equal(t, 5000.0, got.TotalCollection)
	assert.Equal(t, map[string]float64{"cash": 5000}, got.ByMethod)
}

func TestSummarizePaymentsGroupsByDay(t *testing.T) {
	morning := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	afternoon := time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

	fees := []feemodel.FeeRecord{
		recordWithPayments(
			paymentOn(morning, 2000, feemodel.PaymentMethodBank),
			paymentOn(afternoon, 1000, feemodel.PaymentMethodBank),
		),
	}

	got := SummarizePayments(fees, nil, nil, "")

	assert.Equal(t, map[string]float64{"2026-03-10": 3000}, got.Daily)
}

func TestReportPeriodDefaultsToCurrentTerm(t *testing.T) {
	now := time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

	year, term := ReportPeriod(now, "", "")
	assert.Equal(t, "2026", year)
	assert.Equal(t, "Term 2", term)

	year, term = ReportPeriod(now, "2025", "Term 3")
	assert.Equal(t, "2025", year)
	assert.Equal(t, "Term 3", term)
}
