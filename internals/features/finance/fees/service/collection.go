package service

import (
	"time"

	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
)

/* ==============================
   Collection report aggregation
============================== */

// CollectionSummary totals payments across fee records for a period.
type CollectionSummary struct {
	TotalCollection float64            `json:"total_collection"`
	ByMethod        map[string]float64 `json:"collection_by_method"`
	Daily           map[string]float64 `json:"daily_collection"`
}

// SummarizePayments walks the payment arrays and keeps the entries inside
// [start, end) whose method matches (empty method matches all). Days key
// as "2006-01-02".
func SummarizePayments(fees []feemodel.FeeRecord, start, end *time.Time, method feemodel.PaymentMethod) CollectionSummary {
	out := CollectionSummary{
		ByMethod: map[string]float64{},
		Daily:    map[string]float64{},
	}
	for i := range fees {
		for _, p := range fees[i].FeePayments {
			if start != nil && p.PaymentDate.Before(*start) {
				continue
			}
			if end != nil && !p.PaymentDate.Before(*end) {
				continue
			}
			if method != "" && p.PaymentMethod != method {
				continue
			}
			out.TotalCollection += p.Amount
			out.ByMethod[string(p.PaymentMethod)] += p.Amount
			out.Daily[p.PaymentDate.Format("2006-01-02")] += p.Amount
		}
	}
	return out
}

// ReportPeriod resolves the academic year and term for a report, falling
// back to the current ones when the caller passes neither.
func ReportPeriod(now time.Time, year, term string) (string, string) {
	if year == "" {
		year = helper.CurrentAcademicYear(now)
	}
	if term == "" {
		term = helper.CurrentTerm(now)
	}
	return year, term
}
