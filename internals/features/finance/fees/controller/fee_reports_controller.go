package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	feedto "github.com/Davie-07/school-management-system/internals/features/finance/fees/dto"
	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
	feeservice "github.com/Davie-07/school-management-system/internals/features/finance/fees/service"
	usermodel "github.com/Davie-07/school-management-system/internals/features/users/user/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
)

// defaultMinimumBalance is the threshold below which an outstanding balance is
// not considered a default.
const defaultMinimumBalance = 1000

/* ==============================
   DEFAULTERS  GET /api/fees/reports/defaulters
   Records with a balance at or above the minimum, scoped to the current
   academic year and term unless the caller picks another period.
============================== */

func (h *FeeHandler) Defaulters(c *fiber.Ctx) error {
	minBalance := float64(defaultMinimumBalance)
	if raw := strings.TrimSpace(c.Query("minimumBalance")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid minimumBalance")
		}
		minBalance = v
	}

	now := time.Now()
	year, term := feeservice.ReportPeriod(now,
		strings.TrimSpace(c.Query("academic_year")),
		strings.TrimSpace(c.Query("term")))

	q := h.DB.Model(&feemodel.FeeRecord{}).
		Where("fee_academic_year = ? AND fee_term = ?", year, term).
		Where("fee_balance >= ?", minBalance)

	if course := strings.TrimSpace(c.Query("course")); course != "" {
		q = q.Where("fee_course_id = ?", course)
	}
	if level := strings.TrimSpace(c.Query("level")); level != "" {
		q = q.Where("fee_level_id = ?", level)
	}

	var fees []feemodel.FeeRecord
	if err := q.Order("fee_balance DESC").Find(&fees).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch defaulters")
	}

	totalOutstanding := 0.0
	entries := make([]feedto.DefaulterEntry, 0, len(fees))
	for _, f := range fees {
		totalOutstanding += f.FeeBalance
		entry := feedto.DefaulterEntry{Fee: f}
		if overdue := int(now.Sub(f.FeeDueDate).Hours() / 24); overdue > 0 {
			entry.DaysOverdue = overdue
		}
		var student usermodel.User
		if err := h.DB.First(&student, "user_id = ?", f.FeeStudentID).Error; err == nil {
			entry.StudentName = student.FullName()
			if student.UserAdmissionNumber != nil {
				entry.Admission = *student.UserAdmissionNumber
			}
		}
		entries = append(entries, entry)
	}

	return helper.JsonOK(c, "Defaulters report", fiber.Map{
		"academic_year":     year,
		"term":              term,
		"minimum_balance":   minBalance,
		"total_defaulters":  len(entries),
		"total_outstanding": totalOutstanding,
		"defaulters":        entries,
	})
}

/* ==============================
   COLLECTION  GET /api/fees/reports/collection
   Payments over a date range, totalled by method and by day.
============================== */

func (h *FeeHandler) CollectionReport(c *fiber.Ctx) error {
	var start, end *time.Time
	if raw := strings.TrimSpace(c.Query("startDate")); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid startDate, expected YYYY-MM-DD")
		}
		start = &t
	}
	if raw := strings.TrimSpace(c.Query("endDate")); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid endDate, expected YYYY-MM-DD")
		}
		// inclusive through the end of that day
		t = t.AddDate(0, 0, 1)
		end = &t
	}
	method := feemodel.PaymentMethod(strings.TrimSpace(c.Query("paymentMethod")))

	var fees []feemodel.FeeRecord
	if err := h.DB.
		Select("fee_id, fee_payments").
		Find(&fees).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch fee records")
	}

	summary := feeservice.SummarizePayments(fees, start, end, method)

	periodStart := "All time"
	if raw := strings.TrimSpace(c.Query("startDate")); raw != "" {
		periodStart = raw
	}
	periodEnd := "Current"
	if raw := strings.TrimSpace(c.Query("endDate")); raw != "" {
		periodEnd = raw
	}

	return helper.JsonOK(c, "Collection report", fiber.Map{
		"total_collection":     summary.TotalCollection,
		"collection_by_method": summary.ByMethod,
		"daily_collection":     summary.Daily,
		"period": fiber.Map{
			"start": periodStart,
			"end":   periodEnd,
		},
	})
}
