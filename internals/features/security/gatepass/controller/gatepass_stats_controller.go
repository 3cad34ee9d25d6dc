package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gpdto "github.com/Davie-07/school-management-system/internals/features/security/gatepass/dto"
	gpmodel "github.com/Davie-07/school-management-system/internals/features/security/gatepass/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
)

/* ==============================
   STATS  GET /api/gatepass/stats?startDate=&endDate=
   Overall counts by status plus per-day counts over the period.
============================== */

func (h *GatepassHandler) Stats(c *fiber.Ctx) error {
	base := h.DB.Model(&gpmodel.GatepassRecord{})
	periodStart := "All time"
	periodEnd := "Current"

	if raw := strings.TrimSpace(c.Query("startDate")); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid startDate, expected YYYY-MM-DD")
		}
		base = base.Where("gatepass_verification_time >= ?", start)
		periodStart = raw
	}
	if raw := strings.TrimSpace(c.Query("endDate")); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid endDate, expected YYYY-MM-DD")
		}
		base = base.Where("gatepass_verification_time < ?", end.AddDate(0, 0, 1))
		periodEnd = raw
	}

	type statusRow struct {
		Status string
		Count  int
	}
	var totals []statusRow
	if err := base.Session(&gorm.Session{}).
		Select("gatepass_status AS status, COUNT(*) AS count").
		Group("gatepass_status").
		Scan(&totals).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute statistics")
	}

	type dailyRow struct {
		Day    string
		Status string
		Count  int
	}
	var daily []dailyRow
	if err := base.Session(&gorm.Session{}).
		Select("to_char(gatepass_verification_time, 'YYYY-MM-DD') AS day, gatepass_status AS status, COUNT(*) AS count").
		Group("day, gatepass_status").
		Order("day DESC").
		Scan(&daily).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to compute daily statistics")
	}

	stats := gpdto.StatsResponse{Daily: map[string]*gpdto.DailyCounts{}}
	for _, row := range totals {
		switch gpmodel.VerificationStatus(row.Status) {
		case gpmodel.StatusVerified:
			stats.Overall.Verified = row.Count
		case gpmodel.StatusDenied:
			stats.Overall.Denied = row.Count
		case gpmodel.StatusExpired:
			stats.Overall.Expired = row.Count
		case gpmodel.StatusUsed:
			stats.Overall.Used = row.Count
		}
		stats.Overall.Total += row.Count
	}
	for _, row := range daily {
		day, ok := stats.Daily[row.Day]
		if !ok {
			day = &gpdto.DailyCounts{}
			stats.Daily[row.Day] = day
		}
		switch gpmodel.VerificationStatus(row.Status) {
		case gpmodel.StatusVerified:
			day.Verified = row.Count
		case gpmodel.StatusDenied:
			day.Denied = row.Count
		case gpmodel.StatusExpired:
			day.Expired = row.Count
		case gpmodel.StatusUsed:
			day.Used = row.Count
		}
		day.Total += row.Count
	}

	return helper.JsonOK(c, "Gatepass statistics", fiber.Map{
		"period": fiber.Map{"start": periodStart, "end": periodEnd},
		"stats":  stats,
	})
}
