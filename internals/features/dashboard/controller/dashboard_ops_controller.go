package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	coursemodel "github.com/Davie-07/school-management-system/internals/features/academics/courses/model"
	reportmodel "github.com/Davie-07/school-management-system/internals/features/broadcast/reports/model"
	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
	gatepassmodel "github.com/Davie-07/school-management-system/internals/features/security/gatepass/model"
	usermodel "github.com/Davie-07/school-management-system/internals/features/users/user/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

/* ==============================
   ADMIN  GET /api/dashboard/admin
============================== */

func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if user.UserRole != "admin" {
		return helper.JsonError(c, fiber.StatusForbidden, "This dashboard is for administrators only")
	}

	now := time.Now()

	// Users per role
	type roleCount struct {
		Role  string
		Count int64
	}
	var roleCounts []roleCount
	if err := h.DB.Model(&usermodel.User{}).
		Select("user_role AS role, COUNT(*) AS count").
		Group("user_role").
		Scan(&roleCounts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}
	usersByRole := make(map[string]int64, len(roleCounts))
	var totalUsers int64
	for _, rc := range roleCounts {
		usersByRole[rc.Role] = rc.Count
		totalUsers += rc.Count
	}

	// Courses per status with enrollment
	type courseStat struct {
		Status     string
		Count      int64
		Enrollment int64
	}
	var courseStats []courseStat
	if err := h.DB.Model(&coursemodel.Course{}).
		Select("course_status AS status, COUNT(*) AS count, COALESCE(SUM(course_current_enrollment),0) AS enrollment").
		Group("course_status").
		Scan(&courseStats).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}
	var activeCourses, totalEnrollment int64
	for _, cs := range courseStats {
		totalEnrollment += cs.Enrollment
		if cs.Status == string(coursemodel.CourseStatusActive) {
			activeCourses = cs.Count
		}
	}

	// Fee collection for the current term
	type feeStat struct {
		TotalExpected  float64
		TotalCollected float64
		TotalBalance   float64
		PaidCount      int64
		PartialCount   int64
		UnpaidCount    int64
	}
	var fees feeStat
	if err := h.DB.Model(&feemodel.FeeRecord{}).
		Select(`COALESCE(SUM(fee_total_amount),0) AS total_expected,
			COALESCE(SUM(fee_total_paid),0) AS total_collected,
			COALESCE(SUM(fee_balance),0) AS total_balance,
			COUNT(*) FILTER (WHERE fee_payment_status = 'paid') AS paid_count,
			COUNT(*) FILTER (WHERE fee_payment_status = 'partial') AS partial_count,
			COUNT(*) FILTER (WHERE fee_payment_status = 'unpaid') AS unpaid_count`).
		Where("fee_academic_year = ? AND fee_term = ?",
			helper.CurrentAcademicYear(now), helper.CurrentTerm(now)).
		Scan(&fees).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	var activeRecoveryCodes int64
	if err := h.DB.Model(&usermodel.User{}).
		Where("user_password_reset_code IS NOT NULL AND user_password_reset_expires > ?", now).
		Count(&activeRecoveryCodes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	var pendingReports int64
	if err := h.DB.Model(&reportmodel.Report{}).
		Where("report_status = ?", reportmodel.ReportPending).
		Count(&pendingReports).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	var recentLogins []usermodel.User
	if err := h.DB.
		Select("user_id, user_first_name, user_last_name, user_role, user_last_login").
		Where("user_last_login IS NOT NULL").
		Order("user_last_login DESC").
		Limit(10).
		Find(&recentLogins).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	return helper.JsonOK(c, "Dashboard fetched successfully", fiber.Map{
		"user": fiber.Map{
			"name":       user.FullName(),
			"first_name": user.UserFirstName,
			"account_id": user.UserAccountID,
		},
		"stats": fiber.Map{
			"total_users":      totalUsers,
			"students":         usersByRole["student"],
			"teachers":         usersByRole["teacher"],
			"staff":            usersByRole["admin"] + usersByRole["finance"] + usersByRole["gatepass"],
			"active_courses":   activeCourses,
			"total_enrollment": totalEnrollment,
		},
		"fee_collection": fiber.Map{
			"total_expected":  fees.TotalExpected,
			"total_collected": fees.TotalCollected,
			"total_balance":   fees.TotalBalance,
			"paid_count":      fees.PaidCount,
			"partial_count":   fees.PartialCount,
			"unpaid_count":    fees.UnpaidCount,
		},
		"system_health": fiber.Map{
			"active_recovery_codes": activeRecoveryCodes,
			"pending_reports":       pendingReports,
		},
		"recent_activities": recentLogins,
	})
}

/* ==============================
   FINANCE  GET /api/dashboard/finance
============================== */

func (h *DashboardHandler) Finance(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if user.UserRole != "finance" {
		return helper.JsonError(c, fiber.StatusForbidden, "This dashboard is for finance officers only")
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// Payments live in the fee documents; aggregate them in one pass.
	var records []feemodel.FeeRecord
	if err := h.DB.
		Select("fee_id, fee_payments").
		Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	type methodBucket struct {
		Amount float64 `json:"amount"`
		Count  int     `json:"count"`
	}
	todayByMethod := map[feemodel.PaymentMethod]*methodBucket{}
	allByMethod := map[feemodel.PaymentMethod]*methodBucket{}
	monthlyTrend := map[string]*methodBucket{}
	var todayTotal, monthTotal float64

	bump := func(m map[feemodel.PaymentMethod]*methodBucket, key feemodel.PaymentMethod, amount float64) {
		b := m[key]
		if b == nil {
			b = &methodBucket{}
			m[key] = b
		}
		b.Amount += amount
		b.Count++
	}

	for i := range records {
		for _, p := range records[i].FeePayments {
			bump(allByMethod, p.PaymentMethod, p.Amount)
			if !p.PaymentDate.Before(dayStart) {
				bump(todayByMethod, p.PaymentMethod, p.Amount)
				todayTotal += p.Amount
			}
			if !p.PaymentDate.Before(monthStart) {
				day := p.PaymentDate.Format("2006-01-02")
				b := monthlyTrend[day]
				if b == nil {
					b = &methodBucket{}
					monthlyTrend[day] = b
				}
				b.Amount += p.Amount
				b.Count++
				monthTotal += p.Amount
			}
		}
	}

	// Top defaulters this term
	var defaulters []feemodel.FeeRecord
	if err := h.DB.
		Where("fee_academic_year = ? AND fee_term = ? AND fee_balance > 0",
			helper.CurrentAcademicYear(now), helper.CurrentTerm(now)).
		Order("fee_balance DESC").
		Limit(10).
		Find(&defaulters).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	type defaulterEntry struct {
		StudentID       string  `json:"student_id"`
		StudentName     string  `json:"student_name"`
		AdmissionNumber string  `json:"admission_number"`
		Balance         float64 `json:"balance"`
		TotalAmount     float64 `json:"total_amount"`
		PaidAmount      float64 `json:"paid_amount"`
	}
	topDefaulters := make([]defaulterEntry, 0, len(defaulters))
	for i := range defaulters {
		entry := defaulterEntry{
			StudentID:   defaulters[i].FeeStudentID.String(),
			Balance:     defaulters[i].FeeBalance,
			TotalAmount: defaulters[i].FeeTotalAmount,
			PaidAmount:  defaulters[i].FeeTotalPaid,
		}
		var student usermodel.User
		if err := h.DB.
			Select("user_first_name, user_last_name, user_admission_number").
			First(&student, "user_id = ?", defaulters[i].FeeStudentID).Error; err == nil {
			entry.StudentName = student.FullName()
			if student.UserAdmissionNumber != nil {
				entry.AdmissionNumber = *student.UserAdmissionNumber
			}
		}
		topDefaulters = append(topDefaulters, entry)
	}

	var allowedGatepasses int64
	if err := h.DB.Model(&feemodel.FeeRecord{}).
		Where("fee_academic_year = ? AND fee_term = ?",
			helper.CurrentAcademicYear(now), helper.CurrentTerm(now)).
		Where("fee_gatepass ->> 'allowed' = 'true'").
		Count(&allowedGatepasses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	return helper.JsonOK(c, "Dashboard fetched successfully", fiber.Map{
		"user": fiber.Map{
			"name":       user.FullName(),
			"first_name": user.UserFirstName,
			"account_id": user.UserAccountID,
		},
		"stats": fiber.Map{
			"today_collection":   todayTotal,
			"month_collection":   monthTotal,
			"active_defaulters":  len(topDefaulters),
			"allowed_gatepasses": allowedGatepasses,
		},
		"today_breakdown": todayByMethod,
		"monthly_trend":   monthlyTrend,
		"top_defaulters":  topDefaulters,
		"payment_methods": allByMethod,
	})
}

/* ==============================
   GATEPASS  GET /api/dashboard/gatepass
============================== */

func (h *DashboardHandler) Gatepass(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if user.UserRole != "gatepass" {
		return helper.JsonError(c, fiber.StatusForbidden, "This dashboard is for gatepass officers only")
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := dayStart.AddDate(0, 0, -7)

	type statusCount struct {
		Status string
		Count  int64
	}
	var todayCounts []statusCount
	if err := h.DB.Model(&gatepassmodel.GatepassRecord{}).
		Select("gatepass_status AS status, COUNT(*) AS count").
		Where("gatepass_verification_time >= ? AND gatepass_verification_time < ?", dayStart, dayStart.AddDate(0, 0, 1)).
		Group("gatepass_status").
		Scan(&todayCounts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}
	var todayVerified, todayDenied, todayTotal int64
	for _, sc := range todayCounts {
		todayTotal += sc.Count
		switch gatepassmodel.VerificationStatus(sc.Status) {
		case gatepassmodel.StatusVerified:
			todayVerified = sc.Count
		case gatepassmodel.StatusDenied:
			todayDenied = sc.Count
		}
	}

	type dayBucket struct {
		Day      string `json:"day"`
		Verified int64  `json:"verified"`
		Denied   int64  `json:"denied"`
	}
	var weekly []dayBucket
	if err := h.DB.Model(&gatepassmodel.GatepassRecord{}).
		Select(`to_char(gatepass_verification_time, 'YYYY-MM-DD') AS day,
			COUNT(*) FILTER (WHERE gatepass_status = 'verified') AS verified,
			COUNT(*) FILTER (WHERE gatepass_status = 'denied') AS denied`).
		Where("gatepass_verification_time >= ?", weekStart).
		Group("day").
		Order("day ASC").
		Scan(&weekly).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	var activeReceipts int64
	if err := h.DB.Model(&gatepassmodel.GatepassRecord{}).
		Where("gatepass_status = ? AND gatepass_expiry_time > ? AND gatepass_used_at IS NULL",
			gatepassmodel.StatusVerified, now).
		Count(&activeReceipts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	var recent []gatepassmodel.GatepassRecord
	if err := h.DB.
		Order("gatepass_verification_time DESC").
		Limit(10).
		Find(&recent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	type recentEntry struct {
		StudentID       string    `json:"student_id"`
		StudentName     string    `json:"student_name"`
		AdmissionNumber string    `json:"admission_number"`
		Status          string    `json:"status"`
		Time            time.Time `json:"time"`
		ReceiptNumber   string    `json:"receipt_number"`
		Used            bool      `json:"used"`
	}
	recentVerifications := make([]recentEntry, 0, len(recent))
	for i := range recent {
		entry := recentEntry{
			StudentID:       recent[i].GatepassStudentID.String(),
			AdmissionNumber: recent[i].GatepassAdmissionNumber,
			Status:          string(recent[i].GatepassStatus),
			Time:            recent[i].GatepassVerificationTime,
			ReceiptNumber:   recent[i].GatepassReceiptNumber,
			Used:            recent[i].GatepassUsedAt != nil,
		}
		var student usermodel.User
		if err := h.DB.
			Select("user_first_name, user_last_name").
			First(&student, "user_id = ?", recent[i].GatepassStudentID).Error; err == nil {
			entry.StudentName = student.FullName()
		}
		recentVerifications = append(recentVerifications, entry)
	}

	operating := helper.GateOperatingStatus(now)

	return helper.JsonOK(c, "Dashboard fetched successfully", fiber.Map{
		"user": fiber.Map{
			"name":       user.FullName(),
			"first_name": user.UserFirstName,
			"account_id": user.UserAccountID,
		},
		"stats": fiber.Map{
			"today_verified":  todayVerified,
			"today_denied":    todayDenied,
			"today_total":     todayTotal,
			"active_receipts": activeReceipts,
		},
		"weekly_trend":         weekly,
		"recent_verifications": recentVerifications,
		"operating_status": fiber.Map{
			"is_open":         operating.IsOpen,
			"current_time":    now,
			"operating_hours": "Monday - Friday, 6:00 AM - 5:00 PM",
		},
	})
}
