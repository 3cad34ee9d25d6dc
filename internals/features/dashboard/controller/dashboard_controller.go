package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	coursemodel "github.com/Davie-07/school-management-system/internals/features/academics/courses/model"
	exammodel "github.com/Davie-07/school-management-system/internals/features/academics/exams/model"
	schedulemodel "github.com/Davie-07/school-management-system/internals/features/academics/schedules/model"
	announcementmodel "github.com/Davie-07/school-management-system/internals/features/broadcast/announcements/model"
	announcementservice "github.com/Davie-07/school-management-system/internals/features/broadcast/announcements/service"
	quoteservice "github.com/Davie-07/school-management-system/internals/features/broadcast/quotes/service"
	reportmodel "github.com/Davie-07/school-management-system/internals/features/broadcast/reports/model"
	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
	usermodel "github.com/Davie-07/school-management-system/internals/features/users/user/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

/* ==============================
   STUDENT  GET /api/dashboard/student
============================== */

func (h *DashboardHandler) Student(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if user.UserRole != "student" {
		return helper.JsonError(c, fiber.StatusForbidden, "This dashboard is for students only")
	}

	now := time.Now()

	// Recent published results
	var exams []exammodel.Exam
	if err := h.DB.
		Where(`exam_results @> ?`, `[{"student_id":"`+user.UserID.String()+`","published":true}]`).
		Order("exam_date DESC").
		Limit(5).
		Find(&exams).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	type recentExam struct {
		Title      string    `json:"title"`
		ExamType   string    `json:"exam_type"`
		Term       string    `json:"term"`
		Date       time.Time `json:"date"`
		Score      float64   `json:"score"`
		Percentage float64   `json:"percentage"`
		Grade      string    `json:"grade"`
	}
	recent := make([]recentExam, 0, len(exams))
	var percentageSum float64
	for i := range exams {
		idx := exams[i].ResultFor(user.UserID)
		if idx < 0 {
			continue
		}
		result := exams[i].ExamResults[idx]
		recent = append(recent, recentExam{
			Title:      exams[i].ExamTitle,
			ExamType:   string(exams[i].ExamType),
			Term:       exams[i].ExamTerm,
			Date:       exams[i].ExamDate,
			Score:      result.Score,
			Percentage: result.Percentage,
			Grade:      result.Grade,
		})
		percentageSum += result.Percentage
	}
	averagePercentage := 0.0
	if len(recent) > 0 {
		averagePercentage = percentageSum / float64(len(recent))
	}

	// Current term fee
	var fee feemodel.FeeRecord
	feeErr := h.DB.
		Where("fee_student_id = ? AND fee_academic_year = ? AND fee_term = ?",
			user.UserID, helper.CurrentAcademicYear(now), helper.CurrentTerm(now)).
		First(&fee).Error
	hasFee := feeErr == nil
	if feeErr != nil && !errors.Is(feeErr, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	// Upcoming sessions
	var upcoming []schedulemodel.Schedule
	scheduleScope := h.DB.Model(&schedulemodel.Schedule{}).
		Where("schedule_status <> ?", schedulemodel.ScheduleStatusCancelled)
	if user.UserCourseID != nil {
		scheduleScope = scheduleScope.Where("schedule_course_id = ?", *user.UserCourseID)
	}
	if user.UserLevelID != nil {
		scheduleScope = scheduleScope.Where("schedule_level_id = ?", *user.UserLevelID)
	}
	if err := scheduleScope.
		Where("schedule_date >= ?", now).
		Order("schedule_date ASC, schedule_start_time ASC").
		Limit(5).
		Find(&upcoming).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	// Attendance rate over completed sessions
	attendanceRate, err := h.attendanceRate(user, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	// Scheduled future exams
	var upcomingExams int64
	examScope := h.DB.Model(&exammodel.Exam{}).
		Where("exam_date >= ? AND exam_status = ?", now, exammodel.ExamStatusScheduled)
	if user.UserCourseID != nil {
		examScope = examScope.Where("exam_course_id = ?", *user.UserCourseID)
	}
	if user.UserLevelID != nil {
		examScope = examScope.Where("exam_level_id = ?", *user.UserLevelID)
	}
	if err := examScope.Count(&upcomingExams).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	unread, err := h.unreadAnnouncements(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	quote, _ := quoteservice.DailyQuote(h.DB, now)

	var courseName *string
	if user.UserCourseID != nil {
		var course coursemodel.Course
		if err := h.DB.Select("course_name").First(&course, "course_id = ?", *user.UserCourseID).Error; err == nil {
			courseName = &course.CourseName
		}
	}

	feeStatus := fiber.Map{
		"total_amount":   0.0,
		"paid_amount":    0.0,
		"balance":        0.0,
		"payment_status": feemodel.PaymentStatusUnpaid,
		"due_date":       nil,
	}
	feeBalance := 0.0
	if hasFee {
		feeStatus = fiber.Map{
			"total_amount":   fee.FeeTotalAmount,
			"paid_amount":    fee.FeeTotalPaid,
			"balance":        fee.FeeBalance,
			"payment_status": fee.FeePaymentStatus,
			"due_date":       fee.FeeDueDate,
		}
		feeBalance = fee.FeeBalance
	}

	return helper.JsonOK(c, "Dashboard fetched successfully", fiber.Map{
		"user": fiber.Map{
			"name":             user.FullName(),
			"first_name":       user.UserFirstName,
			"admission_number": user.UserAdmissionNumber,
			"course":           courseName,
		},
		"stats": fiber.Map{
			"attendance_rate": attendanceRate,
			"average_grade":   averageGrade(averagePercentage),
			"fee_balance":     feeBalance,
			"upcoming_exams":  upcomingExams,
		},
		"recent_exams":         recent,
		"upcoming_schedules":   upcoming,
		"fee_status":           feeStatus,
		"unread_announcements": unread,
		"daily_quote":          quote,
	})
}

// averageGrade is the dashboard ladder; E is its floor.
func averageGrade(percentage float64) string {
	switch {
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	default:
		return "E"
	}
}

func (h *DashboardHandler) attendanceRate(user *usermodel.User, now time.Time) (string, error) {
	scope := h.DB.Model(&schedulemodel.Schedule{}).
		Where("schedule_status = ? AND schedule_date <= ?", schedulemodel.ScheduleStatusCompleted, now)
	if user.UserCourseID != nil {
		scope = scope.Where("schedule_course_id = ?", *user.UserCourseID)
	}
	if user.UserLevelID != nil {
		scope = scope.Where("schedule_level_id = ?", *user.UserLevelID)
	}

	var completed []schedulemodel.Schedule
	if err := scope.Find(&completed).Error; err != nil {
		return "", err
	}
	if len(completed) == 0 {
		return "0%", nil
	}

	attended := 0
	for i := range completed {
		idx := completed[i].AttendeeFor(user.UserID)
		if idx < 0 {
			continue
		}
		switch completed[i].ScheduleAttendees[idx].Status {
		case schedulemodel.AttendancePresent, schedulemodel.AttendanceLate:
			attended++
		}
	}
	rate := float64(attended) / float64(len(completed)) * 100
	return strconv.FormatFloat(rate, 'f', 1, 64) + "%", nil
}

func (h *DashboardHandler) unreadAnnouncements(user *usermodel.User) (int, error) {
	var candidates []announcementmodel.Announcement
	if err := h.DB.
		Where("announcement_status = ?", announcementmodel.AnnouncementPublished).
		Where("announcement_valid_until IS NULL OR announcement_valid_until >= ?", time.Now()).
		Find(&candidates).Error; err != nil {
		return 0, err
	}

	recipient := announcementservice.Recipient{
		UserID:   user.UserID,
		Role:     user.UserRole,
		CourseID: user.UserCourseID,
		LevelID:  user.UserLevelID,
	}
	count := 0
	for i := range candidates {
		if !announcementservice.Matches(candidates[i].AnnouncementAudience.Data(), recipient) {
			continue
		}
		if !announcementservice.HasRead(candidates[i].AnnouncementReadBy, user.UserID) {
			count++
		}
	}
	return count, nil
}

/* ==============================
   TEACHER  GET /api/dashboard/teacher
============================== */

func (h *DashboardHandler) Teacher(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if user.UserRole != "teacher" {
		return helper.JsonError(c, fiber.StatusForbidden, "This dashboard is for teachers only")
	}

	now := time.Now()
	assignedIDs := []string(user.UserAssignedCourseIDs)

	var courses []coursemodel.Course
	if len(assignedIDs) > 0 {
		if err := h.DB.
			Select("course_id, course_name, course_code, course_current_enrollment").
			Where("course_id IN ?", assignedIDs).
			Find(&courses).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
		}
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var today []schedulemodel.Schedule
	if err := h.DB.
		Where("schedule_teacher_id = ?", user.UserID).
		Where("schedule_date >= ? AND schedule_date < ?", dayStart, dayStart.AddDate(0, 0, 1)).
		Order("schedule_start_time ASC").
		Find(&today).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	var upcomingExams []exammodel.Exam
	if err := h.DB.
		Select("exam_id, exam_title, exam_type, exam_date, exam_status").
		Where("exam_teacher_id = ? AND exam_date >= ?", user.UserID, now).
		Where("exam_status IN ?", []exammodel.ExamStatus{exammodel.ExamStatusScheduled, exammodel.ExamStatusMarked}).
		Order("exam_date ASC").
		Limit(5).
		Find(&upcomingExams).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}
	pendingExams := 0
	unmarkedExams := 0
	for i := range upcomingExams {
		switch upcomingExams[i].ExamStatus {
		case exammodel.ExamStatusScheduled:
			pendingExams++
		case exammodel.ExamStatusMarked:
			unmarkedExams++
		}
	}

	var pendingReports []reportmodel.Report
	if err := h.DB.
		Where("report_target_dashboard = ? AND report_status = ? AND report_type = ?",
			reportmodel.DashboardTeacher, reportmodel.ReportPending, reportmodel.ReportExamMisprint).
		Order("report_created_at DESC").
		Limit(5).
		Find(&pendingReports).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	var studentCount int64
	if len(assignedIDs) > 0 {
		if err := h.DB.Model(&usermodel.User{}).
			Where("user_role = ? AND user_course_id IN ?", "student", assignedIDs).
			Count(&studentCount).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
		}
	}

	// Published exam statistics, aggregated over the results documents
	var published []exammodel.Exam
	if err := h.DB.
		Where("exam_teacher_id = ? AND exam_status = ?", user.UserID, exammodel.ExamStatusPublished).
		Find(&published).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}
	var percentageSum float64
	marked := 0
	for i := range published {
		for j := range published[i].ExamResults {
			percentageSum += published[i].ExamResults[j].Percentage
			marked++
		}
	}
	averageScore := 0.0
	if marked > 0 {
		averageScore = percentageSum / float64(marked)
	}

	return helper.JsonOK(c, "Dashboard fetched successfully", fiber.Map{
		"user": fiber.Map{
			"name":       user.FullName(),
			"first_name": user.UserFirstName,
			"account_id": user.UserAccountID,
		},
		"stats": fiber.Map{
			"total_courses":  len(courses),
			"total_students": studentCount,
			"today_classes":  len(today),
			"pending_exams":  pendingExams,
			"unmarked_exams": unmarkedExams,
		},
		"assigned_courses": courses,
		"today_schedules":  today,
		"upcoming_exams":   upcomingExams,
		"pending_reports":  pendingReports,
		"exam_statistics": fiber.Map{
			"average_score":         averageScore,
			"total_exams":           len(published),
			"total_students_marked": marked,
		},
	})
}
