package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	coursemodel "github.com/Davie-07/school-management-system/internals/features/academics/courses/model"
	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
	gpdto "github.com/Davie-07/school-management-system/internals/features/security/gatepass/dto"
	gpmodel "github.com/Davie-07/school-management-system/internals/features/security/gatepass/model"
	gpservice "github.com/Davie-07/school-management-system/internals/features/security/gatepass/service"
	usermodel "github.com/Davie-07/school-management-system/internals/features/users/user/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

type GatepassHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewGatepassHandler(db *gorm.DB) *GatepassHandler {
	return &GatepassHandler{DB: db, Validate: validator.New()}
}

/* ==============================
   VERIFY  POST /api/gatepass/verify
   Denied outcomes are persisted for audit; the envelope's success flag
   mirrors the decision, not the HTTP write.
============================== */

func (h *GatepassHandler) Verify(c *fiber.Ctx) error {
	var req gpdto.VerifyRequestDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	now := time.Now()
	if op := helper.GateOperatingStatus(now); !op.IsOpen {
		return helper.JsonError(c, fiber.StatusBadRequest, op.Message)
	}

	admission := strings.ToUpper(strings.TrimSpace(req.AdmissionNumber))
	var student usermodel.User
	if err := h.DB.
		Where("user_admission_number = ? AND user_role = ?", admission, "student").
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found with this admission number")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	// the lookback scans records still in 'verified'; a pass consumed at the
	// gate has moved to 'used' and no longer blocks re-issuing
	var recent gpmodel.GatepassRecord
	err := h.DB.
		Where("gatepass_student_id = ? AND gatepass_status = ? AND gatepass_verification_time >= ?",
			student.UserID, gpmodel.StatusVerified, now.Add(-gpservice.DuplicateLookback)).
		First(&recent).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":  false,
			"message":  "A gatepass was already issued within the last 2 hours",
			"gatepass": recent,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check recent gatepasses")
	}

	fee, ferr := h.currentFee(student.UserID, now)
	if ferr != nil {
		if errors.Is(ferr, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "No fee record found for current term")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch fee record")
	}

	operatorID, err := authmw.UserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	outcome := gpservice.Decide(student.FullName(), fee, now)
	rec := gpservice.NewRecord(student.UserID, operatorID, admission, fee, outcome, now)
	if err := h.DB.Create(&rec).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create gatepass record")
	}

	resp := gpdto.VerifyResponse{
		Gatepass: &rec,
		Student: gpdto.VerifiedStudent{
			Name:            student.FullName(),
			AdmissionNumber: admission,
		},
	}
	if student.UserCourseID != nil {
		var course coursemodel.Course
		if err := h.DB.Select("course_name").First(&course, "course_id = ?", *student.UserCourseID).Error; err == nil {
			resp.Student.Course = course.CourseName
		}
	}
	if student.UserLevelID != nil {
		var level coursemodel.Level
		if err := h.DB.Select("level_name").First(&level, "level_id = ?", *student.UserLevelID).Error; err == nil {
			resp.Student.Level = level.LevelName
		}
	}
	if outcome.Verified() {
		resp.Receipt = &gpdto.ReceiptPayload{
			Number:     rec.GatepassReceiptNumber,
			Code:       rec.GatepassVerificationCode,
			ValidUntil: rec.GatepassExpiryTime,
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": outcome.Verified(),
		"message": outcome.Message,
		"data":    resp,
	})
}

/* ==============================
   RECEIPT  GET /api/gatepass/receipt/:code
   Expiry is detected lazily here; usedAt is never stamped by expiry.
============================== */

func (h *GatepassHandler) Receipt(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))

	var rec gpmodel.GatepassRecord
	if err := h.DB.First(&rec, "gatepass_verification_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Receipt not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch receipt")
	}

	if rec.IsExpired(time.Now()) && rec.GatepassStatus == gpmodel.StatusVerified {
		rec.GatepassStatus = gpmodel.StatusExpired
		_ = h.DB.Save(&rec).Error
		return helper.JsonError(c, fiber.StatusBadRequest, "This receipt has expired")
	}

	return helper.JsonOK(c, "Receipt fetched", rec)
}

/* ==============================
   MARK USED  POST /api/gatepass/use/:code
============================== */

func (h *GatepassHandler) MarkUsed(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))

	var rec gpmodel.GatepassRecord
	if err := h.DB.
		Where("gatepass_verification_code = ? AND gatepass_status = ?", code, gpmodel.StatusVerified).
		First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Valid gatepass not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch gatepass")
	}

	switch err := gpservice.Consume(&rec, time.Now()); {
	case errors.Is(err, gpservice.ErrPassUsed):
		return helper.JsonError(c, fiber.StatusBadRequest, "This gatepass has already been used")
	case errors.Is(err, gpservice.ErrPassExpired):
		_ = h.DB.Save(&rec).Error
		return helper.JsonError(c, fiber.StatusBadRequest, "This gatepass has expired")
	}

	if err := h.DB.Save(&rec).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark gatepass as used")
	}
	return helper.JsonOK(c, "Gatepass marked as used successfully", nil)
}

/* ==============================
   HISTORY  GET /api/gatepass/history
   Students see their own records only. Hard cap of 100 rows.
============================== */

func (h *GatepassHandler) History(c *fiber.Ctx) error {
	q := h.DB.Model(&gpmodel.GatepassRecord{})

	if authmw.RoleFromLocals(c) == "student" {
		actorID, err := authmw.UserIDFromLocals(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		q = q.Where("gatepass_student_id = ?", actorID)
	} else if studentID := strings.TrimSpace(c.Query("student")); studentID != "" {
		id, err := uuid.Parse(studentID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
		}
		q = q.Where("gatepass_student_id = ?", id)
	}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("gatepass_status = ?", status)
	}
	if date := strings.TrimSpace(c.Query("date")); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		}
		q = q.Where("gatepass_verification_time >= ? AND gatepass_verification_time < ?", day, day.AddDate(0, 0, 1))
	}

	var records []gpmodel.GatepassRecord
	if err := q.Order("gatepass_verification_time DESC").Limit(100).Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch gatepass history")
	}

	return helper.JsonOK(c, "Gatepass history fetched", fiber.Map{
		"count":      len(records),
		"gatepasses": records,
	})
}

/* ==============================
   TODAY  GET /api/gatepass/today
============================== */

func (h *GatepassHandler) Today(c *fiber.Ctx) error {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	var records []gpmodel.GatepassRecord
	if err := h.DB.
		Where("gatepass_verification_time >= ? AND gatepass_verification_time < ?", start, end).
		Order("gatepass_verification_time DESC").
		Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch today's verifications")
	}

	stats := gpdto.TodayStats{Total: len(records)}
	for _, r := range records {
		switch r.GatepassStatus {
		case gpmodel.StatusVerified:
			stats.Verified++
		case gpmodel.StatusDenied:
			stats.Denied++
		}
		if r.GatepassUsedAt != nil {
			stats.Used++
		}
		if r.GatepassStatus == gpmodel.StatusVerified && r.GatepassUsedAt == nil {
			stats.Pending++
		}
	}

	return helper.JsonOK(c, "Today's verifications fetched", fiber.Map{
		"date":          start.Format("2006-01-02"),
		"stats":         stats,
		"verifications": records,
	})
}

/* ==============================
   shared
============================== */

func (h *GatepassHandler) currentFee(studentID uuid.UUID, now time.Time) (*feemodel.FeeRecord, error) {
	var fee feemodel.FeeRecord
	err := h.DB.
		Where("fee_student_id = ? AND fee_academic_year = ? AND fee_term = ?",
			studentID, helper.CurrentAcademicYear(now), helper.CurrentTerm(now)).
		First(&fee).Error
	if err != nil {
		return nil, err
	}
	return &fee, nil
}
