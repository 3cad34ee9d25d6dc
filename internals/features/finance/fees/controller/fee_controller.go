package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	coursemodel "github.com/Davie-07/school-management-system/internals/features/academics/courses/model"
	feedto "github.com/Davie-07/school-management-system/internals/features/finance/fees/dto"
	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
	feeservice "github.com/Davie-07/school-management-system/internals/features/finance/fees/service"
	usermodel "github.com/Davie-07/school-management-system/internals/features/users/user/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

type FeeHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewFeeHandler(db *gorm.DB) *FeeHandler {
	return &FeeHandler{DB: db, Validate: validator.New()}
}

/* ==============================
   LIST  GET /api/fees
============================== */

func (h *FeeHandler) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&feemodel.FeeRecord{})
	if year := strings.TrimSpace(c.Query("academic_year")); year != "" {
		q = q.Where("fee_academic_year = ?", year)
	}
	if term := strings.TrimSpace(c.Query("term")); term != "" {
		q = q.Where("fee_term = ?", term)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("fee_payment_status = ?", status)
	}
	if courseID := strings.TrimSpace(c.Query("course_id")); courseID != "" {
		id, err := uuid.Parse(courseID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
		}
		q = q.Where("fee_course_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count fee records")
	}

	var fees []feemodel.FeeRecord
	if err := q.Order("fee_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&fees).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch fee records")
	}

	return helper.JsonList(c, "Fee records fetched", fees, helper.BuildPagination(total, p))
}

/* ==============================
   GET  /api/fees/:id
============================== */

func (h *FeeHandler) GetByID(c *fiber.Ctx) error {
	fee, res := h.loadFee(c)
	if fee == nil {
		return res
	}
	return helper.JsonOK(c, "Fee record fetched", fee)
}

/* ==============================
   CREATE  POST /api/fees
   One record per (student, year, term); the structure defaults to the
   student's course per-term tuition plus standing charges.
============================== */

func (h *FeeHandler) Create(c *fiber.Ctx) error {
	var req feedto.FeeCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var student usermodel.User
	if err := h.DB.
		Where("user_id = ? AND user_role = ?", studentID, "student").
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}
	if student.UserCourseID == nil || student.UserLevelID == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Student has no course enrollment")
	}

	now := time.Now()
	year := req.AcademicYear
	if year == "" {
		year = helper.CurrentAcademicYear(now)
	}
	term := req.Term
	if term == "" {
		term = helper.CurrentTerm(now)
	}

	var existing feemodel.FeeRecord
	err = h.DB.
		Where("fee_student_id = ? AND fee_academic_year = ? AND fee_term = ?", studentID, year, term).
		First(&existing).Error
	if err == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Fee record already exists for this student and term")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing fee record")
	}

	structure := feemodel.FeeStructure{}
	if req.FeeStructure != nil {
		structure = *req.FeeStructure
	} else {
		var course coursemodel.Course
		if err := h.DB.First(&course, "course_id = ?", *student.UserCourseID).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch course fees")
		}
		structure = feeservice.DefaultFeeStructure(course.CourseFees.Data().PerTerm)
	}

	fee := feemodel.FeeRecord{
		FeeStudentID:    studentID,
		FeeAcademicYear: year,
		FeeTerm:         term,
		FeeCourseID:     *student.UserCourseID,
		FeeLevelID:      *student.UserLevelID,
		FeeStructure:    datatypes.NewJSONType(structure),
		FeePayments:     datatypes.NewJSONSlice([]feemodel.FeePayment{}),
		FeeWaivers:      datatypes.NewJSONSlice([]feemodel.FeeWaiver{}),
		FeeDueDate:      now.Add(feeservice.DueDateOffset),
		FeeNotes:        req.Notes,
	}
	feeservice.Recompute(&fee)

	if err := h.DB.Create(&fee).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create fee record")
	}
	return helper.JsonCreated(c, "Fee record created", fee)
}

/* ==============================
   RECORD PAYMENT  POST /api/fees/:id/payments
   Overpayment is allowed; the derived status flips to overpaid.
============================== */

func (h *FeeHandler) RecordPayment(c *fiber.Ctx) error {
	fee, res := h.loadFee(c)
	if fee == nil {
		return res
	}

	var req feedto.PaymentCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actorID, err := authmw.UserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	now := time.Now()
	payment := feemodel.FeePayment{
		Amount:          req.Amount,
		PaymentMethod:   feemodel.PaymentMethod(req.PaymentMethod),
		ReferenceNumber: req.ReferenceNumber,
		ReceiptNumber:   helper.GenerateReceiptNumber(now),
		ReceivedBy:      actorID,
		PaymentDate:     now,
		Notes:           req.Notes,
	}

	fee.FeePayments = append(fee.FeePayments, payment)
	feeservice.Recompute(fee)

	if err := h.DB.Save(fee).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record payment")
	}
	return helper.JsonOK(c, "Payment recorded", feedto.PaymentReceiptResponse{
		ReceiptNumber: payment.ReceiptNumber,
		Fee:           fee,
	})
}

/* ==============================
   APPLY WAIVER  POST /api/fees/:id/waivers  (admin only via route)
============================== */

func (h *FeeHandler) ApplyWaiver(c *fiber.Ctx) error {
	fee, res := h.loadFee(c)
	if fee == nil {
		return res
	}

	var req feedto.WaiverCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actorID, err := authmw.UserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	fee.FeeWaivers = append(fee.FeeWaivers, feemodel.FeeWaiver{
		Amount:       req.Amount,
		Reason:       req.Reason,
		ApprovedBy:   actorID,
		ApprovedDate: time.Now(),
	})
	feeservice.Recompute(fee)

	if err := h.DB.Save(fee).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to apply waiver")
	}
	return helper.JsonUpdated(c, "Waiver applied", fee)
}

/* ==============================
   GATEPASS OVERRIDE  PATCH /api/fees/:id/gatepass
============================== */

func (h *FeeHandler) SetGatepassOverride(c *fiber.Ctx) error {
	fee, res := h.loadFee(c)
	if fee == nil {
		return res
	}

	var req feedto.GatepassOverrideDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	actorID, err := authmw.UserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	fee.FeeGatepass = datatypes.NewJSONType(req.ToPermission(actorID, time.Now()))
	if err := h.DB.Save(fee).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update gatepass permission")
	}
	return helper.JsonUpdated(c, "Gatepass permission updated", fee)
}

/* ==============================
   BY STUDENT  GET /api/fees/student/:studentId
   Students may only read their own ledger.
============================== */

func (h *FeeHandler) ListByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	if authmw.RoleFromLocals(c) == "student" {
		actorID, err := authmw.UserIDFromLocals(c)
		if err != nil || actorID != studentID {
			return helper.JsonError(c, fiber.StatusForbidden, "You can only view your own fee records")
		}
	}

	var fees []feemodel.FeeRecord
	if err := h.DB.
		Where("fee_student_id = ?", studentID).
		Order("fee_academic_year DESC, fee_term DESC").
		Find(&fees).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch fee records")
	}

	summary := feedto.StudentFeeSummary{Records: len(fees)}
	for _, f := range fees {
		summary.TotalBilled += f.FeeTotalAmount
		summary.TotalPaid += f.FeeTotalPaid
		if f.FeeBalance > 0 {
			summary.TotalOutstanding += f.FeeBalance
		}
	}

	return helper.JsonOK(c, "Student fee records fetched", feedto.StudentFeesResponse{
		Summary: summary,
		Fees:    fees,
	})
}

/* ==============================
   shared
============================== */

// loadFee resolves :id. On failure the error response is already written and
// the returned record is nil.
func (h *FeeHandler) loadFee(c *fiber.Ctx) (*feemodel.FeeRecord, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid fee record id")
	}
	var fee feemodel.FeeRecord
	if err := h.DB.First(&fee, "fee_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Fee record not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch fee record")
	}
	return &fee, nil
}
