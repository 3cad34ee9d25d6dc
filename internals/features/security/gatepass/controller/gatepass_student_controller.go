package controller

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
	gpmodel "github.com/Davie-07/school-management-system/internals/features/security/gatepass/model"
	gpservice "github.com/Davie-07/school-management-system/internals/features/security/gatepass/service"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

/* ==============================
   STUDENT RECEIPT  POST /api/gatepass/student-receipt
   Self-service: the student issues their own 2-hour receipt, same operating
   hours and duplicate rules as operator verification. Only outright unpaid
   records without an override are refused.
============================== */

func (h *GatepassHandler) StudentReceipt(c *fiber.Ctx) error {
	now := time.Now()
	if op := helper.GateOperatingStatus(now); !op.IsOpen {
		return helper.JsonError(c, fiber.StatusBadRequest, op.Message)
	}

	student, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var recent gpmodel.GatepassRecord
	err = h.DB.
		Where("gatepass_student_id = ? AND gatepass_status = ? AND gatepass_verification_time >= ?",
			student.UserID, gpmodel.StatusVerified, now.Add(-gpservice.DuplicateLookback)).
		First(&recent).Error
	if err == nil && now.Before(recent.GatepassExpiryTime) {
		return helper.JsonOK(c, "You already have an active security receipt", fiber.Map{
			"receipt_number": recent.GatepassReceiptNumber,
			"code":           recent.GatepassVerificationCode,
			"expiry_time":    recent.GatepassExpiryTime,
		})
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check recent receipts")
	}

	fee, ferr := h.currentFee(student.UserID, now)
	if ferr != nil {
		if errors.Is(ferr, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "No fee record found for current term")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch fee record")
	}

	override := fee.FeeGatepass.Data()
	if fee.FeePaymentStatus == feemodel.PaymentStatusUnpaid && !override.Allowed {
		return helper.JsonError(c, fiber.StatusForbidden,
			"You are not authorized to generate a security receipt due to unpaid fees")
	}

	admission := ""
	if student.UserAdmissionNumber != nil {
		admission = *student.UserAdmissionNumber
	}
	outcome := gpservice.Outcome{
		Status:       gpmodel.StatusVerified,
		Message:      fmt.Sprintf("Security receipt generated for %s", student.FullName()),
		AllowedUntil: override.AllowedUntil,
	}
	rec := gpservice.NewRecord(student.UserID, student.UserID, admission, fee, outcome, now)
	if err := h.DB.Create(&rec).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate security receipt")
	}

	return helper.JsonCreated(c, "Security receipt generated successfully", fiber.Map{
		"receipt_number": rec.GatepassReceiptNumber,
		"code":           rec.GatepassVerificationCode,
		"expiry_time":    rec.GatepassExpiryTime,
		"valid_for":      "2 hours",
	})
}
