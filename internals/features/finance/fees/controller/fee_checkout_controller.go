package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	feedto "github.com/Davie-07/school-management-system/internals/features/finance/fees/dto"
	feemodel "github.com/Davie-07/school-management-system/internals/features/finance/fees/model"
	feeservice "github.com/Davie-07/school-management-system/internals/features/finance/fees/service"
	usermodel "github.com/Davie-07/school-management-system/internals/features/users/user/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

/* ==============================
   CHECKOUT  POST /api/fees/:id/checkout
   Students open an online payment for their own record; finance/admin can
   open one on a student's behalf.
============================== */

func (h *FeeHandler) CreateCheckout(c *fiber.Ctx) error {
	fee, res := h.loadFee(c)
	if fee == nil {
		return res
	}

	var req feedto.CheckoutCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if authmw.RoleFromLocals(c) == "student" {
		actorID, err := authmw.UserIDFromLocals(c)
		if err != nil || actorID != fee.FeeStudentID {
			return helper.JsonError(c, fiber.StatusForbidden, "You can only pay your own fees")
		}
	}

	var student usermodel.User
	if err := h.DB.First(&student, "user_id = ?", fee.FeeStudentID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	cust := feeservice.CheckoutCustomer{
		FirstName: student.UserFirstName,
		LastName:  student.UserLastName,
		Email:     student.UserEmail,
	}
	if student.UserPhoneNumber != nil {
		cust.Phone = *student.UserPhoneNumber
	}

	token, redirectURL, err := feeservice.GenerateSnapToken(fee, req.Amount, cust)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to create checkout")
	}

	return helper.JsonCreated(c, "Checkout created", feedto.CheckoutResponse{
		OrderID:     feeservice.CheckoutOrderID(fee),
		SnapToken:   token,
		RedirectURL: redirectURL,
	})
}

/* ==============================
   WEBHOOK  POST /api/fees/payments/notification
   Unauthenticated gateway callback; settlements append a gateway payment.
============================== */

type checkoutNotification struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	FraudStatus       string `json:"fraud_status"`
	GrossAmount       string `json:"gross_amount"`
}

func (h *FeeHandler) HandlePaymentNotification(c *fiber.Ctx) error {
	var note checkoutNotification
	if err := c.BodyParser(&note); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification body")
	}

	// SHA512(order_id + status_code + gross_amount + server key); the route is
	// unauthenticated so this is the only thing standing between the ledger
	// and a forged settlement.
	if !feeservice.ValidNotificationSignature(note.OrderID, note.StatusCode, note.GrossAmount, note.SignatureKey) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid signature")
	}

	feeID, ok := strings.CutPrefix(note.OrderID, "FEE-")
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown order id")
	}
	id, err := uuid.Parse(feeID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Unknown order id")
	}

	if !feeservice.SettlementAccepted(note.TransactionStatus, note.FraudStatus) {
		// pending, deny, cancel and expire notifications are acknowledged
		// without touching the ledger
		return helper.JsonOK(c, "Notification received", nil)
	}

	amount, err := strconv.ParseFloat(note.GrossAmount, 64)
	if err != nil || amount <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid gross amount")
	}

	var fee feemodel.FeeRecord
	if err := h.DB.First(&fee, "fee_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Fee record not found")
	}

	// a retried settlement for the same transaction must not double-post
	for _, p := range fee.FeePayments {
		if p.ReferenceNumber == note.TransactionID && p.PaymentMethod == feemodel.PaymentMethodGateway {
			return helper.JsonOK(c, "Notification already processed", nil)
		}
	}

	now := time.Now()
	fee.FeePayments = append(fee.FeePayments, feemodel.FeePayment{
		Amount:          amount,
		PaymentMethod:   feemodel.PaymentMethodGateway,
		ReferenceNumber: note.TransactionID,
		ReceiptNumber:   helper.GenerateReceiptNumber(now),
		ReceivedBy:      fee.FeeStudentID,
		PaymentDate:     now,
		Notes:           "Online checkout settlement",
	})
	feeservice.Recompute(&fee)

	if err := h.DB.Save(&fee).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record settlement")
	}
	return helper.JsonOK(c, "Settlement recorded", nil)
}
