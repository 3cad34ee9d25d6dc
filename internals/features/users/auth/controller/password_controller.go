package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	authdto "github.com/Davie-07/school-management-system/internals/features/users/auth/dto"
	authservice "github.com/Davie-07/school-management-system/internals/features/users/auth/service"
	usermodel "github.com/Davie-07/school-management-system/internals/features/users/user/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

const resetCodeTTL = 30 * time.Minute

/* ==============================
   FORGOT PASSWORD  POST /api/auth/forgot-password  (public)
   Students reset directly; staff get an 8-char code an admin reads out.
============================== */

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req authdto.ForgotPasswordDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	identifier := strings.TrimSpace(req.Identifier)

	var user usermodel.User
	err := h.DB.
		Where("user_email = ? AND (user_admission_number = ? OR user_account_id = ?)",
			email, strings.ToUpper(identifier), identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No user found with these credentials")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	requiresCode := user.UserRole != "student"
	message := "Password reset allowed. Please enter your new password."
	if requiresCode {
		code := authservice.GenerateRecoveryCode()
		expires := time.Now().Add(resetCodeTTL)
		if err := h.DB.Model(&usermodel.User{}).
			Where("user_id = ?", user.UserID).
			Updates(map[string]any{
				"user_password_reset_code":    code,
				"user_password_reset_expires": expires,
			}).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate reset code")
		}
		message = "Recovery code generated. Please contact admin for the code."
	}

	return helper.JsonOK(c, message, fiber.Map{
		"requires_code": requiresCode,
		"user_id":       user.UserID,
	})
}

/* ==============================
   RESET PASSWORD  POST /api/auth/reset-password  (public)
============================== */

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req authdto.ResetPasswordDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	userID, _ := uuid.Parse(req.UserID)
	var user usermodel.User
	if err := h.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Invalid reset request")
	}

	if user.UserRole != "student" {
		if req.ResetCode == "" || user.UserPasswordResetCode == nil || *user.UserPasswordResetCode != req.ResetCode {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid or expired reset code")
		}
		if user.UserPasswordResetExpires == nil || user.UserPasswordResetExpires.Before(time.Now()) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Reset code has expired. Please request a new one.")
		}
	}

	hash, err := authservice.HashPassword(req.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process password")
	}
	if err := h.DB.Model(&usermodel.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"user_password":               hash,
			"user_password_reset_code":    nil,
			"user_password_reset_expires": nil,
		}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reset password")
	}

	return helper.JsonOK(c, "Password reset successful. Please login with your new password.", nil)
}

/* ==============================
   UPDATE PASSWORD  PUT /api/auth/update-password
============================== */

func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var req authdto.UpdatePasswordDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	if !authservice.CheckPassword(user.UserPassword, req.CurrentPassword) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password is incorrect")
	}

	hash, err := authservice.HashPassword(req.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process password")
	}
	if err := h.DB.Model(&usermodel.User{}).
		Where("user_id = ?", user.UserID).
		UpdateColumn("user_password", hash).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}

	return h.sendToken(c, user, fiber.StatusOK, "Password updated successfully")
}
