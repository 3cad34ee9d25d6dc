package controller

import (
	"errors"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Davie-07/school-management-system/internals/configs"
	authdto "github.com/Davie-07/school-management-system/internals/features/users/auth/dto"
	usermodel "github.com/Davie-07/school-management-system/internals/features/users/user/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
)

/* ==============================
   GOOGLE SIGN-IN  POST /api/auth/google  (public)
   Accounts are provisioned by the school; Google sign-in only matches an
   existing email, it never creates users.
============================== */

func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	var req authdto.GoogleLoginDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}

	email := strings.ToLower(strings.TrimSpace(claimSet.Email))
	var user usermodel.User
	if err := h.DB.First(&user, "user_email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No account found for this Google email")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}
	if !user.IsActive() {
		return helper.JsonError(c, fiber.StatusForbidden,
			"Your account has been suspended. Please contact administration.")
	}

	return h.sendToken(c, &user, fiber.StatusOK, "Login successful")
}
