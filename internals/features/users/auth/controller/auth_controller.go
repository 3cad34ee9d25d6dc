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
	authdto "github.com/Davie-07/school-management-system/internals/features/users/auth/dto"
	authmodel "github.com/Davie-07/school-management-system/internals/features/users/auth/model"
	authservice "github.com/Davie-07/school-management-system/internals/features/users/auth/service"
	usermodel "github.com/Davie-07/school-management-system/internals/features/users/user/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

type AuthHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{DB: db, Validate: validator.New()}
}

/* ==============================
   REGISTER  POST /api/auth/register  (public, students only)
============================== */

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req authdto.RegisterDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	admission := strings.ToUpper(strings.TrimSpace(req.AdmissionNumber))

	var existing usermodel.User
	err := h.DB.
		Where("user_email = ? OR user_admission_number = ?", email, admission).
		First(&existing).Error
	if err == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "User with this email or admission number already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing users")
	}

	courseID, _ := uuid.Parse(req.CourseID)
	levelID, _ := uuid.Parse(req.LevelID)

	var course coursemodel.Course
	if err := h.DB.First(&course, "course_id = ?", courseID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course selected")
	}
	var level coursemodel.Level
	if err := h.DB.First(&level, "level_id = ? AND level_course_id = ?", levelID, courseID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid level selected")
	}

	hash, err := authservice.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process password")
	}

	user := usermodel.User{
		UserFirstName:       req.FirstName,
		UserMiddleName:      req.MiddleName,
		UserLastName:        req.LastName,
		UserEmail:           email,
		UserPassword:        hash,
		UserRole:            "student",
		UserAdmissionNumber: &admission,
		UserCourseID:        &courseID,
		UserLevelID:         &levelID,
		UserPhoneNumber:     req.PhoneNumber,
		UserAddress:         req.Address,
		UserDateOfBirth:     req.DateOfBirth,
		UserGender:          req.Gender,
		UserTermsAccepted:   req.TermsAccepted,
		UserStatus:          usermodel.UserStatusActive,
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Model(&coursemodel.Course{}).
			Where("course_id = ?", courseID).
			UpdateColumn("course_current_enrollment", gorm.Expr("course_current_enrollment + 1")).Error
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to register user")
	}

	return h.sendToken(c, &user, fiber.StatusCreated, "Registration successful")
}

/* ==============================
   LOGIN  POST /api/auth/login
   Identifier may be an email, an admission number or a staff account id.
============================== */

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req authdto.LoginDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	identifier := strings.TrimSpace(req.Identifier)
	var user usermodel.User
	err := h.DB.
		Where("user_email = ? OR user_admission_number = ? OR user_account_id = ?",
			strings.ToLower(identifier), strings.ToUpper(identifier), identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}

	if !authservice.CheckPassword(user.UserPassword, req.Password) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.IsActive() {
		return helper.JsonError(c, fiber.StatusForbidden,
			"Your account has been suspended. Please contact administration.")
	}

	now := time.Now()
	_ = h.DB.Model(&usermodel.User{}).
		Where("user_id = ?", user.UserID).
		UpdateColumn("user_last_login", now).Error

	return h.sendToken(c, &user, fiber.StatusOK, "Login successful")
}

/* ==============================
   LOGOUT  POST /api/auth/logout
   The presented token goes on the blacklist until its natural expiry.
============================== */

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := ""
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		token = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	} else if cookie := c.Cookies("token"); cookie != "" {
		token = cookie
	}
	if token != "" {
		entry := authmodel.TokenBlacklist{
			TokenBlacklistToken:     token,
			TokenBlacklistExpiredAt: time.Now().Add(7 * 24 * time.Hour),
		}
		_ = h.DB.Create(&entry).Error
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "none",
		Expires:  time.Now().Add(10 * time.Second),
		HTTPOnly: true,
	})
	return helper.JsonOK(c, "Logged out successfully", nil)
}

/* ==============================
   ME  GET /api/auth/me
============================== */

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return helper.JsonOK(c, "Current user fetched", user)
}

/* ==============================
   shared
============================== */

func (h *AuthHandler) sendToken(c *fiber.Ctx, user *usermodel.User, status int, message string) error {
	token, expiresAt, err := authservice.IssueToken(user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data": authdto.TokenResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			User:      user,
		},
	})
}
