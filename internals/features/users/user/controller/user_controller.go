package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	coursemodel "github.com/Davie-07/school-management-system/internals/features/academics/courses/model"
	authservice "github.com/Davie-07/school-management-system/internals/features/users/auth/service"
	userdto "github.com/Davie-07/school-management-system/internals/features/users/user/dto"
	usermodel "github.com/Davie-07/school-management-system/internals/features/users/user/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

type UserHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db, Validate: validator.New()}
}

/* ==============================
   LIST  GET /api/users  (admin)
============================== */

func (h *UserHandler) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	tx := h.DB.Model(&usermodel.User{})

	if role := strings.TrimSpace(c.Query("role")); role != "" {
		tx = tx.Where("user_role = ?", role)
	}
	if course := strings.TrimSpace(c.Query("course")); course != "" {
		tx = tx.Where("user_course_id = ?", course)
	}
	if level := strings.TrimSpace(c.Query("level")); level != "" {
		tx = tx.Where("user_level_id = ?", level)
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		tx = tx.Where("user_status = ?", status)
	}
	if search := helper.NormalizeSearchTerm(c.Query("search")); search != "" {
		like := "%" + search + "%"
		tx = tx.Where(
			"user_first_name ILIKE ? OR user_last_name ILIKE ? OR user_email ILIKE ? OR user_admission_number ILIKE ? OR user_account_id ILIKE ?",
			like, like, like, like, like,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []usermodel.User
	if err := tx.
		Order("user_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	return helper.JsonList(c, "Users fetched successfully", users, helper.BuildPagination(total, p))
}

/* ==============================
   DETAIL  GET /api/users/:id  (admin or self)
============================== */

func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, res := h.loadUser(c)
	if user == nil {
		return res
	}

	actor, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if actor.UserRole != "admin" && actor.UserID != user.UserID {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized to view this user")
	}

	return helper.JsonOK(c, "User fetched successfully", user)
}

/* ==============================
   CREATE  POST /api/users  (admin; teachers may create students)
============================== */

func (h *UserHandler) Create(c *fiber.Ctx) error {
	actor, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req userdto.UserCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if actor.UserRole == "teacher" && req.Role != "student" {
		return helper.JsonError(c, fiber.StatusForbidden, "Teachers can only create student accounts")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing usermodel.User
	err = h.DB.Where("user_email = ?", email).First(&existing).Error
	if err == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "User with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check existing users")
	}

	password := req.Password
	if password == "" {
		password = authservice.TempPassword
	}
	hash, err := authservice.HashPassword(password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to process password")
	}

	user := usermodel.User{
		UserFirstName:     req.FirstName,
		UserMiddleName:    req.MiddleName,
		UserLastName:      req.LastName,
		UserEmail:         email,
		UserPassword:      hash,
		UserRole:          req.Role,
		UserPhoneNumber:   req.PhoneNumber,
		UserAddress:       req.Address,
		UserDateOfBirth:   req.DateOfBirth,
		UserGender:        req.Gender,
		UserStatus:        usermodel.UserStatusActive,
		UserTermsAccepted: true,
		UserCreatedBy:     &actor.UserID,
	}

	if req.Role == "student" {
		if req.AdmissionNumber != nil {
			adm := strings.ToUpper(strings.TrimSpace(*req.AdmissionNumber))
			user.UserAdmissionNumber = &adm
		}
		if req.CourseID != nil {
			id, _ := uuid.Parse(*req.CourseID)
			user.UserCourseID = &id
		}
		if req.LevelID != nil {
			id, _ := uuid.Parse(*req.LevelID)
			user.UserLevelID = &id
		}
	} else {
		accountID, err := h.uniqueAccountID()
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate account ID")
		}
		user.UserAccountID = &accountID
	}
	if req.Role == "teacher" && len(req.AssignedCourseIDs) > 0 {
		user.UserAssignedCourseIDs = pq.StringArray(req.AssignedCourseIDs)
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if user.UserRole == "student" && user.UserCourseID != nil {
			return tx.Model(&coursemodel.Course{}).
				Where("course_id = ?", *user.UserCourseID).
				UpdateColumn("course_current_enrollment", gorm.Expr("course_current_enrollment + 1")).Error
		}
		return nil
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.JsonCreated(c, "User created successfully", user)
}

// uniqueAccountID retries until the generated 6-digit id is unused.
func (h *UserHandler) uniqueAccountID() (string, error) {
	for {
		id := authservice.GenerateAccountID()
		var count int64
		if err := h.DB.Model(&usermodel.User{}).
			Where("user_account_id = ?", id).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return id, nil
		}
	}
}

/* ==============================
   UPDATE  PUT /api/users/:id  (admin or self; role change admin only)
============================== */

func (h *UserHandler) Update(c *fiber.Ctx) error {
	user, res := h.loadUser(c)
	if user == nil {
		return res
	}

	actor, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req userdto.UserUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if req.Role != nil && actor.UserRole != "admin" {
		return helper.JsonError(c, fiber.StatusForbidden, "Only admin can change user roles")
	}
	if actor.UserRole != "admin" && actor.UserID != user.UserID {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized to update this user")
	}

	applyUserUpdate(user, &req)

	if err := h.DB.Save(user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	return helper.JsonUpdated(c, "User updated successfully", user)
}

func applyUserUpdate(user *usermodel.User, req *userdto.UserUpdateDTO) {
	if req.FirstName != nil {
		user.UserFirstName = *req.FirstName
	}
	if req.MiddleName != nil {
		user.UserMiddleName = req.MiddleName
	}
	if req.LastName != nil {
		user.UserLastName = *req.LastName
	}
	if req.Email != nil {
		user.UserEmail = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		user.UserRole = *req.Role
	}
	if req.CourseID != nil {
		if id, err := uuid.Parse(*req.CourseID); err == nil {
			user.UserCourseID = &id
		}
	}
	if req.LevelID != nil {
		if id, err := uuid.Parse(*req.LevelID); err == nil {
			user.UserLevelID = &id
		}
	}
	if req.AssignedCourseIDs != nil {
		user.UserAssignedCourseIDs = pq.StringArray(req.AssignedCourseIDs)
	}
	if req.PhoneNumber != nil {
		user.UserPhoneNumber = req.PhoneNumber
	}
	if req.Address != nil {
		user.UserAddress = req.Address
	}
	if req.DateOfBirth != nil {
		user.UserDateOfBirth = req.DateOfBirth
	}
	if req.Gender != nil {
		user.UserGender = req.Gender
	}
}

/* ==============================
   DELETE  DELETE /api/users/:id  (admin)
============================== */

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	user, res := h.loadUser(c)
	if user == nil {
		return res
	}

	if user.UserRole == "admin" {
		var adminCount int64
		if err := h.DB.Model(&usermodel.User{}).
			Where("user_role = ?", "admin").
			Count(&adminCount).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count admin accounts")
		}
		if adminCount <= 1 {
			return helper.JsonError(c, fiber.StatusBadRequest, "Cannot delete the last admin account")
		}
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(user).Error; err != nil {
			return err
		}
		if user.UserRole == "student" && user.UserCourseID != nil {
			return tx.Model(&coursemodel.Course{}).
				Where("course_id = ? AND course_current_enrollment > 0", *user.UserCourseID).
				UpdateColumn("course_current_enrollment", gorm.Expr("course_current_enrollment - 1")).Error
		}
		return nil
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete user")
	}

	return helper.JsonDeleted(c, "User deleted successfully", fiber.Map{"user_id": user.UserID})
}

/* ==============================
   STATUS  PUT /api/users/:id/status  (admin)
============================== */

func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	var req userdto.UserStatusDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid status")
	}

	user, res := h.loadUser(c)
	if user == nil {
		return res
	}

	user.UserStatus = usermodel.UserStatus(req.Status)
	if err := h.DB.Save(user).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user status")
	}

	message := "User activated successfully"
	if user.UserStatus == usermodel.UserStatusSuspended {
		message = "User suspended successfully"
	}
	return helper.JsonUpdated(c, message, user)
}

/* ==============================
   RECOVERY CODES  GET /api/users/admin/recovery-codes  (admin)
============================== */

func (h *UserHandler) RecoveryCodes(c *fiber.Ctx) error {
	var users []usermodel.User
	if err := h.DB.
		Where("user_password_reset_code IS NOT NULL AND user_password_reset_expires > ?", time.Now()).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch recovery codes")
	}

	entries := make([]userdto.RecoveryCodeEntry, 0, len(users))
	for i := range users {
		u := &users[i]
		entries = append(entries, userdto.RecoveryCodeEntry{
			UserID:    u.UserID,
			FirstName: u.UserFirstName,
			LastName:  u.UserLastName,
			Email:     u.UserEmail,
			AccountID: u.UserAccountID,
			ResetCode: *u.UserPasswordResetCode,
			ExpiresAt: *u.UserPasswordResetExpires,
		})
	}

	return helper.JsonOK(c, "Recovery codes fetched successfully", fiber.Map{
		"count": len(entries),
		"codes": entries,
	})
}

/* ==============================
   SHARED
============================== */

// loadUser resolves the :id path param. On failure the error response is
// already written and the returned user is nil.
func (h *UserHandler) loadUser(c *fiber.Ctx) (*usermodel.User, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var user usermodel.User
	if err := h.DB.First(&user, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch user")
	}
	return &user, nil
}
