package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Davie-07/school-management-system/internals/constants"
	announcementdto "github.com/Davie-07/school-management-system/internals/features/broadcast/announcements/dto"
	announcementmodel "github.com/Davie-07/school-management-system/internals/features/broadcast/announcements/model"
	announcementservice "github.com/Davie-07/school-management-system/internals/features/broadcast/announcements/service"
	usermodel "github.com/Davie-07/school-management-system/internals/features/users/user/model"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

// listCap bounds how many delivered announcements a single list call returns.
const listCap = 50

type AnnouncementHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAnnouncementHandler(db *gorm.DB) *AnnouncementHandler {
	return &AnnouncementHandler{DB: db, Validate: validator.New()}
}

/* ==============================
   LIST  GET /api/announcements
   Audience-filtered feed, newest first.
============================== */

func (h *AnnouncementHandler) List(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	status := c.Query("status", string(announcementmodel.AnnouncementPublished))

	tx := h.DB.Model(&announcementmodel.Announcement{}).
		Where("announcement_status = ?", status).
		Where("announcement_valid_until IS NULL OR announcement_valid_until >= ?", time.Now())
	if priority := c.Query("priority"); priority != "" {
		tx = tx.Where("announcement_priority = ?", priority)
	}

	var candidates []announcementmodel.Announcement
	if err := tx.Order("announcement_created_at DESC").Find(&candidates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch announcements")
	}

	recipient := recipientFor(user)
	delivered := make([]announcementmodel.Announcement, 0, listCap)
	for i := range candidates {
		if announcementservice.Matches(candidates[i].AnnouncementAudience.Data(), recipient) {
			delivered = append(delivered, candidates[i])
			if len(delivered) == listCap {
				break
			}
		}
	}

	return helper.JsonOK(c, "Announcements fetched successfully", fiber.Map{
		"count":         len(delivered),
		"announcements": delivered,
	})
}

/* ==============================
   DETAIL  GET /api/announcements/:id
   Reading marks the receipt.
============================== */

func (h *AnnouncementHandler) GetByID(c *fiber.Ctx) error {
	ann, res := h.loadAnnouncement(c)
	if ann == nil {
		return res
	}

	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	receipts := []announcementmodel.ReadReceipt(ann.AnnouncementReadBy)
	if announcementservice.MarkRead(&receipts, user.UserID, time.Now()) {
		ann.AnnouncementReadBy = receipts
		if err := h.DB.Save(ann).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record read receipt")
		}
	}

	return helper.JsonOK(c, "Announcement fetched successfully", ann)
}

/* ==============================
   CREATE  POST /api/announcements  (teacher, admin)
============================== */

func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req announcementdto.AnnouncementCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if user.UserRole == constants.RoleTeacher && req.Audience != nil && len(req.Audience.Roles) > 0 {
		targetsStudents := false
		for _, role := range req.Audience.Roles {
			if role == constants.RoleStudent {
				targetsStudents = true
				break
			}
		}
		if !targetsStudents {
			return helper.JsonError(c, fiber.StatusForbidden, "Teachers can only send announcements to students")
		}
	}

	ann := req.ToModel(user.UserID)
	if err := h.DB.Create(&ann).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create announcement")
	}
	return helper.JsonCreated(c, "Announcement created successfully", ann)
}

/* ==============================
   UPDATE  PUT /api/announcements/:id  (creator, admin)
============================== */

func (h *AnnouncementHandler) Update(c *fiber.Ctx) error {
	ann, res := h.loadAnnouncement(c)
	if ann == nil {
		return res
	}
	if ok, resp := h.requireCreator(c, ann, "Not authorized to update this announcement"); !ok {
		return resp
	}

	var req announcementdto.AnnouncementUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	announcementdto.ApplyAnnouncementUpdate(ann, &req)
	if err := h.DB.Save(ann).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update announcement")
	}
	return helper.JsonUpdated(c, "Announcement updated successfully", ann)
}

/* ==============================
   DELETE  DELETE /api/announcements/:id  (creator, admin)
============================== */

func (h *AnnouncementHandler) Delete(c *fiber.Ctx) error {
	ann, res := h.loadAnnouncement(c)
	if ann == nil {
		return res
	}
	if ok, resp := h.requireCreator(c, ann, "Not authorized to delete this announcement"); !ok {
		return resp
	}

	if err := h.DB.Delete(ann).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete announcement")
	}
	return helper.JsonDeleted(c, "Announcement deleted successfully", fiber.Map{"announcement_id": ann.AnnouncementID})
}

/* ==============================
   ARCHIVE  PUT /api/announcements/:id/archive  (creator, admin)
============================== */

func (h *AnnouncementHandler) Archive(c *fiber.Ctx) error {
	ann, res := h.loadAnnouncement(c)
	if ann == nil {
		return res
	}
	if ok, resp := h.requireCreator(c, ann, "Not authorized to archive this announcement"); !ok {
		return resp
	}

	ann.AnnouncementStatus = announcementmodel.AnnouncementArchived
	if err := h.DB.Save(ann).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to archive announcement")
	}
	return helper.JsonUpdated(c, "Announcement archived successfully", ann)
}

/* ==============================
   UNREAD COUNT  GET /api/announcements/unread/count
============================== */

func (h *AnnouncementHandler) UnreadCount(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var candidates []announcementmodel.Announcement
	if err := h.DB.
		Where("announcement_status = ?", announcementmodel.AnnouncementPublished).
		Where("announcement_valid_until IS NULL OR announcement_valid_until >= ?", time.Now()).
		Find(&candidates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch unread count")
	}

	recipient := recipientFor(user)
	count := 0
	for i := range candidates {
		if !announcementservice.Matches(candidates[i].AnnouncementAudience.Data(), recipient) {
			continue
		}
		if !announcementservice.HasRead(candidates[i].AnnouncementReadBy, user.UserID) {
			count++
		}
	}

	return helper.JsonOK(c, "Unread count fetched successfully", fiber.Map{"unread_count": count})
}

/* ==============================
   SHARED
============================== */

func recipientFor(user *usermodel.User) announcementservice.Recipient {
	return announcementservice.Recipient{
		UserID:   user.UserID,
		Role:     user.UserRole,
		CourseID: user.UserCourseID,
		LevelID:  user.UserLevelID,
	}
}

// loadAnnouncement resolves the :id path param. On failure the error
// response is already written and the returned record is nil.
func (h *AnnouncementHandler) loadAnnouncement(c *fiber.Ctx) (*announcementmodel.Announcement, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid announcement id")
	}

	var ann announcementmodel.Announcement
	if err := h.DB.First(&ann, "announcement_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Announcement not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch announcement")
	}
	return &ann, nil
}

// requireCreator: the author or an admin. When it fails the response has
// been written and ok is false.
func (h *AnnouncementHandler) requireCreator(c *fiber.Ctx, ann *announcementmodel.Announcement, message string) (bool, error) {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return false, helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if user.UserRole != constants.RoleAdmin && user.UserID != ann.AnnouncementCreatedBy {
		return false, helper.JsonError(c, fiber.StatusForbidden, message)
	}
	return true, nil
}
