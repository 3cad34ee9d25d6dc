package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Davie-07/school-management-system/internals/constants"
	announcementmodel "github.com/Davie-07/school-management-system/internals/features/broadcast/announcements/model"
	announcementservice "github.com/Davie-07/school-management-system/internals/features/broadcast/announcements/service"
	reportdto "github.com/Davie-07/school-management-system/internals/features/broadcast/reports/dto"
	reportmodel "github.com/Davie-07/school-management-system/internals/features/broadcast/reports/model"
	reportservice "github.com/Davie-07/school-management-system/internals/features/broadcast/reports/service"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

type ReportHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db, Validate: validator.New()}
}

/* ==============================
   LIST  GET /api/reports
   Students see their own, teachers their dashboard plus direct targets,
   finance the finance dashboard, admins everything.
============================== */

func (h *ReportHandler) List(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	tx := h.DB.Model(&reportmodel.Report{})

	switch user.UserRole {
	case constants.RoleStudent:
		tx = tx.Where("report_reporter_id = ?", user.UserID)
	case constants.RoleTeacher:
		tx = tx.Where("report_target_dashboard = ? OR report_target_user_id = ? OR report_reporter_id = ?",
			reportmodel.DashboardTeacher, user.UserID, user.UserID)
	case constants.RoleFinance:
		tx = tx.Where("report_target_dashboard = ?", reportmodel.DashboardFinance)
	}

	if reportType := c.Query("reportType"); reportType != "" {
		tx = tx.Where("report_type = ?", reportType)
	}
	if status := c.Query("status"); status != "" {
		tx = tx.Where("report_status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		tx = tx.Where("report_priority = ?", priority)
	}
	if dashboard := c.Query("targetDashboard"); dashboard != "" {
		tx = tx.Where("report_target_dashboard = ?", dashboard)
	}

	var reports []reportmodel.Report
	if err := tx.Order("report_created_at DESC").Find(&reports).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch reports")
	}

	return helper.JsonOK(c, "Reports fetched successfully", fiber.Map{
		"count":   len(reports),
		"reports": reports,
	})
}

/* ==============================
   DETAIL  GET /api/reports/:id
   Staff reads leave receipts; the reporter's own reads do not.
============================== */

func (h *ReportHandler) GetByID(c *fiber.Ctx) error {
	rpt, res := h.loadReport(c)
	if rpt == nil {
		return res
	}

	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if !reportservice.CanView(user.UserID, user.UserRole, rpt) {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized to view this report")
	}

	if user.UserID != rpt.ReportReporterID {
		receipts := []announcementmodel.ReadReceipt(rpt.ReportReadBy)
		if announcementservice.MarkRead(&receipts, user.UserID, time.Now()) {
			rpt.ReportReadBy = receipts
			if err := h.DB.Save(rpt).Error; err != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to record read receipt")
			}
		}
	}

	return helper.JsonOK(c, "Report fetched successfully", rpt)
}

/* ==============================
   CREATE  POST /api/reports
============================== */

func (h *ReportHandler) Create(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req reportdto.ReportCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	rpt := req.ToModel(user.UserID)
	if err := h.DB.Create(&rpt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to submit report")
	}
	return helper.JsonCreated(c, "Report submitted successfully", rpt)
}

/* ==============================
   RESPOND  PUT /api/reports/:id/respond
============================== */

func (h *ReportHandler) Respond(c *fiber.Ctx) error {
	rpt, res := h.loadReport(c)
	if rpt == nil {
		return res
	}

	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if !reportservice.CanRespond(user.UserID, user.UserRole, rpt) {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized to respond to this report")
	}

	var req reportdto.ReportRespondDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	response := datatypes.NewJSONType(reportmodel.ReportResponse{
		RespondedBy: user.UserID,
		Message:     req.Message,
		Action:      req.Action,
		RespondedAt: time.Now(),
	})
	rpt.ReportResponse = &response
	rpt.ReportStatus = reportmodel.ReportResolved
	if req.Status != "" {
		rpt.ReportStatus = reportmodel.ReportStatus(req.Status)
	}

	if err := h.DB.Save(rpt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to submit response")
	}
	return helper.JsonUpdated(c, "Response submitted successfully", rpt)
}

/* ==============================
   STATUS  PUT /api/reports/:id/status
============================== */

func (h *ReportHandler) UpdateStatus(c *fiber.Ctx) error {
	rpt, res := h.loadReport(c)
	if rpt == nil {
		return res
	}

	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if !reportservice.CanRespond(user.UserID, user.UserRole, rpt) {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized to update this report")
	}

	var req reportdto.ReportStatusDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	rpt.ReportStatus = reportmodel.ReportStatus(req.Status)
	if err := h.DB.Save(rpt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update report status")
	}
	return helper.JsonUpdated(c, "Report status updated to "+req.Status, rpt)
}

/* ==============================
   DELETE  DELETE /api/reports/:id  (reporter, admin)
============================== */

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	rpt, res := h.loadReport(c)
	if rpt == nil {
		return res
	}

	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if user.UserRole != constants.RoleAdmin && user.UserID != rpt.ReportReporterID {
		return helper.JsonError(c, fiber.StatusForbidden, "Not authorized to delete this report")
	}

	if err := h.DB.Delete(rpt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete report")
	}
	return helper.JsonDeleted(c, "Report deleted successfully", fiber.Map{"report_id": rpt.ReportID})
}

/* ==============================
   STATS  GET /api/reports/admin/stats  (admin)
============================== */

func (h *ReportHandler) Stats(c *fiber.Ctx) error {
	type bucket struct {
		Key   string
		Count int64
	}

	groupCount := func(column string) (map[string]int64, error) {
		var rows []bucket
		err := h.DB.Model(&reportmodel.Report{}).
			Select(column + " AS key, COUNT(*) AS count").
			Group(column).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		out := make(map[string]int64, len(rows))
		for _, r := range rows {
			out[r.Key] = r.Count
		}
		return out, nil
	}

	byType, err := groupCount("report_type")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch statistics")
	}
	byStatus, err := groupCount("report_status")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch statistics")
	}
	byPriority, err := groupCount("report_priority")
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch statistics")
	}

	var total int64
	for _, n := range byType {
		total += n
	}

	return helper.JsonOK(c, "Report statistics fetched successfully", fiber.Map{
		"by_type":     byType,
		"by_status":   byStatus,
		"by_priority": byPriority,
		"total":       total,
	})
}

/* ==============================
   UNREAD COUNT  GET /api/reports/unread/count
============================== */

func (h *ReportHandler) UnreadCount(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	tx := h.DB.Model(&reportmodel.Report{}).
		Where("report_status <> ?", reportmodel.ReportResolved)

	switch user.UserRole {
	case constants.RoleTeacher:
		tx = tx.Where("report_target_dashboard = ? OR report_target_user_id = ?",
			reportmodel.DashboardTeacher, user.UserID)
	case constants.RoleFinance:
		tx = tx.Where("report_target_dashboard = ?", reportmodel.DashboardFinance)
	case constants.RoleAdmin:
		// admins see the full queue
	default:
		return helper.JsonOK(c, "Unread count fetched successfully", fiber.Map{"unread_count": 0})
	}

	var pending []reportmodel.Report
	if err := tx.Find(&pending).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch unread count")
	}

	count := 0
	for i := range pending {
		if !announcementservice.HasRead(pending[i].ReportReadBy, user.UserID) {
			count++
		}
	}

	return helper.JsonOK(c, "Unread count fetched successfully", fiber.Map{"unread_count": count})
}

/* ==============================
   SHARED
============================== */

// loadReport resolves the :id path param. On failure the error response is
// already written and the returned record is nil.
func (h *ReportHandler) loadReport(c *fiber.Ctx) (*reportmodel.Report, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid report id")
	}

	var rpt reportmodel.Report
	if err := h.DB.First(&rpt, "report_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Report not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch report")
	}
	return &rpt, nil
}
