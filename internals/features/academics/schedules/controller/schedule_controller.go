package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	scheduledto "github.com/Davie-07/school-management-system/internals/features/academics/schedules/dto"
	schedulemodel "github.com/Davie-07/school-management-system/internals/features/academics/schedules/model"
	scheduleservice "github.com/Davie-07/school-management-system/internals/features/academics/schedules/service"
	helper "github.com/Davie-07/school-management-system/internals/helpers"
	"github.com/Davie-07/school-management-system/internals/helpers/authz"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

type ScheduleHandler struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{DB: db, Validate: validator.New()}
}

/* ==============================
   LIST  GET /api/schedules
   Students see their course/level, teachers their own sessions.
============================== */

func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	tx := h.DB.Model(&schedulemodel.Schedule{})
	tx = scopeForRole(tx, user.UserRole, user.UserID, user.UserCourseID, user.UserLevelID)

	if teacher := c.Query("teacher"); teacher != "" {
		tx = tx.Where("schedule_teacher_id = ?", teacher)
	}
	if course := c.Query("course"); course != "" {
		tx = tx.Where("schedule_course_id = ?", course)
	}
	if level := c.Query("level"); level != "" {
		tx = tx.Where("schedule_level_id = ?", level)
	}
	if status := c.Query("status"); status != "" {
		tx = tx.Where("schedule_status = ?", status)
	}
	if sessionType := c.Query("type"); sessionType != "" {
		tx = tx.Where("schedule_type = ?", sessionType)
	}
	if date := strings.TrimSpace(c.Query("date")); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		}
		tx = tx.Where("schedule_date >= ? AND schedule_date < ?", day, day.AddDate(0, 0, 1))
	}

	var schedules []schedulemodel.Schedule
	if err := tx.
		Order("schedule_date ASC, schedule_start_time ASC").
		Find(&schedules).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch schedules")
	}

	return helper.JsonOK(c, "Schedules fetched successfully", fiber.Map{
		"count":     len(schedules),
		"schedules": schedules,
	})
}

/* ==============================
   TIMETABLE  GET /api/schedules/timetable?week=YYYY-MM-DD
   Monday to Friday of the requested week, bucketed by day.
============================== */

func (h *ScheduleHandler) Timetable(c *fiber.Ctx) error {
	user, err := authmw.CurrentUser(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	anchor := time.Now()
	if week := strings.TrimSpace(c.Query("week")); week != "" {
		parsed, err := time.Parse("2006-01-02", week)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid week, expected YYYY-MM-DD")
		}
		anchor = parsed
	}
	start := scheduleservice.WeekStart(anchor)
	end := start.AddDate(0, 0, 5)

	tx := h.DB.Model(&schedulemodel.Schedule{}).
		Where("schedule_date >= ? AND schedule_date < ?", start, end)
	tx = scopeForRole(tx, user.UserRole, user.UserID, user.UserCourseID, user.UserLevelID)

	var schedules []schedulemodel.Schedule
	if err := tx.
		Order("schedule_date ASC, schedule_start_time ASC").
		Find(&schedules).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch timetable")
	}

	return helper.JsonOK(c, "Timetable fetched successfully", fiber.Map{
		"week":      start.Format("2006-01-02"),
		"timetable": scheduleservice.BuildTimetable(schedules),
	})
}

/* ==============================
   DETAIL  GET /api/schedules/:id
============================== */

func (h *ScheduleHandler) GetByID(c *fiber.Ctx) error {
	sch, res := h.loadSchedule(c)
	if sch == nil {
		return res
	}
	return helper.JsonOK(c, "Schedule fetched successfully", sch)
}

/* ==============================
   CREATE  POST /api/schedules  (teacher, admin)
============================== */

func (h *ScheduleHandler) Create(c *fiber.Ctx) error {
	actor, err := authmw.ActorFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req scheduledto.ScheduleCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	courseID, _ := uuid.Parse(req.CourseID)
	if !authz.CanMutate(actor, authz.Resource{CourseID: &courseID}) {
		return helper.JsonError(c, fiber.StatusForbidden, "You are not assigned to this course")
	}

	teacherID := actor.ID
	if actor.Role == "admin" && req.TeacherID != nil {
		teacherID, _ = uuid.Parse(*req.TeacherID)
	}

	sch := req.ToModel(teacherID)

	conflicted, err := h.hasConflict(&sch)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check schedule conflicts")
	}
	if conflicted {
		return helper.JsonError(c, fiber.StatusBadRequest, "Schedule conflict detected. Teacher or venue is already booked at this time.")
	}

	if err := h.DB.Create(&sch).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create schedule")
	}
	return helper.JsonCreated(c, "Schedule created successfully", sch)
}

// hasConflict scans same-day sessions sharing the teacher or the venue.
func (h *ScheduleHandler) hasConflict(candidate *schedulemodel.Schedule) (bool, error) {
	day := candidate.ScheduleDate
	var sameDay []schedulemodel.Schedule
	err := h.DB.
		Where("schedule_date >= ? AND schedule_date < ?",
			time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()),
			time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location()).AddDate(0, 0, 1)).
		Where("schedule_teacher_id = ? OR schedule_venue = ?", candidate.ScheduleTeacherID, candidate.ScheduleVenue).
		Find(&sameDay).Error
	if err != nil {
		return false, err
	}
	for i := range sameDay {
		if sameDay[i].ScheduleID == candidate.ScheduleID {
			continue
		}
		if scheduleservice.ConflictsWith(candidate, &sameDay[i]) {
			return true, nil
		}
	}
	return false, nil
}

/* ==============================
   UPDATE  PUT /api/schedules/:id  (owner teacher, admin)
============================== */

func (h *ScheduleHandler) Update(c *fiber.Ctx) error {
	sch, res := h.loadSchedule(c)
	if sch == nil {
		return res
	}
	if ok, resp := h.requireOwnership(c, sch, "Not authorized to update this schedule"); !ok {
		return resp
	}

	var req scheduledto.ScheduleUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	scheduledto.ApplyScheduleUpdate(sch, &req)

	if req.Date != nil || req.StartTime != nil || req.EndTime != nil || req.Venue != nil {
		conflicted, err := h.hasConflict(sch)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check schedule conflicts")
		}
		if conflicted {
			return helper.JsonError(c, fiber.StatusBadRequest, "Schedule conflict detected. Teacher or venue is already booked at this time.")
		}
	}

	if err := h.DB.Save(sch).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update schedule")
	}
	return helper.JsonUpdated(c, "Schedule updated successfully", sch)
}

/* ==============================
   DELETE  DELETE /api/schedules/:id  (owner teacher, admin)
============================== */

func (h *ScheduleHandler) Delete(c *fiber.Ctx) error {
	sch, res := h.loadSchedule(c)
	if sch == nil {
		return res
	}
	if ok, resp := h.requireOwnership(c, sch, "Not authorized to delete this schedule"); !ok {
		return resp
	}

	if err := h.DB.Delete(sch).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete schedule")
	}
	return helper.JsonDeleted(c, "Schedule deleted successfully", fiber.Map{"schedule_id": sch.ScheduleID})
}

/* ==============================
   ATTENDANCE  POST /api/schedules/:id/attendance  (owner teacher)
============================== */

func (h *ScheduleHandler) MarkAttendance(c *fiber.Ctx) error {
	sch, res := h.loadSchedule(c)
	if sch == nil {
		return res
	}
	if ok, resp := h.requireOwnership(c, sch, "Not authorized to mark attendance for this schedule"); !ok {
		return resp
	}

	var req scheduledto.AttendanceDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	studentID, _ := uuid.Parse(req.StudentID)
	scheduleservice.MarkAttendance(sch, studentID, schedulemodel.AttendanceStatus(req.Status), time.Now())

	if err := h.DB.Save(sch).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark attendance")
	}
	return helper.JsonUpdated(c, "Attendance marked successfully", sch)
}

/* ==============================
   CANCEL  POST /api/schedules/:id/cancel  (owner teacher, admin)
============================== */

func (h *ScheduleHandler) Cancel(c *fiber.Ctx) error {
	sch, res := h.loadSchedule(c)
	if sch == nil {
		return res
	}
	if ok, resp := h.requireOwnership(c, sch, "Not authorized to cancel this schedule"); !ok {
		return resp
	}

	var req scheduledto.CancelDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	sch.ScheduleStatus = schedulemodel.ScheduleStatusCancelled
	sch.ScheduleCancelReason = &req.Reason

	if err := h.DB.Save(sch).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to cancel schedule")
	}
	return helper.JsonUpdated(c, "Schedule cancelled successfully", sch)
}

/* ==============================
   SHARED
============================== */

// scopeForRole narrows the query to what the caller may see.
func scopeForRole(tx *gorm.DB, role string, userID uuid.UUID, courseID, levelID *uuid.UUID) *gorm.DB {
	switch role {
	case "teacher":
		return tx.Where("schedule_teacher_id = ?", userID)
	case "student":
		if courseID != nil {
			tx = tx.Where("schedule_course_id = ?", *courseID)
		}
		if levelID != nil {
			tx = tx.Where("schedule_level_id = ?", *levelID)
		}
		return tx
	default:
		return tx
	}
}

// loadSchedule resolves the :id path param. On failure the error response is
// already written and the returned schedule is nil.
func (h *ScheduleHandler) loadSchedule(c *fiber.Ctx) (*schedulemodel.Schedule, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid schedule id")
	}

	var sch schedulemodel.Schedule
	if err := h.DB.First(&sch, "schedule_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Schedule not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch schedule")
	}
	return &sch, nil
}

// requireOwnership applies the shared mutation rule. When it fails the
// response has been written and ok is false.
func (h *ScheduleHandler) requireOwnership(c *fiber.Ctx, sch *schedulemodel.Schedule, message string) (bool, error) {
	actor, err := authmw.ActorFromLocals(c)
	if err != nil {
		return false, helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	res := authz.Resource{
		OwnerTeacherID: &sch.ScheduleTeacherID,
		CourseID:       &sch.ScheduleCourseID,
	}
	if !authz.CanMutate(actor, res) {
		return false, helper.JsonError(c, fiber.StatusForbidden, message)
	}
	return true, nil
}
