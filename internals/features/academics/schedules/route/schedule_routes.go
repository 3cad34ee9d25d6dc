package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Davie-07/school-management-system/internals/constants"
	schedulecontroller "github.com/Davie-07/school-management-system/internals/features/academics/schedules/controller"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

/* ==============================
   SCHEDULE ROUTES
   Base: /api/schedules
============================== */

func ScheduleRoutes(r fiber.Router, db *gorm.DB) {
	h := schedulecontroller.NewScheduleHandler(db)

	grp := r.Group("/schedules")

	planners := authmw.OnlyRoles("Only teachers and admins can manage schedules", constants.RoleTeacher, constants.RoleAdmin)
	teacherOnly := authmw.OnlyRoles("Only teachers can mark attendance", constants.RoleTeacher)

	grp.Get("/", h.List)
	grp.Get("/timetable", h.Timetable)
	grp.Get("/:id", h.GetByID)

	grp.Post("/", planners, h.Create)
	grp.Put("/:id", planners, h.Update)
	grp.Delete("/:id", planners, h.Delete)
	grp.Post("/:id/cancel", planners, h.Cancel)

	grp.Post("/:id/attendance", teacherOnly, h.MarkAttendance)
}
