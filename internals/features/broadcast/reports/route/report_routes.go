package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Davie-07/school-management-system/internals/constants"
	reportcontroller "github.com/Davie-07/school-management-system/internals/features/broadcast/reports/controller"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

/* ==============================
   REPORT ROUTES
   Base: /api/reports
============================== */

func ReportRoutes(r fiber.Router, db *gorm.DB) {
	h := reportcontroller.NewReportHandler(db)

	grp := r.Group("/reports")

	adminOnly := authmw.OnlyRoles("Only admins can view report statistics", constants.RoleAdmin)

	grp.Get("/", h.List)
	grp.Get("/admin/stats", adminOnly, h.Stats)
	grp.Get("/unread/count", h.UnreadCount)
	grp.Get("/:id", h.GetByID)

	grp.Post("/", h.Create)
	grp.Put("/:id/respond", h.Respond)
	grp.Put("/:id/status", h.UpdateStatus)
	grp.Delete("/:id", h.Delete)
}
