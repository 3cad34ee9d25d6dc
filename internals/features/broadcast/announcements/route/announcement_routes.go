package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Davie-07/school-management-system/internals/constants"
	announcementcontroller "github.com/Davie-07/school-management-system/internals/features/broadcast/announcements/controller"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

/* ==============================
   ANNOUNCEMENT ROUTES
   Base: /api/announcements
============================== */

func AnnouncementRoutes(r fiber.Router, db *gorm.DB) {
	h := announcementcontroller.NewAnnouncementHandler(db)

	grp := r.Group("/announcements")

	broadcasters := authmw.OnlyRoles("Only teachers and admins can create announcements", constants.RoleTeacher, constants.RoleAdmin)

	grp.Get("/", h.List)
	grp.Get("/unread/count", h.UnreadCount)
	grp.Get("/:id", h.GetByID)

	grp.Post("/", broadcasters, h.Create)
	grp.Put("/:id", h.Update)
	grp.Put("/:id/archive", h.Archive)
	grp.Delete("/:id", h.Delete)
}
