package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Davie-07/school-management-system/internals/features/dashboard/controller"
)

// DashboardRoutes exposes one read-only summary endpoint per role.
// Each handler rejects callers outside its role, so no route guard here.
func DashboardRoutes(r fiber.Router, db *gorm.DB) {
	h := controller.NewDashboardHandler(db)

	grp := r.Group("/dashboard")
	grp.Get("/student", h.Student)
	grp.Get("/teacher", h.Teacher)
	grp.Get("/admin", h.Admin)
	grp.Get("/finance", h.Finance)
	grp.Get("/gatepass", h.Gatepass)
}
