package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Davie-07/school-management-system/internals/constants"
	usercontroller "github.com/Davie-07/school-management-system/internals/features/users/user/controller"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

/* ==============================
   USER ROUTES
   Base: /api/users
============================== */

func UserRoutes(r fiber.Router, db *gorm.DB) {
	h := usercontroller.NewUserHandler(db)

	grp := r.Group("/users")

	adminOnly := authmw.OnlyRoles("Only admins can manage users", constants.RoleAdmin)
	creators := authmw.OnlyRoles("Only admins and teachers can create accounts", constants.RoleAdmin, constants.RoleTeacher)

	grp.Get("/", adminOnly, h.List)
	grp.Get("/admin/recovery-codes", adminOnly, h.RecoveryCodes)
	grp.Post("/", creators, h.Create)

	grp.Get("/:id", h.GetByID)
	grp.Put("/:id", h.Update)
	grp.Delete("/:id", adminOnly, h.Delete)
	grp.Put("/:id/status", adminOnly, h.UpdateStatus)
}
