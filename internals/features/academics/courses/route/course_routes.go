package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Davie-07/school-management-system/internals/constants"
	coursecontroller "github.com/Davie-07/school-management-system/internals/features/academics/courses/controller"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

// CourseRoutes: reads for every authenticated role, writes admin only.
func CourseRoutes(r fiber.Router, db *gorm.DB) {
	h := coursecontroller.NewCourseHandler(db)

	grp := r.Group("/courses")

	grp.Get("/", h.List)
	grp.Get("/:id", h.GetByID)

	adminOnly := authmw.OnlyRoles("Only admins can manage courses", constants.RoleAdmin)
	grp.Post("/", adminOnly, h.Create)
	grp.Put("/:id", adminOnly, h.Update)
	grp.Delete("/:id", adminOnly, h.Delete)
	grp.Post("/:id/levels", adminOnly, h.CreateLevel)
}
