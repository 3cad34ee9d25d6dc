package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Davie-07/school-management-system/internals/constants"
	examcontroller "github.com/Davie-07/school-management-system/internals/features/academics/exams/controller"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

// ExamRoutes: reads role-scope themselves in the controller; mutations are
// for teachers and admins (ownership enforced per exam), misprint filing is
// student only.
func ExamRoutes(r fiber.Router, db *gorm.DB) {
	h := examcontroller.NewExamHandler(db)

	grp := r.Group("/exams")

	markers := authmw.OnlyRoles("Only teachers and admins can manage exams", constants.RoleTeacher, constants.RoleAdmin)
	studentOnly := authmw.OnlyRoles("Only students can report misprints", constants.RoleStudent)

	grp.Get("/", h.List)
	grp.Get("/student/:studentId", h.StudentResults)
	grp.Get("/:id", h.GetByID)

	grp.Post("/", markers, h.Create)
	grp.Put("/:id", markers, h.Update)
	grp.Post("/:id/results", markers, h.UpsertResults)
	grp.Post("/:id/publish", markers, h.Publish)

	grp.Post("/:id/report-misprint", studentOnly, h.ReportMisprint)
	grp.Put("/:examId/resolve-misprint/:misprintId", markers, h.ResolveMisprint)
}
