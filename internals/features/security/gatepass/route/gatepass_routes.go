package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Davie-07/school-management-system/internals/constants"
	gpcontroller "github.com/Davie-07/school-management-system/internals/features/security/gatepass/controller"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

// GatepassRoutes: verification belongs to gate staff and admin; receipts and
// history are readable by any authenticated role (students see their own).
func GatepassRoutes(r fiber.Router, db *gorm.DB) {
	h := gpcontroller.NewGatepassHandler(db)

	grp := r.Group("/gatepass")

	gateStaff := authmw.OnlyRoles("Only gate staff can perform verifications", constants.RoleGatepass, constants.RoleAdmin)
	statsRoles := authmw.OnlyRoles("Only gate staff, finance or admins can view statistics",
		constants.RoleGatepass, constants.RoleAdmin, constants.RoleFinance)
	studentOnly := authmw.OnlyRoles("Only students can generate security receipts", constants.RoleStudent)

	grp.Post("/verify", gateStaff, h.Verify)
	grp.Post("/use/:code", gateStaff, h.MarkUsed)
	grp.Get("/today", gateStaff, h.Today)
	grp.Get("/stats", statsRoles, h.Stats)

	grp.Get("/receipt/:code", h.Receipt)
	grp.Get("/history", h.History)

	grp.Post("/student-receipt", studentOnly, h.StudentReceipt)
}
