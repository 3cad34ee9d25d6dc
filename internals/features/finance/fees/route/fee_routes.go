package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Davie-07/school-management-system/internals/constants"
	feecontroller "github.com/Davie-07/school-management-system/internals/features/finance/fees/controller"
	authmw "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

// FeeRoutes: the ledger belongs to finance and admin; students read their own
// records and open checkouts; waivers are admin only.
func FeeRoutes(r fiber.Router, db *gorm.DB) {
	h := feecontroller.NewFeeHandler(db)

	grp := r.Group("/fees")

	finance := authmw.OnlyRoles("Only finance staff can manage fees", constants.RoleFinance, constants.RoleAdmin)
	adminOnly := authmw.OnlyRoles("Only admins can approve waivers", constants.RoleAdmin)

	grp.Get("/", finance, h.List)
	grp.Get("/reports/defaulters", finance, h.Defaulters)
	grp.Get("/reports/collection", finance, h.CollectionReport)
	grp.Get("/student/:studentId", h.ListByStudent)

	grp.Post("/", finance, h.Create)
	grp.Get("/:id", finance, h.GetByID)
	grp.Post("/:id/payment", finance, h.RecordPayment)
	grp.Post("/:id/waiver", adminOnly, h.ApplyWaiver)
	grp.Put("/:id/gatepass", finance, h.SetGatepassOverride)

	grp.Post("/:id/checkout", h.CreateCheckout)
}

// FeeWebhookRoutes registers the unauthenticated gateway callback. Mounted
// outside the auth middleware's route group; the auth skip list also names
// this path for safety.
func FeeWebhookRoutes(r fiber.Router, db *gorm.DB) {
	h := feecontroller.NewFeeHandler(db)
	r.Post("/fees/payments/notification", h.HandlePaymentNotification)
}
