package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseRoute "github.com/Davie-07/school-management-system/internals/features/academics/courses/route"
	examRoute "github.com/Davie-07/school-management-system/internals/features/academics/exams/route"
	scheduleRoute "github.com/Davie-07/school-management-system/internals/features/academics/schedules/route"
	announcementRoute "github.com/Davie-07/school-management-system/internals/features/broadcast/announcements/route"
	reportRoute "github.com/Davie-07/school-management-system/internals/features/broadcast/reports/route"
	dashboardRoute "github.com/Davie-07/school-management-system/internals/features/dashboard/route"
	feeRoute "github.com/Davie-07/school-management-system/internals/features/finance/fees/route"
	gatepassRoute "github.com/Davie-07/school-management-system/internals/features/security/gatepass/route"
	authRoute "github.com/Davie-07/school-management-system/internals/features/users/auth/route"
	userRoute "github.com/Davie-07/school-management-system/internals/features/users/user/route"
	authMiddleware "github.com/Davie-07/school-management-system/internals/middlewares/auth"
)

// SetupRoutes mounts every feature under /api. AuthMiddleware guards the
// whole group; the credential endpoints and the payment gateway callback
// are on its skip list.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app)

	api := app.Group("/api", authMiddleware.AuthMiddleware(db))

	log.Println("[INFO] Mounting auth & user routes...")
	authRoute.AuthRoutes(api, db)
	userRoute.UserRoutes(api, db)

	log.Println("[INFO] Mounting academic routes...")
	courseRoute.CourseRoutes(api, db)
	examRoute.ExamRoutes(api, db)
	scheduleRoute.ScheduleRoutes(api, db)

	log.Println("[INFO] Mounting finance routes...")
	feeRoute.FeeRoutes(api, db)
	feeRoute.FeeWebhookRoutes(api, db)

	log.Println("[INFO] Mounting gatepass routes...")
	gatepassRoute.GatepassRoutes(api, db)

	log.Println("[INFO] Mounting broadcast routes...")
	announcementRoute.AnnouncementRoutes(api, db)
	reportRoute.ReportRoutes(api, db)

	log.Println("[INFO] Mounting dashboard routes...")
	dashboardRoute.DashboardRoutes(api, db)
}
