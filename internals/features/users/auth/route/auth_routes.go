package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authcontroller "github.com/Davie-07/school-management-system/internals/features/users/auth/controller"
	"github.com/Davie-07/school-management-system/internals/middlewares"
)

/* ==============================
   AUTH ROUTES
   Base: /api/auth
   ============================== */

// AuthRoutes registers the auth endpoints. The credential endpoints are on
// the middleware skip list; everything else requires a valid token.
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	h := authcontroller.NewAuthHandler(db)

	grp := r.Group("/auth")

	// Public (skipPaths in the auth middleware)
	grp.Post("/register", middlewares.RegisterRateLimiter(), h.Register)
	grp.Post("/login", middlewares.LoginRateLimiter(), h.Login)
	grp.Post("/google", middlewares.LoginRateLimiter(), h.GoogleLogin)
	grp.Post("/forgot-password", middlewares.LoginRateLimiter(), h.ForgotPassword)
	grp.Post("/reset-password", middlewares.LoginRateLimiter(), h.ResetPassword)

	// Token holders
	grp.Post("/logout", h.Logout)
	grp.Get("/me", h.Me)
	grp.Put("/update-password", h.UpdatePassword)
}
