package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/Davie-07/school-management-system/internals/configs"
	authmodel "github.com/Davie-07/school-management-system/internals/features/users/auth/model"
	usermodel "github.com/Davie-07/school-management-system/internals/features/users/user/model"
)

// Paths that skip auth: credential endpoints issue the token themselves and
// gateway callbacks carry their own signature.
var skipPaths = map[string]struct{}{
	"/api/auth/register":              {},
	"/api/auth/login":                 {},
	"/api/auth/google":                {},
	"/api/auth/forgot-password":       {},
	"/api/auth/reset-password":        {},
	"/api/fees/payments/notification": {},
}

func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// Blacklist check, once per request
		if c.Locals("token_checked") == nil {
			var existing authmodel.TokenBlacklist
			if err := db.Where("token_blacklist_token = ? AND token_blacklist_deleted_at IS NULL", tokenString).
				First(&existing).Error; err == nil {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Println("[ERROR] blacklist lookup:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			c.Locals("token_checked", true)
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals("user_id", userID.String())

		var user usermodel.User
		if err := db.First(&user, "user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			log.Println("[ERROR] user lookup:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if !user.IsActive() {
			return fiber.NewError(fiber.StatusForbidden, "Your account has been suspended. Please contact administration.")
		}

		// Touch last login, best-effort
		now := time.Now()
		_ = db.Model(&usermodel.User{}).
			Where("user_id = ?", user.UserID).
			Update("user_last_login", now).Error

		storeBasicClaimsToLocals(c, &user)
		return c.Next()
	}
}
