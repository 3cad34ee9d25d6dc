package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	usermodel "github.com/Davie-07/school-management-system/internals/features/users/user/model"
	"github.com/Davie-07/school-management-system/internals/helpers/authz"
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")), nil
	}
	if cookie := c.Cookies("token"); cookie != "" {
		return cookie, nil
	}
	return "", errors.New("Unauthorized - No token provided")
}

// validateTokenExpiry checks exp with a small leeway for clock skew.
func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp claim")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("invalid exp claim")
	}
	expiry := time.Unix(int64(expFloat), 0)
	if time.Now().After(expiry.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	raw, ok := claims["user_id"]
	if !ok {
		raw, ok = claims["id"]
	}
	if !ok {
		return uuid.Nil, errors.New("missing user_id claim")
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, errors.New("user_id claim is not a string")
	}
	return uuid.Parse(s)
}

// storeBasicClaimsToLocals puts the resolved user onto the request context
// so downstream handlers never re-parse the token.
func storeBasicClaimsToLocals(c *fiber.Ctx, user *usermodel.User) {
	c.Locals("userRole", user.UserRole)
	c.Locals("userName", user.FullName())
	if user.UserAdmissionNumber != nil {
		c.Locals("admissionNumber", *user.UserAdmissionNumber)
	}
	c.Locals("currentUser", user)
}

/* ======================================
   Accessors used by controllers
====================================== */

func UserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("user_id").(string)
	if !ok || raw == "" {
		return uuid.Nil, errors.New("missing user id in context")
	}
	return uuid.Parse(raw)
}

func RoleFromLocals(c *fiber.Ctx) string {
	if role, ok := c.Locals("userRole").(string); ok {
		return role
	}
	return ""
}

func CurrentUser(c *fiber.Ctx) (*usermodel.User, error) {
	user, ok := c.Locals("currentUser").(*usermodel.User)
	if !ok || user == nil {
		return nil, errors.New("missing user in context")
	}
	return user, nil
}

// ActorFromLocals builds the access-control view of the caller.
func ActorFromLocals(c *fiber.Ctx) (authz.Actor, error) {
	user, err := CurrentUser(c)
	if err != nil {
		return authz.Actor{}, err
	}
	return authz.Actor{
		ID:                user.UserID,
		Role:              user.UserRole,
		AssignedCourseIDs: user.UserAssignedCourseIDs,
	}, nil
}
