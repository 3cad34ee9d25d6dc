package service

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Davie-07/school-management-system/internals/configs"
	usermodel "github.com/Davie-07/school-management-system/internals/features/users/user/model"
)

const defaultTokenTTLHours = 72

// IssueToken signs an access token carrying the claims the auth middleware
// reads back. Returns the token and its expiry.
func IssueToken(user *usermodel.User) (string, time.Time, error) {
	ttl := time.Duration(defaultTokenTTLHours) * time.Hour
	if raw := configs.GetEnv("JWT_EXPIRES_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			ttl = time.Duration(hours) * time.Hour
		}
	}
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"user_id": user.UserID.String(),
		"role":    user.UserRole,
		"name":    user.FullName(),
		"iat":     time.Now().Unix(),
		"exp":     expiresAt.Unix(),
	}
	if user.UserAdmissionNumber != nil {
		claims["admission_number"] = *user.UserAdmissionNumber
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
