// internals/features/admin/service/token_service.go
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"gatekeeper_backend/internals/configs"
	"gatekeeper_backend/internals/features/admin/model"
)

const accessTokenTTL = 24 * time.Hour

// GenerateAccessToken issues the HS256 JWT the admin UI sends on every call.
func GenerateAccessToken(admin *model.AdminUserModel) (string, error) {
	secret := configs.JWTSecret
	if secret == "" {
		return "", errors.New("JWT_SECRET is not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      admin.ID.String(),
		"username": admin.Username,
		"role":     admin.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(accessTokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
