// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"thinkeep_backend/internals/configs"
	authModel "thinkeep_backend/internals/features/users/auth/model"
)

// AuthMiddleware verifies the bearer token (cookie fallback), rejects
// blacklisted tokens, and stores user_id + the raw token in Locals.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// Blacklist check (logout'd tokens stay invalid until expiry)
		var blacklisted int64
		if err := db.Model(&authModel.TokenBlacklist{}).
			Where("token = ? AND expired_at > ?", tokenString, time.Now()).
			Count(&blacklisted).Error; err == nil && blacklisted > 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Token has been revoked")
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(configs.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		sub, _ := claims["sub"].(string)
		userID, err := strconv.ParseUint(sub, 10, 64)
		if err != nil || userID == 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token subject")
		}

		c.Locals("user_id", uint(userID))
		c.Locals("raw_token", tokenString)
		if nickname, ok := claims["nickname"].(string); ok {
			c.Locals("nickname", nickname)
		}
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		if tok := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")); tok != "" {
			return tok, nil
		}
	}
	if tok := strings.TrimSpace(c.Cookies("access_token")); tok != "" {
		return tok, nil
	}
	return "", errors.New("Missing Authorization header")
}
