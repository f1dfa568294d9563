package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	accessTTLDefault  = 1 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

// TokenService signs and verifies the two JWT flavors. Access tokens carry
// the nickname for convenience; refresh tokens carry only the subject and are
// stored hashed server-side.
type TokenService struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Now           func() time.Time
}

func NewTokenService(accessSecret, refreshSecret string) *TokenService {
	return &TokenService{
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		AccessTTL:     accessTTLDefault,
		RefreshTTL:    refreshTTLDefault,
		Now:           time.Now,
	}
}

func (t *TokenService) IssueAccessToken(userID uint, nickname string) (string, error) {
	now := t.Now().UTC()
	claims := jwt.MapClaims{
		"typ":      "access",
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"nickname": nickname,
		"iat":      now.Unix(),
		"exp":      now.Add(t.AccessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.AccessSecret))
}

func (t *TokenService) IssueRefreshToken(userID uint) (string, error) {
	now := t.Now().UTC()
	claims := jwt.MapClaims{
		"typ": "refresh",
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iat": now.Unix(),
		"exp": now.Add(t.RefreshTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.RefreshSecret))
}

// ParseRefreshToken validates signature, typ and expiry and returns the
// subject user id.
func (t *TokenService) ParseRefreshToken(token string) (uint, error) {
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(t.RefreshSecret), nil
	})
	if err != nil || !parsed.Valid {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid refresh token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid refresh token")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Not a refresh token")
	}
	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Invalid subject claim")
	}
	return uint(userID), nil
}

// AccessTokenRemaining reports how long an access token is still valid, used
// to size the blacklist window on logout.
func (t *TokenService) AccessTokenRemaining(token string) time.Duration {
	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(t.AccessSecret), nil
	})
	if err != nil || !parsed.Valid {
		return 2 * time.Minute
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 2 * time.Minute
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return 2 * time.Minute
	}
	remaining := time.Unix(int64(exp), 0).Sub(t.Now())
	if remaining <= 0 {
		return time.Minute
	}
	return remaining + time.Minute
}

// HashRefreshToken produces the HMAC hex stored in place of the raw token.
func (t *TokenService) HashRefreshToken(token string) string {
	m := hmac.New(sha256.New, []byte(t.RefreshSecret))
	_, _ = m.Write([]byte(token))
	return hex.EncodeToString(m.Sum(nil))
}
