package repository

import (
	"time"

	"gorm.io/gorm"

	"thinkeep_backend/internals/features/users/auth/model"
)

type AuthRepository struct {
	DB *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{DB: db}
}

/* ===== Refresh tokens ===== */

func (r *AuthRepository) CreateRefreshToken(rt *model.RefreshToken) error {
	return r.DB.Create(rt).Error
}

// FindRefreshToken looks up a stored token by its hash.
func (r *AuthRepository) FindRefreshToken(tokenHash string) (*model.RefreshToken, error) {
	var rt model.RefreshToken
	if err := r.DB.Where("token = ?", tokenHash).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *AuthRepository) DeleteRefreshToken(tokenHash string) error {
	return r.DB.Where("token = ?", tokenHash).Delete(&model.RefreshToken{}).Error
}

func (r *AuthRepository) DeleteRefreshTokensByUser(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.RefreshToken{}).Error
}

func (r *AuthRepository) DeleteExpiredRefreshTokens(now time.Time) (int64, error) {
	res := r.DB.Where("expires_at < ?", now).Delete(&model.RefreshToken{})
	return res.RowsAffected, res.Error
}

/* ===== Blacklist ===== */

func (r *AuthRepository) BlacklistToken(token string, expiredAt time.Time) error {
	return r.DB.Create(&model.TokenBlacklist{Token: token, ExpiredAt: expiredAt}).Error
}

func (r *AuthRepository) IsTokenBlacklisted(token string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", token, time.Now()).
		Count(&count).Error
	return count > 0, err
}

func (r *AuthRepository) DeleteExpiredBlacklistEntries(now time.Time) (int64, error) {
	res := r.DB.Where("expired_at < ?", now).Delete(&model.TokenBlacklist{})
	return res.RowsAffected, res.Error
}
