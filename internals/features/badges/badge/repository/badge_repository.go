package repository

import (
	"time"

	"gorm.io/gorm"

	"thinkeep_backend/internals/features/badges/badge/model"
)

// BadgeRepository covers the static catalog.
type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) FindByID(badgeID uint) (*model.Badge, error) {
	var badge model.Badge
	if err := r.DB.First(&badge, "badge_id = ?", badgeID).Error; err != nil {
		return nil, err
	}
	return &badge, nil
}

func (r *BadgeRepository) FindAll() ([]model.Badge, error) {
	var badges []model.Badge
	if err := r.DB.Order("badge_id ASC").Find(&badges).Error; err != nil {
		return nil, err
	}
	return badges, nil
}

func (r *BadgeRepository) Create(badge *model.Badge) error {
	return r.DB.Create(badge).Error
}

func (r *BadgeRepository) Save(badge *model.Badge) error {
	return r.DB.Save(badge).Error
}

func (r *BadgeRepository) Delete(badgeID uint) error {
	res := r.DB.Delete(&model.Badge{}, "badge_id = ?", badgeID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UserBadgeRepository covers the award join table. InsertPair relies on the
// composite primary key: a duplicate insert comes back as
// gorm.ErrDuplicatedKey, which callers map to already-awarded.
type UserBadgeRepository struct {
	DB *gorm.DB
}

func NewUserBadgeRepository(db *gorm.DB) *UserBadgeRepository {
	return &UserBadgeRepository{DB: db}
}

func (r *UserBadgeRepository) ExistsPair(userID, badgeID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserBadgeRepository) InsertPair(userID, badgeID uint, awardedAt time.Time) error {
	return r.DB.Create(&model.UserBadge{
		UserID:    userID,
		BadgeID:   badgeID,
		AwardedAt: awardedAt,
	}).Error
}

func (r *UserBadgeRepository) FindByUser(userID uint) ([]model.UserBadge, error) {
	var awards []model.UserBadge
	if err := r.DB.Where("user_id = ?", userID).
		Order("awarded_at ASC").
		Find(&awards).Error; err != nil {
		return nil, err
	}
	return awards, nil
}
