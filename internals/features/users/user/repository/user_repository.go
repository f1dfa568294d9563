package repository

import (
	"gorm.io/gorm"

	"thinkeep_backend/internals/features/users/user/model"
)

// UserRepository is the gorm-backed user store.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(userID uint) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByNickname(nickname string) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, "nickname = ?", nickname).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByGoogleID(googleID string) (*model.User, error) {
	var user model.User
	if err := r.DB.First(&user, "google_id = ?", googleID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByNickname(nickname string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("nickname = ?", nickname).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ExistsByGoogleID(googleID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("google_id = ?", googleID).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) FindAll() ([]model.User, error) {
	var users []model.User
	if err := r.DB.Order("user_id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) Save(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) Delete(userID uint) error {
	res := r.DB.Delete(&model.User{}, "user_id = ?", userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
