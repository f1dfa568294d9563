package dto

import (
	"time"

	"thinkeep_backend/internals/features/users/user/model"
)

// CreateUserRequest supports both signup modes. Exactly one of password /
// google_id must be set, checked in the service.
type CreateUserRequest struct {
	Nickname     string  `json:"nickname" validate:"required,min=2,max=50"`
	Password     *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	GoogleID     *string `json:"google_id,omitempty" validate:"omitempty,max=100"`
	ProfileImage *string `json:"profile_image,omitempty" validate:"omitempty,url,max=500"`
	Gender       *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	BirthDate    *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateUserRequest covers the mutable profile fields. Password changes are
// only honored for password-mode users.
type UpdateUserRequest struct {
	ProfileImage *string `json:"profile_image,omitempty" validate:"omitempty,url,max=500"`
	Gender       *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	BirthDate    *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Password     *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

type UserResponse struct {
	UserID          uint       `json:"user_id"`
	Nickname        string     `json:"nickname"`
	ProfileImage    *string    `json:"profile_image,omitempty"`
	Gender          *string    `json:"gender,omitempty"`
	BirthDate       *time.Time `json:"birth_date,omitempty"`
	StreakCount     int        `json:"streak_count"`
	LastRecordDate  *time.Time `json:"last_record_date,omitempty"`
	AwardedBadgeIDs []int64    `json:"awarded_badge_ids"`
	IsGoogleUser    bool       `json:"is_google_user"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type StreakCountResponse struct {
	UserID         uint       `json:"user_id"`
	StreakCount    int        `json:"streak_count"`
	LastRecordDate *time.Time `json:"last_record_date,omitempty"`
}

func ToUserResponse(u *model.User) UserResponse {
	ids := make([]int64, len(u.AwardedBadgeIDs))
	copy(ids, u.AwardedBadgeIDs)
	return UserResponse{
		UserID:          u.UserID,
		Nickname:        u.Nickname,
		ProfileImage:    u.ProfileImage,
		Gender:          u.Gender,
		BirthDate:       u.BirthDate,
		StreakCount:     u.StreakCount,
		LastRecordDate:  u.LastRecordDate,
		AwardedBadgeIDs: ids,
		IsGoogleUser:    u.IsGoogleUser(),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}
