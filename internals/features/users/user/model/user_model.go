package model

import (
	"time"

	"github.com/lib/pq"
)

// User carries profile data plus the streak fields mutated by the streak
// service. AwardedBadgeIDs is a denormalized cache of the user_badges join
// table; the join table stays the source of truth.
type User struct {
	UserID   uint    `gorm:"column:user_id;primaryKey" json:"user_id"`
	Nickname string  `gorm:"column:nickname;size:50;not null;uniqueIndex" json:"nickname"`
	Password *string `gorm:"column:password;size:255" json:"-"`
	GoogleID *string `gorm:"column:google_id;size:100;uniqueIndex" json:"-"`

	ProfileImage *string    `gorm:"column:profile_image;size:500" json:"profile_image,omitempty"`
	Gender       *string    `gorm:"column:gender;size:10" json:"gender,omitempty"`
	BirthDate    *time.Time `gorm:"column:birth_date;type:date" json:"birth_date,omitempty"`

	StreakCount     int           `gorm:"column:streak_count;not null;default:0" json:"streak_count"`
	LastRecordDate  *time.Time    `gorm:"column:last_record_date;type:date" json:"last_record_date,omitempty"`
	AwardedBadgeIDs pq.Int64Array `gorm:"column:awarded_badge_ids;type:bigint[]" json:"awarded_badge_ids"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsGoogleUser reports whether the account uses the external-identity login mode.
func (u *User) IsGoogleUser() bool {
	return u.GoogleID != nil && *u.GoogleID != ""
}

// HasBadge checks the denormalized cache.
func (u *User) HasBadge(badgeID uint) bool {
	for _, id := range u.AwardedBadgeIDs {
		if uint(id) == badgeID {
			return true
		}
	}
	return false
}
