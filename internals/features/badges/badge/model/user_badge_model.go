package model

import "time"

// UserBadge is the award join table. The composite primary key makes a second
// award for the same (user, badge) pair a duplicate-key error, which the
// streak service treats as already-awarded.
type UserBadge struct {
	UserID    uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	BadgeID   uint      `gorm:"column:badge_id;primaryKey" json:"badge_id"`
	AwardedAt time.Time `gorm:"column:awarded_at;not null" json:"awarded_at"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
