package model

import "time"

// TokenBlacklist keeps logged-out access tokens invalid until they expire.
// Expired rows are purged by the cleanup scheduler.
type TokenBlacklist struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Token     string    `gorm:"column:token;size:512;not null;index" json:"-"`
	ExpiredAt time.Time `gorm:"column:expired_at;not null" json:"expired_at"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklists"
}
