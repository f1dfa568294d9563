package model

import "time"

// RefreshToken persists issued refresh tokens so they can be validated and
// rotated on /refresh-token.
type RefreshToken struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Token     string    `gorm:"column:token;size:512;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	UserAgent *string   `gorm:"column:user_agent;size:255" json:"user_agent,omitempty"`
	IP        *string   `gorm:"column:ip;size:64" json:"ip,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RefreshToken) TableName() string {
	return "user_refresh_tokens"
}
