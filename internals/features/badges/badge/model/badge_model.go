package model

import "time"

// Badge is a static catalog entry. Rows are managed through the admin CRUD
// path and the seeder, never by the streak service.
type Badge struct {
	BadgeID       uint   `gorm:"column:badge_id;primaryKey" json:"badge_id"`
	Name          string `gorm:"column:name;size:100;not null" json:"name"`
	Description   string `gorm:"column:description;type:text;not null" json:"description"`
	ConditionJSON string `gorm:"column:condition_json;type:text;not null" json:"condition_json"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Badge) TableName() string {
	return "badges"
}
