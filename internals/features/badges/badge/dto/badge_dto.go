package dto

import (
	"time"

	"thinkeep_backend/internals/features/badges/badge/model"
)

type BadgeRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Description   string `json:"description" validate:"required"`
	ConditionJSON string `json:"condition_json" validate:"required,json"`
}

type BadgeResponse struct {
	BadgeID       uint   `json:"badge_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ConditionJSON string `json:"condition_json"`
}

// AssignBadgeRequest grants an existing badge to a user; the badge id comes
// from the path.
type AssignBadgeRequest struct {
	UserID uint `json:"user_id" validate:"required,gt=0"`
}

// UserBadgeResponse is also what the record-write path returns when a streak
// threshold unlocks a badge.
type UserBadgeResponse struct {
	UserID    uint      `json:"user_id"`
	BadgeID   uint      `json:"badge_id"`
	Name      string    `json:"name,omitempty"`
	AwardedAt time.Time `json:"awarded_at"`
}

func ToBadgeResponse(b *model.Badge) BadgeResponse {
	return BadgeResponse{
		BadgeID:       b.BadgeID,
		Name:          b.Name,
		Description:   b.Description,
		ConditionJSON: b.ConditionJSON,
	}
}
