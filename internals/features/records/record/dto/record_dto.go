package dto

import (
	"time"

	badgeDTO "thinkeep_backend/internals/features/badges/badge/dto"
	"thinkeep_backend/internals/features/records/record/model"
)

// RecordCreateRequest carries the four answers plus the mood tag. The same
// payload is used for updates.
type RecordCreateRequest struct {
	Answers map[string]string `json:"answers" validate:"required"`
	Emotion string            `json:"emotion" validate:"required,max=50"`
}

type RecordResponse struct {
	RecordID       uint              `json:"record_id"`
	UserID         uint              `json:"user_id"`
	Date           time.Time         `json:"date"`
	Answers        map[string]string `json:"answers"`
	Emotion        string            `json:"emotion"`
	PersonCategory *string           `json:"person_category,omitempty"`
	PersonName     *string           `json:"person_name,omitempty"`
	IsComplete     bool              `json:"is_complete"`
	IsToday        bool              `json:"is_today"`
	AnswerCount    int               `json:"answer_count"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// RecordCreateResponse pairs the saved record with the badge the streak
// update may have unlocked (nil when none).
type RecordCreateResponse struct {
	Record   RecordResponse               `json:"record"`
	NewBadge *badgeDTO.UserBadgeResponse  `json:"new_badge,omitempty"`
}

// TodayRecordStatus tells the client what it may do with today's entry.
type TodayRecordStatus struct {
	HasRecord     bool            `json:"has_record"`
	Date          time.Time       `json:"date"`
	Record        *RecordResponse `json:"record,omitempty"`
	CanCreate     bool            `json:"can_create"`
	CanEdit       bool            `json:"can_edit"`
	StatusMessage string          `json:"status_message"`
	ActionMessage string          `json:"action_message"`
}

// MonthlyEmotionResponse backs the calendar view: one emotion per recorded
// date plus per-emotion counts.
type MonthlyEmotionResponse struct {
	UserID          uint              `json:"user_id"`
	Year            int               `json:"year"`
	Month           int               `json:"month"`
	Emotions        map[string]string `json:"emotions"`
	TotalRecords    int               `json:"total_records"`
	EmotionStats    map[string]int    `json:"emotion_stats"`
	DominantEmotion string            `json:"dominant_emotion"`
}

func ToRecordResponse(r *model.Record) RecordResponse {
	answers := make(map[string]string, len(r.Answers))
	for k, v := range r.Answers {
		if s, ok := v.(string); ok {
			answers[k] = s
		}
	}
	return RecordResponse{
		RecordID:       r.RecordID,
		UserID:         r.UserID,
		Date:           r.Date,
		Answers:        answers,
		Emotion:        r.Emotion,
		PersonCategory: r.PersonCategory,
		PersonName:     r.PersonName,
		IsComplete:     r.IsComplete(),
		IsToday:        r.IsToday(),
		AnswerCount:    r.AnswerCount(),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
