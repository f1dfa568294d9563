package model

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"thinkeep_backend/internals/constants"
)

// Record is one user's diary entry for one calendar date. The unique index on
// (user_id, date) enforces one record per day; a losing concurrent insert
// surfaces as a duplicate-key error.
type Record struct {
	RecordID uint           `gorm:"column:record_id;primaryKey" json:"record_id"`
	UserID   uint           `gorm:"column:user_id;not null;index;uniqueIndex:idx_records_user_date" json:"user_id"`
	Date     time.Time      `gorm:"column:date;type:date;not null;uniqueIndex:idx_records_user_date" json:"date"`
	Answers  datatypes.JSONMap `gorm:"column:answers" json:"answers"`
	Emotion  string         `gorm:"column:emotion;size:50;not null" json:"emotion"`

	// Derived from the Q2 answer at write time.
	PersonCategory *string `gorm:"column:person_category;size:100" json:"person_category,omitempty"`
	PersonName     *string `gorm:"column:person_name;type:text" json:"person_name,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Record) TableName() string {
	return "records"
}

// Answer returns the stored answer for a question id, or "".
func (r *Record) Answer(questionID string) string {
	if r.Answers == nil {
		return ""
	}
	if v, ok := r.Answers[questionID].(string); ok {
		return v
	}
	return ""
}

// IsComplete reports whether all four required answers are present.
func (r *Record) IsComplete() bool {
	for _, q := range constants.RequiredQuestions {
		if strings.TrimSpace(r.Answer(q)) == "" {
			return false
		}
	}
	return true
}

// AnswerCount counts the non-empty required answers.
func (r *Record) AnswerCount() int {
	n := 0
	for _, q := range constants.RequiredQuestions {
		if strings.TrimSpace(r.Answer(q)) != "" {
			n++
		}
	}
	return n
}

// IsToday reports whether the record belongs to the current calendar date.
func (r *Record) IsToday() bool {
	now := time.Now()
	return r.Date.Year() == now.Year() && r.Date.YearDay() == now.YearDay()
}
