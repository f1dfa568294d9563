package model

import (
	"time"

	"github.com/lib/pq"
)

// QuestionType is the source prompt a quiz was generated from (Q2..Q4).
type QuestionType string

const (
	QuestionTypeQ2 QuestionType = "Q2"
	QuestionTypeQ3 QuestionType = "Q3"
	QuestionTypeQ4 QuestionType = "Q4"
)

// Quiz is one generated question instance. Submission fields stay null until
// the user answers or skips. The unique index on (user_id, record_id,
// question_type) is the de-duplication invariant for generation.
type Quiz struct {
	QuizID       uint         `gorm:"column:quiz_id;primaryKey" json:"quiz_id"`
	UserID       uint         `gorm:"column:user_id;not null;index;uniqueIndex:idx_quizzes_user_record_type" json:"user_id"`
	RecordID     uint         `gorm:"column:record_id;not null;uniqueIndex:idx_quizzes_user_record_type" json:"record_id"`
	QuestionType QuestionType `gorm:"column:question_type;size:5;not null;uniqueIndex:idx_quizzes_user_record_type" json:"question_type"`

	Context  string         `gorm:"column:context;size:100" json:"context"`
	Question string         `gorm:"column:question;type:text;not null" json:"question"`
	Answer   string         `gorm:"column:answer;type:text;not null" json:"-"`
	Choices  pq.StringArray `gorm:"column:choices;type:text[];not null" json:"choices"`

	UserAnswer  *string    `gorm:"column:user_answer;type:text" json:"user_answer,omitempty"`
	IsCorrect   *bool      `gorm:"column:is_correct" json:"is_correct,omitempty"`
	Skipped     bool       `gorm:"column:skipped;not null;default:false" json:"skipped"`
	SubmittedAt *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// IsSubmitted reports whether a result has been locked in.
func (q *Quiz) IsSubmitted() bool {
	return q.SubmittedAt != nil
}
