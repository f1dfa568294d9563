package dto

import (
	"time"

	"thinkeep_backend/internals/features/quizzes/quiz/model"
)

// QuestionSeed is the (type, prior answer, date, record) tuple a quiz is
// generated from.
type QuestionSeed struct {
	QuestionType model.QuestionType
	Question     string // the original diary prompt
	Answer       string // the user's stored answer
	Date         time.Time
	RecordID     uint
}

// GeneratedQuiz is what the AI generator returns for one seed.
type GeneratedQuiz struct {
	Question string
	Answer   string
	Choices  []string
}

// QuizResponse is the wire-facing projection. The canonical answer is
// deliberately absent: the quiz is meant to be solved.
type QuizResponse struct {
	QuizID   uint     `json:"quiz_id"`
	Context  string   `json:"context"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
}

type QuizSubmitRequest struct {
	UserAnswer string `json:"user_answer" validate:"omitempty,max=500"`
	Skipped    bool   `json:"skipped"`
}

type QuizSubmitResponse struct {
	QuizID      uint      `json:"quiz_id"`
	IsCorrect   bool      `json:"is_correct"`
	Skipped     bool      `json:"skipped"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type QuizResultSummary struct {
	Total      int  `json:"total"`
	Correct    int  `json:"correct"`
	AllCorrect bool `json:"all_correct"`
}

type SkipStatusResponse struct {
	SkippedCount int `json:"skipped_count"`
	Remaining    int `json:"remaining"`
}

func ToQuizResponse(q *model.Quiz) QuizResponse {
	choices := make([]string, len(q.Choices))
	copy(choices, q.Choices)
	return QuizResponse{
		QuizID:   q.QuizID,
		Context:  q.Context,
		Question: q.Question,
		Choices:  choices,
	}
}
