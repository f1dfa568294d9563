package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"thinkeep_backend/internals/constants"
	"thinkeep_backend/internals/features/quizzes/quiz/dto"
	"thinkeep_backend/internals/features/quizzes/quiz/model"
	recordModel "thinkeep_backend/internals/features/records/record/model"
)

// QuizRepo is the quiz store surface the engine needs.
type QuizRepo interface {
	FindByID(quizID uint) (*model.Quiz, error)
	ExistsByUserRecordAndType(userID, recordID uint, qt model.QuestionType) (bool, error)
	FindSubmittedBetween(userID uint, start, end time.Time) ([]model.Quiz, error)
	FindWrongOrSkippedBetween(userID uint, start, end time.Time) ([]model.Quiz, error)
	CountSkippedBetween(userID uint, start, end time.Time) (int64, error)
	FindCreatedBetween(userID uint, start, end time.Time) ([]model.Quiz, error)
	Create(quiz *model.Quiz) error
	Save(quiz *model.Quiz) error
	Delete(quiz *model.Quiz) error
	DeleteAll(quizzes []model.Quiz) error
}

// RecordReader is the slice of the record store used for seed extraction.
type RecordReader interface {
	FindByUserAndDateRange(userID uint, from, to time.Time) ([]recordModel.Record, error)
}

// QuizService drives the whole quiz lifecycle: generation from recent
// records, submission with the daily skip quota, retry queue and result
// views, deletion.
type QuizService struct {
	Quizzes   QuizRepo
	Records   RecordReader
	Generator QuizGenerator
	Now       func() time.Time

	// GenTimeout bounds one generator call.
	GenTimeout time.Duration

	// AllowResubmit is the resubmission policy: true means a second
	// submission overwrites the first. Flip to false to reject with a
	// conflict instead; nothing else needs to change.
	AllowResubmit bool
}

func NewQuizService(quizzes QuizRepo, records RecordReader, generator QuizGenerator) *QuizService {
	return &QuizService{
		Quizzes:       quizzes,
		Records:       records,
		Generator:     generator,
		Now:           time.Now,
		GenTimeout:    20 * time.Second,
		AllowResubmit: true,
	}
}

const quizContext = "기록 기반 회상 퀴즈"

// GenerateTodayQuizzes creates at most two new quizzes from the last three
// days of records. Seeds already turned into a quiz for the same (user,
// record, question type) are skipped; a generator failure aborts the call.
func (s *QuizService) GenerateTodayQuizzes(ctx context.Context, userID uint) ([]dto.QuizResponse, error) {
	today := dateOnly(s.Now())
	from := today.AddDate(0, 0, -constants.QuizSeedWindowDays)
	to := today.AddDate(0, 0, -1)

	records, err := s.Records.FindByUserAndDateRange(userID, from, to)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load recent records")
	}

	seeds := extractSeeds(records)
	responses := make([]dto.QuizResponse, 0, constants.MaxDailyQuizzes)

	for _, seed := range seeds {
		if len(responses) >= constants.MaxDailyQuizzes {
			break
		}

		exists, err := s.Quizzes.ExistsByUserRecordAndType(userID, seed.RecordID, seed.QuestionType)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check existing quizzes")
		}
		if exists {
			continue
		}

		generated, err := s.generate(ctx, seed)
		if err != nil {
			// No partial silent skip: the caller must see the failure.
			return nil, fiber.NewError(fiber.StatusBadGateway, "Quiz generation failed: "+err.Error())
		}

		quiz := &model.Quiz{
			UserID:       userID,
			RecordID:     seed.RecordID,
			QuestionType: seed.QuestionType,
			Context:      quizContext,
			Question:     generated.Question,
			Answer:       generated.Answer,
			Choices:      pq.StringArray(generated.Choices),
			Skipped:      false,
		}
		if err := s.Quizzes.Create(quiz); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// concurrent generation call created it first
				continue
			}
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to save quiz")
		}

		responses = append(responses, dto.ToQuizResponse(quiz))
	}

	log.Printf("[INFO] quizzes generated: user=%d count=%d", userID, len(responses))
	return responses, nil
}

func (s *QuizService) generate(ctx context.Context, seed dto.QuestionSeed) (*dto.GeneratedQuiz, error) {
	genCtx, cancel := context.WithTimeout(ctx, s.GenTimeout)
	defer cancel()
	return s.Generator.Generate(genCtx, seed)
}

// extractSeeds walks records date-ascending and emits one seed per answered
// quiz question, Q2 before Q3 before Q4. This ordering decides which seeds
// win the two generation slots.
func extractSeeds(records []recordModel.Record) []dto.QuestionSeed {
	var seeds []dto.QuestionSeed
	for i := range records {
		rec := &records[i]
		for _, q := range constants.QuizQuestions {
			answer := strings.TrimSpace(rec.Answer(q))
			if answer == "" {
				continue
			}
			seeds = append(seeds, dto.QuestionSeed{
				QuestionType: model.QuestionType(q),
				Question:     constants.QuestionText[q],
				Answer:       answer,
				Date:         rec.Date,
				RecordID:     rec.RecordID,
			})
		}
	}
	return seeds
}

// SubmitQuizAnswer locks in an answer or a skip. Skips are limited to two per
// day; the third attempt fails with a quota error and changes nothing.
func (s *QuizService) SubmitQuizAnswer(userID, quizID uint, req *dto.QuizSubmitRequest) (*dto.QuizSubmitResponse, error) {
	quiz, err := s.Quizzes.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Quiz not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load quiz")
	}
	if quiz.UserID != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not your quiz")
	}
	if quiz.IsSubmitted() && !s.AllowResubmit {
		return nil, fiber.NewError(fiber.StatusConflict, "Quiz has already been submitted")
	}

	now := s.Now()
	if req.Skipped {
		allowed, err := s.isSkipAllowed(userID)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fiber.NewError(fiber.StatusTooManyRequests,
				"No more skips available today (max 2 per day)")
		}
		empty := ""
		wrong := false
		quiz.UserAnswer = &empty
		quiz.IsCorrect = &wrong
		quiz.Skipped = true
	} else {
		correct := answersMatch(quiz.Answer, req.UserAnswer)
		submitted := req.UserAnswer
		quiz.UserAnswer = &submitted
		quiz.IsCorrect = &correct
		quiz.Skipped = false
	}
	quiz.SubmittedAt = &now

	if err := s.Quizzes.Save(quiz); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to save submission")
	}

	log.Printf("[INFO] quiz submitted: quiz=%d skipped=%v correct=%v", quiz.QuizID, quiz.Skipped, *quiz.IsCorrect)
	return &dto.QuizSubmitResponse{
		QuizID:      quiz.QuizID,
		IsCorrect:   *quiz.IsCorrect,
		Skipped:     quiz.Skipped,
		SubmittedAt: now,
	}, nil
}

// answersMatch grades case-insensitively after trimming whitespace.
func answersMatch(canonical, submitted string) bool {
	return strings.EqualFold(strings.TrimSpace(canonical), strings.TrimSpace(submitted))
}

func (s *QuizService) isSkipAllowed(userID uint) (bool, error) {
	start, end := s.todayWindow()
	count, err := s.Quizzes.CountSkippedBetween(userID, start, end)
	if err != nil {
		return false, fiber.NewError(fiber.StatusInternalServerError, "Failed to count skips")
	}
	return count < constants.MaxDailySkips, nil
}

// GetTodaySkipStatus reports the skip count and the remaining quota.
func (s *QuizService) GetTodaySkipStatus(userID uint) (*dto.SkipStatusResponse, error) {
	start, end := s.todayWindow()
	count, err := s.Quizzes.CountSkippedBetween(userID, start, end)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to count skips")
	}
	remaining := constants.MaxDailySkips - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return &dto.SkipStatusResponse{SkippedCount: int(count), Remaining: remaining}, nil
}

// GetTodayWrongQuizzes lists today's wrong-or-skipped quizzes (the retry
// queue) in stable id order.
func (s *QuizService) GetTodayWrongQuizzes(userID uint) ([]dto.QuizResponse, error) {
	start, end := s.todayWindow()
	quizzes, err := s.Quizzes.FindWrongOrSkippedBetween(userID, start, end)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load retry queue")
	}
	out := make([]dto.QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		out = append(out, dto.ToQuizResponse(&quizzes[i]))
	}
	return out, nil
}

// GetNextRetryQuiz returns the head of the retry queue, or nil when the queue
// is empty. Repeat calls return the same quiz until its state changes.
func (s *QuizService) GetNextRetryQuiz(userID uint) (*dto.QuizResponse, error) {
	start, end := s.todayWindow()
	quizzes, err := s.Quizzes.FindWrongOrSkippedBetween(userID, start, end)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load retry queue")
	}
	if len(quizzes) == 0 {
		return nil, nil
	}
	resp := dto.ToQuizResponse(&quizzes[0])
	return &resp, nil
}

// GetTodayResultSummary summarizes today's submitted quizzes. all_correct is
// true only when at least one quiz was submitted and none were wrong.
func (s *QuizService) GetTodayResultSummary(userID uint) (*dto.QuizResultSummary, error) {
	start, end := s.todayWindow()
	quizzes, err := s.Quizzes.FindSubmittedBetween(userID, start, end)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load results")
	}
	total := len(quizzes)
	correct := 0
	for i := range quizzes {
		if quizzes[i].IsCorrect != nil && *quizzes[i].IsCorrect {
			correct++
		}
	}
	return &dto.QuizResultSummary{
		Total:      total,
		Correct:    correct,
		AllCorrect: total > 0 && correct == total,
	}, nil
}

// DeleteQuiz removes a single quiz owned by userID.
func (s *QuizService) DeleteQuiz(userID, quizID uint) error {
	quiz, err := s.Quizzes.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Quiz not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load quiz")
	}
	if quiz.UserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Not your quiz")
	}
	if err := s.Quizzes.Delete(quiz); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete quiz")
	}
	log.Printf("[INFO] quiz deleted: quiz=%d user=%d", quizID, userID)
	return nil
}

// DeleteTodayQuizzes removes all of today's quizzes for a user, submitted or
// not.
func (s *QuizService) DeleteTodayQuizzes(userID uint) (int, error) {
	start, end := s.todayWindow()
	quizzes, err := s.Quizzes.FindCreatedBetween(userID, start, end)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to load today's quizzes")
	}
	if err := s.Quizzes.DeleteAll(quizzes); err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "Failed to delete quizzes")
	}
	log.Printf("[INFO] today's quizzes deleted: user=%d count=%d", userID, len(quizzes))
	return len(quizzes), nil
}

func (s *QuizService) todayWindow() (time.Time, time.Time) {
	start := dateOnly(s.Now())
	return start, start.AddDate(0, 0, 1)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
