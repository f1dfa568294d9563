package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"thinkeep_backend/internals/constants"
	badgeDTO "thinkeep_backend/internals/features/badges/badge/dto"
	"thinkeep_backend/internals/features/records/record/dto"
	"thinkeep_backend/internals/features/records/record/model"
)

// RecordRepo is the diary store surface the service needs.
type RecordRepo interface {
	FindByUserAndDate(userID uint, date time.Time) (*model.Record, error)
	ExistsByUserAndDate(userID uint, date time.Time) (bool, error)
	FindByIDAndUser(recordID, userID uint) (*model.Record, error)
	FindByUser(userID uint) ([]model.Record, error)
	FindByUserAndDateRange(userID uint, from, to time.Time) ([]model.Record, error)
	Create(rec *model.Record) error
	Save(rec *model.Record) error
	Delete(rec *model.Record) error
}

// StreakIncreaser is the streak engine hook fired after a successful write.
type StreakIncreaser interface {
	IncreaseStreak(userID uint) (*badgeDTO.UserBadgeResponse, error)
}

type RecordService struct {
	Records RecordRepo
	Streaks StreakIncreaser
	Now     func() time.Time
}

func NewRecordService(records RecordRepo, streaks StreakIncreaser) *RecordService {
	return &RecordService{Records: records, Streaks: streaks, Now: time.Now}
}

// CreateTodayRecord writes today's diary entry, then bumps the streak. A
// streak/badge failure is logged and swallowed: the saved record wins.
func (s *RecordService) CreateTodayRecord(userID uint, req *dto.RecordCreateRequest) (*dto.RecordCreateResponse, error) {
	if err := validateRecordRequest(req); err != nil {
		return nil, err
	}

	today := dateOnly(s.Now())
	exists, err := s.Records.ExistsByUserAndDate(userID, today)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check today's record")
	}
	if exists {
		return nil, fiber.NewError(fiber.StatusConflict, "Today's record has already been written")
	}

	rec := buildRecord(userID, today, req)
	if err := s.Records.Create(rec); err != nil {
		// concurrent writer lost the race on (user_id, date)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "Today's record has already been written")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to save record")
	}
	log.Printf("[INFO] record created: user=%d record=%d emotion=%s", userID, rec.RecordID, rec.Emotion)

	var newBadge *badgeDTO.UserBadgeResponse
	if badge, err := s.Streaks.IncreaseStreak(userID); err != nil {
		log.Printf("[WARN] streak update failed after record write: user=%d err=%v", userID, err)
	} else {
		newBadge = badge
	}

	return &dto.RecordCreateResponse{
		Record:   dto.ToRecordResponse(rec),
		NewBadge: newBadge,
	}, nil
}

// GetTodayStatus reports whether today's entry exists and what the client may
// do next.
func (s *RecordService) GetTodayStatus(userID uint) (*dto.TodayRecordStatus, error) {
	today := dateOnly(s.Now())
	rec, err := s.Records.FindByUserAndDate(userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.TodayRecordStatus{
				HasRecord:     false,
				Date:          today,
				CanCreate:     true,
				CanEdit:       false,
				StatusMessage: "아직 오늘 기록을 작성하지 않으셨네요",
				ActionMessage: "5분만 투자해서 오늘을 기록해보세요! ✍️",
			}, nil
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load today's record")
	}

	resp := dto.ToRecordResponse(rec)
	status := &dto.TodayRecordStatus{
		HasRecord: true,
		Date:      today,
		Record:    &resp,
		CanCreate: false,
		CanEdit:   true,
	}
	if rec.IsComplete() {
		status.StatusMessage = "오늘 기록을 완료했어요! 🎉"
		status.ActionMessage = "회상 퀴즈를 풀어보세요!"
	} else {
		status.StatusMessage = "오늘 기록이 진행 중이에요"
		status.ActionMessage = "기록을 마저 완성해보세요"
	}
	return status, nil
}

func (s *RecordService) GetRecordByDate(userID uint, date time.Time) (*dto.RecordResponse, error) {
	rec, err := s.Records.FindByUserAndDate(userID, dateOnly(date))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "No record for that date")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load record")
	}
	resp := dto.ToRecordResponse(rec)
	return &resp, nil
}

func (s *RecordService) ListRecords(userID uint) ([]dto.RecordResponse, error) {
	recs, err := s.Records.FindByUser(userID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to list records")
	}
	out := make([]dto.RecordResponse, 0, len(recs))
	for i := range recs {
		out = append(out, dto.ToRecordResponse(&recs[i]))
	}
	return out, nil
}

// UpdateRecord edits an entry owned by userID, re-deriving the Q2 fields.
func (s *RecordService) UpdateRecord(userID, recordID uint, req *dto.RecordCreateRequest) (*dto.RecordResponse, error) {
	if err := validateRecordRequest(req); err != nil {
		return nil, err
	}

	rec, err := s.Records.FindByIDAndUser(recordID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Record not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load record")
	}

	rec.Answers = toJSONMap(req.Answers)
	rec.Emotion = req.Emotion
	applyPersonFields(rec, req.Answers[constants.QuestionQ2])

	if err := s.Records.Save(rec); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to update record")
	}
	resp := dto.ToRecordResponse(rec)
	return &resp, nil
}

func (s *RecordService) DeleteRecord(userID, recordID uint) error {
	rec, err := s.Records.FindByIDAndUser(recordID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Record not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load record")
	}
	if err := s.Records.Delete(rec); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete record")
	}
	log.Printf("[INFO] record deleted: user=%d record=%d", userID, recordID)
	return nil
}

// GetMonthlyEmotions builds the calendar view: emotion per recorded date and
// per-emotion counts for one month.
func (s *RecordService) GetMonthlyEmotions(userID uint, year, month int) (*dto.MonthlyEmotionResponse, error) {
	if month < 1 || month > 12 {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid month")
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, -1)

	recs, err := s.Records.FindByUserAndDateRange(userID, from, to)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load records")
	}

	emotions := make(map[string]string, len(recs))
	stats := make(map[string]int)
	for i := range recs {
		emotions[recs[i].Date.Format("2006-01-02")] = recs[i].Emotion
		stats[recs[i].Emotion]++
	}

	dominant := ""
	best := 0
	for emotion, n := range stats {
		if n > best || (n == best && emotion < dominant) {
			dominant, best = emotion, n
		}
	}

	return &dto.MonthlyEmotionResponse{
		UserID:          userID,
		Year:            year,
		Month:           month,
		Emotions:        emotions,
		TotalRecords:    len(recs),
		EmotionStats:    stats,
		DominantEmotion: dominant,
	}, nil
}

// ===================== internals =====================

func validateRecordRequest(req *dto.RecordCreateRequest) error {
	if req == nil || len(req.Answers) == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Diary answers are required")
	}
	for _, q := range constants.RequiredQuestions {
		if strings.TrimSpace(req.Answers[q]) == "" {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "All questions (Q1~Q4) must be answered")
		}
	}
	if strings.TrimSpace(req.Emotion) == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "An emotion must be selected")
	}
	return nil
}

func buildRecord(userID uint, date time.Time, req *dto.RecordCreateRequest) *model.Record {
	rec := &model.Record{
		UserID:  userID,
		Date:    date,
		Answers: toJSONMap(req.Answers),
		Emotion: req.Emotion,
	}
	applyPersonFields(rec, req.Answers[constants.QuestionQ2])
	return rec
}

func applyPersonFields(rec *model.Record, q2Answer string) {
	if strings.TrimSpace(q2Answer) == "" {
		rec.PersonCategory = nil
		rec.PersonName = nil
		return
	}
	category := extractPersonCategory(q2Answer)
	rec.PersonCategory = &category
	name := q2Answer
	rec.PersonName = &name
}

// extractPersonCategory buckets the Q2 answer by keyword. Categories mirror
// the fixed set the frontend renders.
func extractPersonCategory(q2Answer string) string {
	answer := strings.ToLower(q2Answer)

	switch {
	case containsAny(answer, "가족", "엄마", "아빠", "딸", "아들", "부모"):
		return "가족"
	case containsAny(answer, "친구", "동기", "지인"):
		return "친구"
	case containsAny(answer, "직장", "동료", "상사", "부하", "회사"):
		return "직장동료"
	case containsAny(answer, "혼자", "나만", "홀로"):
		return "혼자"
	default:
		return "기타"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func toJSONMap(answers map[string]string) datatypes.JSONMap {
	m := make(datatypes.JSONMap, len(answers))
	for k, v := range answers {
		m[k] = v
	}
	return m
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
