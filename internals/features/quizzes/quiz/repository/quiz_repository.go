package repository

import (
	"time"

	"gorm.io/gorm"

	"thinkeep_backend/internals/features/quizzes/quiz/model"
)

// QuizRepository is the gorm-backed quiz store.
type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindByID(quizID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.DB.First(&quiz, "quiz_id = ?", quizID).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

// ExistsByUserRecordAndType backs the generation de-duplication invariant.
func (r *QuizRepository) ExistsByUserRecordAndType(userID, recordID uint, qt model.QuestionType) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).
		Where("user_id = ? AND record_id = ? AND question_type = ?", userID, recordID, qt).
		Count(&count).Error
	return count > 0, err
}

// FindSubmittedBetween returns quizzes submitted in [start, end), id order.
func (r *QuizRepository) FindSubmittedBetween(userID uint, start, end time.Time) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := r.DB.Where("user_id = ? AND submitted_at >= ? AND submitted_at < ?", userID, start, end).
		Order("quiz_id ASC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

// FindWrongOrSkippedBetween is the retry-queue query: today's quizzes that
// were answered wrong or skipped, in stable id order.
func (r *QuizRepository) FindWrongOrSkippedBetween(userID uint, start, end time.Time) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := r.DB.Where(
		"user_id = ? AND submitted_at >= ? AND submitted_at < ? AND (is_correct = false OR skipped = true)",
		userID, start, end,
	).Order("quiz_id ASC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *QuizRepository) CountSkippedBetween(userID uint, start, end time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).
		Where("user_id = ? AND skipped = true AND submitted_at >= ? AND submitted_at < ?", userID, start, end).
		Count(&count).Error
	return count, err
}

// FindCreatedBetween returns quizzes generated in [start, end), any
// submission state. Bulk day-deletion uses it.
func (r *QuizRepository) FindCreatedBetween(userID uint, start, end time.Time) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := r.DB.Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Order("quiz_id ASC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) Save(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(quiz *model.Quiz) error {
	return r.DB.Delete(quiz).Error
}

func (r *QuizRepository) DeleteAll(quizzes []model.Quiz) error {
	if len(quizzes) == 0 {
		return nil
	}
	return r.DB.Delete(&quizzes).Error
}
