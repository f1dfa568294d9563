package repository

import (
	"time"

	"gorm.io/gorm"

	"thinkeep_backend/internals/features/records/record/model"
)

// RecordRepository is the gorm-backed diary store.
type RecordRepository struct {
	DB *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{DB: db}
}

func (r *RecordRepository) FindByUserAndDate(userID uint, date time.Time) (*model.Record, error) {
	var rec model.Record
	if err := r.DB.First(&rec, "user_id = ? AND date = ?", userID, date).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// ExistsByUserAndDate backs the one-record-per-day check before insert.
func (r *RecordRepository) ExistsByUserAndDate(userID uint, date time.Time) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Record{}).
		Where("user_id = ? AND date = ?", userID, date).
		Count(&count).Error
	return count > 0, err
}

func (r *RecordRepository) FindByIDAndUser(recordID, userID uint) (*model.Record, error) {
	var rec model.Record
	if err := r.DB.First(&rec, "record_id = ? AND user_id = ?", recordID, userID).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecordRepository) FindByUser(userID uint) ([]model.Record, error) {
	var recs []model.Record
	if err := r.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// FindByUserAndDateRange returns records in [from, to] ordered by date
// ascending. Quiz seed extraction depends on this ordering.
func (r *RecordRepository) FindByUserAndDateRange(userID uint, from, to time.Time) ([]model.Record, error) {
	var recs []model.Record
	if err := r.DB.Where("user_id = ? AND date BETWEEN ? AND ?", userID, from, to).
		Order("date ASC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *RecordRepository) Create(rec *model.Record) error {
	return r.DB.Create(rec).Error
}

func (r *RecordRepository) Save(rec *model.Record) error {
	return r.DB.Save(rec).Error
}

func (r *RecordRepository) Delete(rec *model.Record) error {
	return r.DB.Delete(rec).Error
}
