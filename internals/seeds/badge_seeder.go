package seeds

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"thinkeep_backend/internals/constants"
	"thinkeep_backend/internals/features/badges/badge/model"
)

var streakBadgeNames = map[uint]struct {
	Name        string
	Description string
}{
	1: {"작심삼일 극복", "일기를 3일 연속 작성했어요"},
	2: {"일주일의 기록", "일기를 7일 연속 작성했어요"},
	3: {"꾸준함의 증명", "일기를 14일 연속 작성했어요"},
	4: {"한 달의 기적", "일기를 30일 연속 작성했어요"},
}

// SeedBadges inserts the streak badge catalog if the rows are missing. The
// ids must match the streak rule table or awards will silently no-op.
func SeedBadges(db *gorm.DB) error {
	for _, rule := range constants.DefaultStreakBadgeRules {
		var existing model.Badge
		err := db.First(&existing, "badge_id = ?", rule.BadgeID).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		meta := streakBadgeNames[rule.BadgeID]
		badge := model.Badge{
			BadgeID:       rule.BadgeID,
			Name:          meta.Name,
			Description:   meta.Description,
			ConditionJSON: fmt.Sprintf(`{"type":"streak","days":%d}`, rule.Threshold),
		}
		if err := db.Create(&badge).Error; err != nil {
			return err
		}
		log.Printf("[INFO] seeded badge %d (%s)", badge.BadgeID, badge.Name)
	}
	return nil
}
