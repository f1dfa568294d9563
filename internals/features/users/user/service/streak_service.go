package service

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"thinkeep_backend/internals/constants"
	badgeDTO "thinkeep_backend/internals/features/badges/badge/dto"
	badgeModel "thinkeep_backend/internals/features/badges/badge/model"
	"thinkeep_backend/internals/features/users/user/model"
)

// UserStore is the slice of the user repository the streak service needs.
type UserStore interface {
	FindByID(userID uint) (*model.User, error)
	Save(user *model.User) error
}

// BadgeCatalog looks up static badge definitions.
type BadgeCatalog interface {
	FindByID(badgeID uint) (*badgeModel.Badge, error)
}

// AwardStore is the user_badges join table. InsertPair must surface a
// duplicate (user, badge) pair as gorm.ErrDuplicatedKey.
type AwardStore interface {
	ExistsPair(userID, badgeID uint) (bool, error)
	InsertPair(userID, badgeID uint, awardedAt time.Time) error
}

// StreakService maintains per-user daily-streak continuity and grants
// one-time badges at the configured thresholds. It is the only writer of the
// user's streak fields and badge cache.
type StreakService struct {
	Users  UserStore
	Badges BadgeCatalog
	Awards AwardStore
	Rules  []constants.StreakBadgeRule
	Now    func() time.Time
}

func NewStreakService(users UserStore, badges BadgeCatalog, awards AwardStore) *StreakService {
	return &StreakService{
		Users:  users,
		Badges: badges,
		Awards: awards,
		Rules:  constants.DefaultStreakBadgeRules,
		Now:    time.Now,
	}
}

// IncreaseStreak is called once per user per day, right after a diary record
// is written. Contiguous with yesterday → streak+1, otherwise reset to 1.
// Returns the newly awarded badge, or nil.
//
// The streak update is persisted before any badge work so badge-subsystem
// failures never undo streak continuity.
func (s *StreakService) IncreaseStreak(userID uint) (*badgeDTO.UserBadgeResponse, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}

	today := dateOnly(s.Now())
	yesterday := today.AddDate(0, 0, -1)

	if user.LastRecordDate != nil && dateOnly(*user.LastRecordDate).Equal(yesterday) {
		user.StreakCount++
	} else {
		user.StreakCount = 1
	}
	user.LastRecordDate = &today

	if err := s.Users.Save(user); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to update streak")
	}

	badgeID, ok := s.badgeForStreak(user.StreakCount)
	if !ok {
		return nil, nil
	}
	return s.awardBadge(user, badgeID)
}

func (s *StreakService) badgeForStreak(streak int) (uint, bool) {
	for _, rule := range s.Rules {
		if rule.Threshold == streak {
			return rule.BadgeID, true
		}
	}
	return 0, false
}

// awardBadge grants badgeID at most once per user, ever. Duplicate-key on the
// award insert means another request got there first; that is an idempotent
// no-op, not an error.
func (s *StreakService) awardBadge(user *model.User, badgeID uint) (*badgeDTO.UserBadgeResponse, error) {
	if user.HasBadge(badgeID) {
		return nil, nil
	}

	exists, err := s.Awards.ExistsPair(user.UserID, badgeID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check badge award")
	}
	if exists {
		// Join table has it but the cache does not: heal the cache.
		s.cacheBadge(user, badgeID)
		return nil, nil
	}

	badge, err := s.Badges.FindByID(badgeID)
	if err != nil {
		// A mapped badge missing from the catalog is a configuration error.
		// The streak update is already committed and stays.
		log.Printf("[ERROR] streak badge %d missing from catalog: %v", badgeID, err)
		return nil, nil
	}

	awardedAt := s.Now()
	if err := s.Awards.InsertPair(user.UserID, badgeID, awardedAt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.cacheBadge(user, badgeID)
			return nil, nil
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to award badge")
	}
	s.cacheBadge(user, badgeID)

	return &badgeDTO.UserBadgeResponse{
		UserID:    user.UserID,
		BadgeID:   badgeID,
		Name:      badge.Name,
		AwardedAt: awardedAt,
	}, nil
}

func (s *StreakService) cacheBadge(user *model.User, badgeID uint) {
	if user.HasBadge(badgeID) {
		return
	}
	user.AwardedBadgeIDs = append(user.AwardedBadgeIDs, int64(badgeID))
	if err := s.Users.Save(user); err != nil {
		log.Printf("[WARN] badge cache update failed: user=%d badge=%d err=%v", user.UserID, badgeID, err)
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
