package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"thinkeep_backend/internals/features/badges/badge/dto"
	"thinkeep_backend/internals/features/badges/badge/model"
)

// CatalogStore is the badge catalog surface.
type CatalogStore interface {
	FindByID(badgeID uint) (*model.Badge, error)
	FindAll() ([]model.Badge, error)
	Create(badge *model.Badge) error
	Save(badge *model.Badge) error
	Delete(badgeID uint) error
}

// AwardStore reads and writes the user_badges join table.
type AwardStore interface {
	InsertPair(userID, badgeID uint, awardedAt time.Time) error
	FindByUser(userID uint) ([]model.UserBadge, error)
}

type BadgeService struct {
	Catalog CatalogStore
	Awards  AwardStore
	Now     func() time.Time
}

func NewBadgeService(catalog CatalogStore, awards AwardStore) *BadgeService {
	return &BadgeService{Catalog: catalog, Awards: awards, Now: time.Now}
}

func (s *BadgeService) ListBadges() ([]dto.BadgeResponse, error) {
	badges, err := s.Catalog.FindAll()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load badges")
	}
	out := make([]dto.BadgeResponse, 0, len(badges))
	for i := range badges {
		out = append(out, dto.ToBadgeResponse(&badges[i]))
	}
	return out, nil
}

func (s *BadgeService) GetBadge(badgeID uint) (*dto.BadgeResponse, error) {
	badge, err := s.Catalog.FindByID(badgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Badge not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load badge")
	}
	resp := dto.ToBadgeResponse(badge)
	return &resp, nil
}

func (s *BadgeService) CreateBadge(req *dto.BadgeRequest) (*dto.BadgeResponse, error) {
	badge := &model.Badge{
		Name:          req.Name,
		Description:   req.Description,
		ConditionJSON: req.ConditionJSON,
	}
	if err := s.Catalog.Create(badge); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "Badge already exists")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create badge")
	}
	resp := dto.ToBadgeResponse(badge)
	return &resp, nil
}

func (s *BadgeService) UpdateBadge(badgeID uint, req *dto.BadgeRequest) (*dto.BadgeResponse, error) {
	badge, err := s.Catalog.FindByID(badgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Badge not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load badge")
	}
	badge.Name = req.Name
	badge.Description = req.Description
	badge.ConditionJSON = req.ConditionJSON
	if err := s.Catalog.Save(badge); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to update badge")
	}
	resp := dto.ToBadgeResponse(badge)
	return &resp, nil
}

func (s *BadgeService) DeleteBadge(badgeID uint) error {
	if err := s.Catalog.Delete(badgeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Badge not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete badge")
	}
	return nil
}

// AssignBadge grants a catalog badge to a user outside the streak engine.
func (s *BadgeService) AssignBadge(userID, badgeID uint) (*dto.UserBadgeResponse, error) {
	badge, err := s.Catalog.FindByID(badgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Badge not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load badge")
	}

	awardedAt := s.Now()
	if err := s.Awards.InsertPair(userID, badgeID, awardedAt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "Badge already assigned to this user")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to assign badge")
	}

	return &dto.UserBadgeResponse{
		UserID:    userID,
		BadgeID:   badgeID,
		Name:      badge.Name,
		AwardedAt: awardedAt,
	}, nil
}

// GetUserBadges lists a user's awards joined with the catalog names, oldest
// first.
func (s *BadgeService) GetUserBadges(userID uint) ([]dto.UserBadgeResponse, error) {
	awards, err := s.Awards.FindByUser(userID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user badges")
	}

	catalog, err := s.Catalog.FindAll()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load badges")
	}
	names := make(map[uint]string, len(catalog))
	for i := range catalog {
		names[catalog[i].BadgeID] = catalog[i].Name
	}

	out := make([]dto.UserBadgeResponse, 0, len(awards))
	for _, a := range awards {
		out = append(out, dto.UserBadgeResponse{
			UserID:    a.UserID,
			BadgeID:   a.BadgeID,
			Name:      names[a.BadgeID],
			AwardedAt: a.AwardedAt,
		})
	}
	return out, nil
}
