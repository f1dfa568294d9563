package service

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"thinkeep_backend/internals/features/badges/badge/model"
)

type fakeCatalog struct {
	badges map[uint]*model.Badge
	nextID uint
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{badges: make(map[uint]*model.Badge), nextID: 1}
}

func (f *fakeCatalog) FindByID(badgeID uint) (*model.Badge, error) {
	b, ok := f.badges[badgeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeCatalog) FindAll() ([]model.Badge, error) {
	out := make([]model.Badge, 0, len(f.badges))
	for id := uint(1); id < f.nextID; id++ {
		if b, ok := f.badges[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeCatalog) Create(badge *model.Badge) error {
	badge.BadgeID = f.nextID
	f.nextID++
	cp := *badge
	f.badges[badge.BadgeID] = &cp
	return nil
}

func (f *fakeCatalog) Save(badge *model.Badge) error {
	cp := *badge
	f.badges[badge.BadgeID] = &cp
	return nil
}

func (f *fakeCatalog) Delete(badgeID uint) error {
	if _, ok := f.badges[badgeID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.badges, badgeID)
	return nil
}

type fakeAwards struct {
	rows []model.UserBadge
}

func (f *fakeAwards) InsertPair(userID, badgeID uint, awardedAt time.Time) error {
	for _, r := range f.rows {
		if r.UserID == userID && r.BadgeID == badgeID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.rows = append(f.rows, model.UserBadge{UserID: userID, BadgeID: badgeID, AwardedAt: awardedAt})
	return nil
}

func (f *fakeAwards) FindByUser(userID uint) ([]model.UserBadge, error) {
	var out []model.UserBadge
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func newBadgeTestService() (*BadgeService, *fakeCatalog, *fakeAwards) {
	catalog := newFakeCatalog()
	awards := &fakeAwards{}
	svc := NewBadgeService(catalog, awards)
	svc.Now = func() time.Time {
		return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)
	}
	return svc, catalog, awards
}

func TestAssignBadge_Success(t *testing.T) {
	svc, catalog, awards := newBadgeTestService()
	require.NoError(t, catalog.Create(&model.Badge{Name: "작심삼일 극복"}))

	award, err := svc.AssignBadge(7, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(7), award.UserID)
	assert.Equal(t, uint(1), award.BadgeID)
	assert.Equal(t, "작심삼일 극복", award.Name)
	require.Len(t, awards.rows, 1)
}

func TestAssignBadge_DuplicateConflicts(t *testing.T) {
	svc, catalog, _ := newBadgeTestService()
	require.NoError(t, catalog.Create(&model.Badge{Name: "작심삼일 극복"}))

	_, err := svc.AssignBadge(7, 1)
	require.NoError(t, err)

	_, err = svc.AssignBadge(7, 1)
	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestAssignBadge_UnknownBadge(t *testing.T) {
	svc, _, awards := newBadgeTestService()

	_, err := svc.AssignBadge(7, 99)
	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
	assert.Empty(t, awards.rows)
}

func TestGetUserBadges_JoinsCatalogNames(t *testing.T) {
	svc, catalog, awards := newBadgeTestService()
	require.NoError(t, catalog.Create(&model.Badge{Name: "작심삼일 극복"}))
	require.NoError(t, catalog.Create(&model.Badge{Name: "일주일의 기록"}))

	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, awards.InsertPair(7, 1, base))
	require.NoError(t, awards.InsertPair(7, 2, base.AddDate(0, 0, 4)))
	require.NoError(t, awards.InsertPair(8, 1, base))

	out, err := svc.GetUserBadges(7)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "작심삼일 극복", out[0].Name)
	assert.Equal(t, "일주일의 기록", out[1].Name)
}

func TestDeleteBadge_NotFound(t *testing.T) {
	svc, _, _ := newBadgeTestService()

	err := svc.DeleteBadge(42)
	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}
