package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"thinkeep_backend/internals/features/users/user/dto"
	"thinkeep_backend/internals/features/users/user/model"
)

type fakeUserRepo struct {
	nextID uint
	users  map[uint]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[uint]*model.User{}}
}

func (f *fakeUserRepo) FindByID(userID uint) (*model.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Save(user *model.User) error {
	f.users[user.UserID] = user
	return nil
}

func (f *fakeUserRepo) FindByNickname(nickname string) (*model.User, error) {
	for _, u := range f.users {
		if u.Nickname == nickname {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ExistsByNickname(nickname string) (bool, error) {
	_, err := f.FindByNickname(nickname)
	return err == nil, nil
}

func (f *fakeUserRepo) ExistsByGoogleID(googleID string) (bool, error) {
	for _, u := range f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) FindAll() ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Create(user *model.User) error {
	if taken, _ := f.ExistsByNickname(user.Nickname); taken {
		return gorm.ErrDuplicatedKey
	}
	user.UserID = f.nextID
	f.nextID++
	f.users[user.UserID] = user
	return nil
}

func (f *fakeUserRepo) Delete(userID uint) error {
	if _, ok := f.users[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, userID)
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreateUser_PasswordMode(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	res, err := svc.CreateUser(&dto.CreateUserRequest{
		Nickname: "mina",
		Password: strPtr("supersecret123"),
	})
	require.NoError(t, err)
	assert.Equal(t, "mina", res.Nickname)
	assert.False(t, res.IsGoogleUser)

	stored := repo.users[res.UserID]
	require.NotNil(t, stored.Password)
	assert.NotEqual(t, "supersecret123", *stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.Password), []byte("supersecret123")))
}

func TestCreateUser_GoogleMode(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	res, err := svc.CreateUser(&dto.CreateUserRequest{
		Nickname: "mina",
		GoogleID: strPtr("google-sub-123"),
	})
	require.NoError(t, err)
	assert.True(t, res.IsGoogleUser)
}

func TestCreateUser_ExactlyOneModeRequired(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	// Neither mode.
	_, err := svc.CreateUser(&dto.CreateUserRequest{Nickname: "mina"})
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)

	// Both modes.
	_, err = svc.CreateUser(&dto.CreateUserRequest{
		Nickname: "mina",
		Password: strPtr("supersecret123"),
		GoogleID: strPtr("google-sub-123"),
	})
	fe, ok = err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
}

func TestCreateUser_NicknameConflict(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.CreateUser(&dto.CreateUserRequest{Nickname: "mina", Password: strPtr("supersecret123")})
	require.NoError(t, err)

	_, err = svc.CreateUser(&dto.CreateUserRequest{Nickname: "mina", Password: strPtr("othersecret456")})
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestCreateUser_GoogleIDConflict(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.CreateUser(&dto.CreateUserRequest{Nickname: "mina", GoogleID: strPtr("sub-1")})
	require.NoError(t, err)

	_, err = svc.CreateUser(&dto.CreateUserRequest{Nickname: "jina", GoogleID: strPtr("sub-1")})
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestCreateUser_InvalidBirthDate(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.CreateUser(&dto.CreateUserRequest{
		Nickname:  "mina",
		Password:  strPtr("supersecret123"),
		BirthDate: strPtr("31-08-2026"),
	})
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
}

func TestUpdateUser_GoogleUserCannotSetPassword(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	res, err := svc.CreateUser(&dto.CreateUserRequest{Nickname: "mina", GoogleID: strPtr("sub-1")})
	require.NoError(t, err)

	_, err = svc.UpdateUser(res.UserID, &dto.UpdateUserRequest{Password: strPtr("newsecret123")})
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
}

func TestUpdateUser_PartialFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	res, err := svc.CreateUser(&dto.CreateUserRequest{Nickname: "mina", Password: strPtr("supersecret123")})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(res.UserID, &dto.UpdateUserRequest{
		Gender:    strPtr("female"),
		BirthDate: strPtr("1955-03-02"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Gender)
	assert.Equal(t, "female", *updated.Gender)
	require.NotNil(t, repo.users[res.UserID].BirthDate)
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	err := svc.DeleteUser(99)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)
}

func TestGetStreak(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	res, err := svc.CreateUser(&dto.CreateUserRequest{Nickname: "mina", Password: strPtr("supersecret123")})
	require.NoError(t, err)
	repo.users[res.UserID].StreakCount = 7

	streak, err := svc.GetStreak(res.UserID)
	require.NoError(t, err)
	assert.Equal(t, 7, streak.StreakCount)
}
