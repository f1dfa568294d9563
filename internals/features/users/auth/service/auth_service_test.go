package service

import (
	"errors"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"thinkeep_backend/internals/features/users/auth/dto"
	authModel "thinkeep_backend/internals/features/users/auth/model"
	userModel "thinkeep_backend/internals/features/users/user/model"
)

type fakeUserStore struct {
	nextID uint
	users  map[uint]*userModel.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[uint]*userModel.User{}}
}

func (f *fakeUserStore) FindByID(userID uint) (*userModel.User, error) {
	u, ok := f.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserStore) FindByNickname(nickname string) (*userModel.User, error) {
	for _, u := range f.users {
		if u.Nickname == nickname {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindByGoogleID(googleID string) (*userModel.User, error) {
	for _, u := range f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) ExistsByNickname(nickname string) (bool, error) {
	_, err := f.FindByNickname(nickname)
	return err == nil, nil
}

func (f *fakeUserStore) Create(user *userModel.User) error {
	user.UserID = f.nextID
	f.nextID++
	f.users[user.UserID] = user
	return nil
}

type fakeTokenStore struct {
	refresh     map[string]*authModel.RefreshToken
	blacklisted []string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{refresh: map[string]*authModel.RefreshToken{}}
}

func (f *fakeTokenStore) CreateRefreshToken(rt *authModel.RefreshToken) error {
	f.refresh[rt.Token] = rt
	return nil
}

func (f *fakeTokenStore) FindRefreshToken(tokenHash string) (*authModel.RefreshToken, error) {
	rt, ok := f.refresh[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rt, nil
}

func (f *fakeTokenStore) DeleteRefreshToken(tokenHash string) error {
	delete(f.refresh, tokenHash)
	return nil
}

func (f *fakeTokenStore) DeleteRefreshTokensByUser(userID uint) error {
	for hash, rt := range f.refresh {
		if rt.UserID == userID {
			delete(f.refresh, hash)
		}
	}
	return nil
}

func (f *fakeTokenStore) BlacklistToken(token string, expiredAt time.Time) error {
	f.blacklisted = append(f.blacklisted, token)
	return nil
}

type fakeVerifier struct {
	claims *GoogleClaims
	err    error
}

func (f *fakeVerifier) Verify(idToken string) (*GoogleClaims, error) {
	return f.claims, f.err
}

func newAuthFixture() (*AuthService, *fakeUserStore, *fakeTokenStore, *fakeVerifier) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	verifier := &fakeVerifier{}
	svc := NewAuthService(users, tokens, NewTokenService("test-access-secret", "test-refresh-secret"), verifier)
	return svc, users, tokens, verifier
}

func seedPasswordUser(users *fakeUserStore, nickname, password string) *userModel.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	hashed := string(hash)
	u := &userModel.User{Nickname: nickname, Password: &hashed}
	_ = users.Create(u)
	return u
}

func TestLogin_Success(t *testing.T) {
	svc, users, tokens, _ := newAuthFixture()
	seedPasswordUser(users, "mina", "supersecret123")

	res, err := svc.Login(&dto.LoginRequest{Nickname: "mina", Password: "supersecret123"}, "ua", "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, "mina", res.Nickname)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Len(t, tokens.refresh, 1)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	seedPasswordUser(users, "mina", "supersecret123")

	_, err := svc.Login(&dto.LoginRequest{Nickname: "mina", Password: "nope"}, "", "")
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnauthorized, fe.Code)
}

func TestLogin_UnknownNickname(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Login(&dto.LoginRequest{Nickname: "ghost", Password: "supersecret123"}, "", "")
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnauthorized, fe.Code)
}

func TestLogin_GoogleOnlyAccountRejectsPassword(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	googleID := "sub-1"
	_ = users.Create(&userModel.User{Nickname: "mina", GoogleID: &googleID})

	_, err := svc.Login(&dto.LoginRequest{Nickname: "mina", Password: "whatever123"}, "", "")
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnauthorized, fe.Code)
}

func TestGoogleLogin_ExistingUser(t *testing.T) {
	svc, users, _, verifier := newAuthFixture()
	googleID := "sub-1"
	_ = users.Create(&userModel.User{Nickname: "mina", GoogleID: &googleID})
	verifier.claims = &GoogleClaims{Sub: "sub-1", Name: "Mina Kim"}

	res, err := svc.GoogleLogin(&dto.GoogleLoginRequest{IDToken: "raw"}, "", "")
	require.NoError(t, err)
	assert.Equal(t, "mina", res.Nickname)
	assert.True(t, res.IsGoogleUser)
	assert.Len(t, users.users, 1)
}

func TestGoogleLogin_AutoSignup(t *testing.T) {
	svc, users, _, verifier := newAuthFixture()
	verifier.claims = &GoogleClaims{Sub: "sub-2", Name: "Mina Kim"}

	res, err := svc.GoogleLogin(&dto.GoogleLoginRequest{IDToken: "raw"}, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Mina Kim", res.Nickname)
	assert.Len(t, users.users, 1)
}

func TestGoogleLogin_AutoSignupNicknameCollision(t *testing.T) {
	svc, users, _, verifier := newAuthFixture()
	seedPasswordUser(users, "Mina Kim", "supersecret123")
	verifier.claims = &GoogleClaims{Sub: "sub-2", Name: "Mina Kim"}

	res, err := svc.GoogleLogin(&dto.GoogleLoginRequest{IDToken: "raw"}, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Mina Kim1", res.Nickname)
}

func TestGoogleLogin_InvalidToken(t *testing.T) {
	svc, _, _, verifier := newAuthFixture()
	verifier.err = errors.New("bad signature")

	_, err := svc.GoogleLogin(&dto.GoogleLoginRequest{IDToken: "raw"}, "", "")
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnauthorized, fe.Code)
}

func TestRefresh_RoundTrip(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	seedPasswordUser(users, "mina", "supersecret123")

	login, err := svc.Login(&dto.LoginRequest{Nickname: "mina", Password: "supersecret123"}, "", "")
	require.NoError(t, err)

	res, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
}

func TestRefresh_RevokedToken(t *testing.T) {
	svc, users, tokens, _ := newAuthFixture()
	seedPasswordUser(users, "mina", "supersecret123")

	login, err := svc.Login(&dto.LoginRequest{Nickname: "mina", Password: "supersecret123"}, "", "")
	require.NoError(t, err)

	// Revoke server-side; the JWT itself is still well formed.
	require.NoError(t, tokens.DeleteRefreshToken(svc.JWT.HashRefreshToken(login.RefreshToken)))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: login.RefreshToken})
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnauthorized, fe.Code)
}

func TestRefresh_GarbageToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: "not.a.jwt"})
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnauthorized, fe.Code)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	svc, users, _, _ := newAuthFixture()
	seedPasswordUser(users, "mina", "supersecret123")

	login, err := svc.Login(&dto.LoginRequest{Nickname: "mina", Password: "supersecret123"}, "", "")
	require.NoError(t, err)

	// The access token is signed with a different secret and typ.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: login.AccessToken})
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusUnauthorized, fe.Code)
}

func TestLogout_BlacklistsAndDropsRefresh(t *testing.T) {
	svc, users, tokens, _ := newAuthFixture()
	user := seedPasswordUser(users, "mina", "supersecret123")

	login, err := svc.Login(&dto.LoginRequest{Nickname: "mina", Password: "supersecret123"}, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(user.UserID, login.AccessToken, login.RefreshToken))
	assert.Contains(t, tokens.blacklisted, login.AccessToken)
	assert.Empty(t, tokens.refresh)
}

func TestLogout_WithoutRefreshTokenDropsAllSessions(t *testing.T) {
	svc, users, tokens, _ := newAuthFixture()
	user := seedPasswordUser(users, "mina", "supersecret123")

	for i := 0; i < 2; i++ {
		_, err := svc.Login(&dto.LoginRequest{Nickname: "mina", Password: "supersecret123"}, "", "")
		require.NoError(t, err)
	}
	require.Len(t, tokens.refresh, 2)

	require.NoError(t, svc.Logout(user.UserID, "", ""))
	assert.Empty(t, tokens.refresh)
}

func TestTokenService_ParseRefreshTokenSubject(t *testing.T) {
	ts := NewTokenService("a-secret", "r-secret")

	token, err := ts.IssueRefreshToken(42)
	require.NoError(t, err)

	userID, err := ts.ParseRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestTokenService_HashIsDeterministic(t *testing.T) {
	ts := NewTokenService("a-secret", "r-secret")

	h1 := ts.HashRefreshToken("tok")
	h2 := ts.HashRefreshToken("tok")
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, ts.HashRefreshToken("other"))
}
