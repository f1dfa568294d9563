package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"thinkeep_backend/internals/features/users/auth/dto"
	authModel "thinkeep_backend/internals/features/users/auth/model"
	userModel "thinkeep_backend/internals/features/users/user/model"
)

// GoogleClaims is the subset of a verified Google ID token the login flow
// needs.
type GoogleClaims struct {
	Sub   string
	Email string
	Name  string
}

// GoogleVerifier validates a raw ID token and returns its claims.
type GoogleVerifier interface {
	Verify(idToken string) (*GoogleClaims, error)
}

// googleIDTokenVerifier checks the token against Google's public keys and the
// configured OAuth client id.
type googleIDTokenVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleIDTokenVerifier{clientID: clientID}
}

func (g *googleIDTokenVerifier) Verify(idToken string) (*GoogleClaims, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{g.clientID}); err != nil {
		return nil, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, err
	}
	return &GoogleClaims{Sub: claimSet.Sub, Email: claimSet.Email, Name: claimSet.Name}, nil
}

// AuthUserStore is the user store surface the auth flows need.
type AuthUserStore interface {
	FindByID(userID uint) (*userModel.User, error)
	FindByNickname(nickname string) (*userModel.User, error)
	FindByGoogleID(googleID string) (*userModel.User, error)
	ExistsByNickname(nickname string) (bool, error)
	Create(user *userModel.User) error
}

// TokenStore persists refresh tokens and the logout blacklist.
type TokenStore interface {
	CreateRefreshToken(rt *authModel.RefreshToken) error
	FindRefreshToken(tokenHash string) (*authModel.RefreshToken, error)
	DeleteRefreshToken(tokenHash string) error
	DeleteRefreshTokensByUser(userID uint) error
	BlacklistToken(token string, expiredAt time.Time) error
}

type AuthService struct {
	Users    AuthUserStore
	Tokens   TokenStore
	JWT      *TokenService
	Verifier GoogleVerifier
	Now      func() time.Time
}

func NewAuthService(users AuthUserStore, tokens TokenStore, jwtSvc *TokenService, verifier GoogleVerifier) *AuthService {
	return &AuthService{
		Users:    users,
		Tokens:   tokens,
		JWT:      jwtSvc,
		Verifier: verifier,
		Now:      time.Now,
	}
}

// Login authenticates a nickname/password pair and issues a token pair.
func (s *AuthService) Login(req *dto.LoginRequest, userAgent, ip string) (*dto.LoginResponse, error) {
	user, err := s.Users.FindByNickname(strings.TrimSpace(req.Nickname))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid nickname or password")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}
	if user.Password == nil {
		// google-only account
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid nickname or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid nickname or password")
	}
	return s.issueTokens(user, userAgent, ip)
}

// GoogleLogin verifies a Google ID token and logs the account in, creating it
// on first contact.
func (s *AuthService) GoogleLogin(req *dto.GoogleLoginRequest, userAgent, ip string) (*dto.LoginResponse, error) {
	claims, err := s.Verifier.Verify(req.IDToken)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid Google ID token")
	}

	user, err := s.Users.FindByGoogleID(claims.Sub)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
		}
		user, err = s.signupGoogleUser(claims, req.Nickname)
		if err != nil {
			return nil, err
		}
	}
	return s.issueTokens(user, userAgent, ip)
}

func (s *AuthService) signupGoogleUser(claims *GoogleClaims, requested *string) (*userModel.User, error) {
	nickname := ""
	if requested != nil {
		nickname = strings.TrimSpace(*requested)
	}
	if nickname == "" {
		nickname = strings.TrimSpace(claims.Name)
	}
	if nickname == "" {
		nickname = "user"
	}

	nickname, err := s.uniqueNickname(nickname)
	if err != nil {
		return nil, err
	}

	googleID := claims.Sub
	user := &userModel.User{
		Nickname: nickname,
		GoogleID: &googleID,
	}
	if err := s.Users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "Account already exists")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create Google user")
	}
	log.Printf("[INFO] google signup: user=%d nickname=%s", user.UserID, user.Nickname)
	return user, nil
}

// uniqueNickname appends a numeric suffix until the nickname is free.
func (s *AuthService) uniqueNickname(base string) (string, error) {
	candidate := base
	for i := 1; i <= 50; i++ {
		taken, err := s.Users.ExistsByNickname(candidate)
		if err != nil {
			return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to check nickname")
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, i)
	}
	return "", fiber.NewError(fiber.StatusConflict, "Could not find a free nickname")
}

func (s *AuthService) issueTokens(user *userModel.User, userAgent, ip string) (*dto.LoginResponse, error) {
	accessToken, err := s.JWT.IssueAccessToken(user.UserID, user.Nickname)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to sign access token")
	}
	refreshToken, err := s.JWT.IssueRefreshToken(user.UserID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to sign refresh token")
	}

	rt := &authModel.RefreshToken{
		UserID:    user.UserID,
		Token:     s.JWT.HashRefreshToken(refreshToken),
		ExpiresAt: s.Now().UTC().Add(s.JWT.RefreshTTL),
		UserAgent: strptr(userAgent),
		IP:        strptr(ip),
	}
	if err := s.Tokens.CreateRefreshToken(rt); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	log.Printf("[INFO] login: user=%d nickname=%s", user.UserID, user.Nickname)
	return &dto.LoginResponse{
		UserID:       user.UserID,
		Nickname:     user.Nickname,
		IsGoogleUser: user.IsGoogleUser(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.JWT.AccessTTL.Seconds()),
	}, nil
}

// Refresh validates a refresh token against the store and issues a fresh
// access token. The stored row must exist and be unexpired; a token that
// parses but is missing from the store was rotated or revoked.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.RefreshResponse, error) {
	userID, err := s.JWT.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}

	hash := s.JWT.HashRefreshToken(req.RefreshToken)
	stored, err := s.Tokens.FindRefreshToken(hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token revoked")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to verify refresh token")
	}
	if stored.UserID != userID {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token mismatch")
	}
	if s.Now().After(stored.ExpiresAt) {
		_ = s.Tokens.DeleteRefreshToken(hash)
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Refresh token expired")
	}

	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "User no longer exists")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}

	accessToken, err := s.JWT.IssueAccessToken(user.UserID, user.Nickname)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to sign access token")
	}
	return &dto.RefreshResponse{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.JWT.AccessTTL.Seconds()),
	}, nil
}

// Logout blacklists the current access token for its remaining lifetime and
// drops the refresh token if one was presented. Idempotent.
func (s *AuthService) Logout(userID uint, accessToken, refreshToken string) error {
	if accessToken != "" {
		ttl := s.JWT.AccessTokenRemaining(accessToken)
		if err := s.Tokens.BlacklistToken(accessToken, s.Now().Add(ttl)); err != nil {
			log.Printf("[WARN] failed to blacklist token: %v", err)
		}
	}
	if refreshToken != "" {
		_ = s.Tokens.DeleteRefreshToken(s.JWT.HashRefreshToken(refreshToken))
	} else {
		_ = s.Tokens.DeleteRefreshTokensByUser(userID)
	}
	log.Printf("[INFO] logout: user=%d", userID)
	return nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
