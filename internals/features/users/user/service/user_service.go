package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"thinkeep_backend/internals/features/users/user/dto"
	"thinkeep_backend/internals/features/users/user/model"
)

// UserRepo is the full user store surface the CRUD service needs.
type UserRepo interface {
	UserStore
	FindByNickname(nickname string) (*model.User, error)
	ExistsByNickname(nickname string) (bool, error)
	ExistsByGoogleID(googleID string) (bool, error)
	FindAll() ([]model.User, error)
	Create(user *model.User) error
	Delete(userID uint) error
}

type UserService struct {
	Users UserRepo
}

func NewUserService(users UserRepo) *UserService {
	return &UserService{Users: users}
}

// CreateUser registers a new account. Exactly one signup mode must be used:
// password (hashed here) or external Google identity.
func (s *UserService) CreateUser(req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	hasPassword := req.Password != nil && strings.TrimSpace(*req.Password) != ""
	hasGoogle := req.GoogleID != nil && strings.TrimSpace(*req.GoogleID) != ""
	if hasPassword == hasGoogle {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
			"Exactly one of password or google_id is required")
	}

	taken, err := s.Users.ExistsByNickname(req.Nickname)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check nickname")
	}
	if taken {
		return nil, fiber.NewError(fiber.StatusConflict, "Nickname is already in use")
	}
	if hasGoogle {
		linked, err := s.Users.ExistsByGoogleID(*req.GoogleID)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to check google account")
		}
		if linked {
			return nil, fiber.NewError(fiber.StatusConflict, "Google account is already registered")
		}
	}

	user := model.User{
		Nickname:     req.Nickname,
		GoogleID:     req.GoogleID,
		ProfileImage: req.ProfileImage,
		Gender:       req.Gender,
		StreakCount:  0,
	}
	if hasPassword {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
		}
		hashed := string(hash)
		user.Password = &hashed
	}
	if req.BirthDate != nil {
		bd, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid birth_date")
		}
		user.BirthDate = &bd
	}

	if err := s.Users.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fiber.NewError(fiber.StatusConflict, "Nickname is already in use")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}

	log.Printf("[INFO] user created: id=%d nickname=%s", user.UserID, user.Nickname)
	resp := dto.ToUserResponse(&user)
	return &resp, nil
}

func (s *UserService) GetUser(userID uint) (*dto.UserResponse, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) GetUserByNickname(nickname string) (*dto.UserResponse, error) {
	user, err := s.Users.FindByNickname(nickname)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) ListUsers() ([]dto.UserResponse, error) {
	users, err := s.Users.FindAll()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to list users")
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.ToUserResponse(&users[i]))
	}
	return out, nil
}

func (s *UserService) UpdateUser(userID uint, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}

	if req.ProfileImage != nil {
		user.ProfileImage = req.ProfileImage
	}
	if req.Gender != nil {
		user.Gender = req.Gender
	}
	if req.BirthDate != nil {
		bd, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid birth_date")
		}
		user.BirthDate = &bd
	}
	// Google-mode accounts have no password to change.
	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		if user.IsGoogleUser() {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity,
				"Google accounts cannot set a password")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
		}
		hashed := string(hash)
		user.Password = &hashed
	}

	if err := s.Users.Save(user); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to update user")
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *UserService) DeleteUser(userID uint) error {
	if err := s.Users.Delete(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete user")
	}
	log.Printf("[INFO] user deleted: id=%d", userID)
	return nil
}

func (s *UserService) GetStreak(userID uint) (*dto.StreakCountResponse, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load user")
	}
	return &dto.StreakCountResponse{
		UserID:         user.UserID,
		StreakCount:    user.StreakCount,
		LastRecordDate: user.LastRecordDate,
	}, nil
}
