package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// userService handles identity persistence.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser persists a new user with an auto-assigned ID. The username must
// not already exist; usernames are matched exactly, case included.
func (s *userService) CreateUser(username, passwordHash string) (*models.User, error) {
	if username == "" || passwordHash == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username and password hash are required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}

	if err := s.db.Create(user).Error; err != nil {
		// The unique index backs up the pre-check if another writer won the race.
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return user, nil
}

// GetUserByUsername retrieves a user by exact, case-sensitive username match.
func (s *userService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}
	return &user, nil
}
