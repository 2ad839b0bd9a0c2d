package services

import (
	"errors"

	"github.com/google/uuid"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/models"
	"fintrack/internal/validator"
)

// authService orchestrates identity lookups with credential verification.
// It holds no state beyond the store it wraps.
type authService struct {
	users  UserServicer
	hasher PasswordHasher
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(users UserServicer, hasher PasswordHasher) AuthServicer {
	return &authService{users: users, hasher: hasher}
}

// signUpInput carries the validation rules for new accounts. Passwords must be
// at least six characters.
type signUpInput struct {
	Username string `validate:"required,max=255"`
	Password string `validate:"required,min=6,max=128"`
}

// Authenticate returns the user iff the username exists and the password
// matches the stored hash. Unknown usernames and wrong passwords share a
// single return path and both pay the cost of a hash verification.
func (s *authService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Verify against an empty hash so a miss here is not observably
			// faster than a wrong password.
			s.hasher.Verify(password, "")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	logger.Get().Infow("session established",
		"session_id", uuid.New().String(),
		"user_id", user.ID,
		"username", user.Username,
	)
	return user, nil
}

// SignUp registers a new user. The username is checked for existence before
// the password is hashed so a duplicate costs no key-derivation work.
func (s *authService) SignUp(username, password string) (*models.User, error) {
	input := signUpInput{Username: username, Password: password}
	if err := validator.Struct(input); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username is required and password must be at least 6 characters")
	}

	_, err := s.users.GetUserByUsername(username)
	if err == nil {
		return nil, apperrors.ErrDuplicateUsername
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, err)
	}

	return s.users.CreateUser(username, hash)
}
