package services

import (
	"errors"
	"strings"
	"unicode"

	"github.com/keeptrack-dev/keeptrack/internal/apperr"
	"github.com/keeptrack-dev/keeptrack/internal/auth"
	"github.com/keeptrack-dev/keeptrack/internal/models"
	"github.com/keeptrack-dev/keeptrack/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles registration, login and the current-user lookup.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Register creates the account and issues a token in one step.
func (s *AuthService) Register(input RegisterInput) (*types.UserResponse, string, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if len(name) < 2 || len(name) > 100 {
		return nil, "", apperr.Validation("Name must be between 2 and 100 characters")
	}

	if err := validatePassword(input.Password); err != nil {
		return nil, "", err
	}

	var existing models.User

	err := s.db.Where("email = ?", email).First(&existing).Error

	if err == nil {
		return nil, "", apperr.Conflict("Email already exists")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperr.Internal("Failed to check existing user", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)

	if err != nil {
		return nil, "", apperr.Internal("Failed to hash password", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, "", apperr.Internal("Failed to create user", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Email)

	if err != nil {
		return nil, "", apperr.Internal("Failed to generate token", err)
	}

	return userResponse(&user), token, nil
}

// Login answers one uniform error for an unknown email and a wrong password,
// so responses never confirm whether an account exists.
func (s *AuthService) Login(input LoginInput) (*types.UserResponse, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var user models.User

	err := s.db.Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Unauthorized("Invalid email or password")
		}
		return nil, "", apperr.Internal("Failed to fetch user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", apperr.Unauthorized("Invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID, user.Email)

	if err != nil {
		return nil, "", apperr.Internal("Failed to generate token", err)
	}

	return userResponse(&user), token, nil
}

// CurrentUser re-fetches the token's subject. A row deleted after the token
// was issued comes back as not-found.
func (s *AuthService) CurrentUser(userID uint) (*types.UserResponse, error) {
	var user models.User

	err := s.db.First(&user, userID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, apperr.Internal("Failed to fetch user", err)
	}

	return userResponse(&user), nil
}

// validatePassword keeps the registration rules: at least 6 characters with a
// lowercase letter, an uppercase letter and a digit.
func validatePassword(password string) error {
	if len(password) < 6 {
		return apperr.Validation("Password must be at least 6 characters")
	}

	var hasLower, hasUpper, hasDigit bool

	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLower || !hasUpper || !hasDigit {
		return apperr.Validation("Password must contain a lowercase letter, an uppercase letter and a digit")
	}

	return nil
}

func userResponse(user *models.User) *types.UserResponse {
	return &types.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
