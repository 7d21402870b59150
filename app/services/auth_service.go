package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/micromarket/app/models"
	"github.com/shashiranjanraj/micromarket/pkg/apperr"
	"github.com/shashiranjanraj/micromarket/pkg/auth"
)

// AuthService registers accounts and exchanges credentials for tokens.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Register creates an account and returns a signed token for it.
// Fails with Conflict when the email is already taken.
func (s *AuthService) Register(email, password, name string) (string, models.User, error) {
	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return "", models.User{}, apperr.New(apperr.Conflict, "User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", models.User{}, apperr.Wrap(apperr.Internal, "look up user", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", models.User{}, apperr.Wrap(apperr.Internal, "hash password", err)
	}

	user := models.User{Email: email, Password: hash, Name: name}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent registration for the same email.
			return "", models.User{}, apperr.New(apperr.Conflict, "User already exists")
		}
		return "", models.User{}, apperr.Wrap(apperr.Internal, "create user", err)
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return "", models.User{}, apperr.Wrap(apperr.Internal, "sign token", err)
	}

	return token, user, nil
}

// Login verifies credentials and returns a signed token. Unknown email and
// wrong password produce the same Unauthorized message so callers cannot
// enumerate accounts.
func (s *AuthService) Login(email, password string) (string, models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.User{}, apperr.New(apperr.Unauthorized, "Invalid credentials")
		}
		return "", models.User{}, apperr.Wrap(apperr.Internal, "look up user", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, apperr.New(apperr.Unauthorized, "Invalid credentials")
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return "", models.User{}, apperr.Wrap(apperr.Internal, "sign token", err)
	}

	return token, user, nil
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(userID uint) (models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.New(apperr.Unauthorized, "Unauthorized")
		}
		return models.User{}, apperr.Wrap(apperr.Internal, "load user", err)
	}
	return user, nil
}
