package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/dimitrije/tasker-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 16
)

type userStore interface {
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	Create(ctx context.Context, phone, passwordHash, name string) (*models.User, error)
}

// AuthService logs users in by phone and password, registering unknown
// phones on first use.
type AuthService struct {
	users userStore
	cost  int
	now   func() time.Time
}

func NewAuthService(users *UserService) *AuthService {
	return newAuthService(users, bcrypt.DefaultCost)
}

func newAuthService(users userStore, cost int) *AuthService {
	return &AuthService{users: users, cost: cost, now: time.Now}
}

// LoginOrRegister returns the user for phone, creating it when the phone is
// unknown. The second result reports whether the user was created.
func (s *AuthService) LoginOrRegister(ctx context.Context, phone, password string) (*models.User, bool, error) {
	phone = strings.TrimSpace(phone)
	if !validPhone(phone) {
		return nil, false, ErrInvalidPhone
	}
	if n := len(password); n < minPasswordLength || n > maxPasswordLength {
		return nil, false, ErrInvalidPassword
	}

	user, err := s.users.GetByPhone(ctx, phone)
	switch {
	case err == nil:
		if user.IsBanned() {
			return nil, false, ErrUserBanned
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			return nil, false, ErrInvalidCredentials
		}
		return user, false, nil
	case errors.Is(err, ErrUserNotFound):
	default:
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	name := fmt.Sprintf("user%d", s.now().UnixMilli())
	user, err = s.users.Create(ctx, phone, string(hash), name)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func validPhone(phone string) bool {
	digits := strings.TrimPrefix(phone, "+")
	if len(digits) < 6 || len(digits) > 15 {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
