package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/4rnv/safebalance/internal/models"
)

var (
	// ErrUserExists is returned when registering a duplicate phone number
	ErrUserExists = errors.New("user with this phone already exists")
	// ErrInvalidCredentials covers both unknown phone and wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Register creates a new user with a hashed password
func (s *Service) Register(ctx context.Context, user *models.User, password string) error {
	existing, err := s.store.FindUserByPhone(ctx, user.Phone)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)
	if user.RiskLevel == "" {
		user.RiskLevel = models.RiskLevelMedium
	}
	if user.Language == "" {
		user.Language = "en"
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return err
	}

	s.log.Infof("User registered: %s", user.Phone)
	return nil
}

// Login authenticates a user by phone and returns a JWT token
func (s *Service) Login(ctx context.Context, phone, password string) (string, error) {
	user, err := s.store.FindUserByPhone(ctx, phone)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Phone)
	return tokenString, nil
}
