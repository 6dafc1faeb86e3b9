package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenTTL = 12 * time.Hour

// AuthService exchanges the shared admin password for a signed token.
type AuthService interface {
	AdminLogin(ctx context.Context, password string) (string, error)
}

type authService struct {
	adminPasswordHash []byte
	jwtSecret         []byte
	now               func() time.Time
}

func NewAuthService(adminPasswordHash, jwtSecret string) AuthService {
	return &authService{
		adminPasswordHash: []byte(adminPasswordHash),
		jwtSecret:         []byte(jwtSecret),
		now:               time.Now,
	}
}

func (s *authService) AdminLogin(ctx context.Context, password string) (string, error) {
	err := bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to verify admin password: %w", err)
	}

	now := s.now()
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(adminTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}
	return signed, nil
}
