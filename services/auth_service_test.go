package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

func newAuthServiceForTest(t *testing.T, password, jwtSecret string) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt hash: %v", err)
	}
	return NewAuthService(string(hash), jwtSecret)
}

func TestAdminLoginIssuesAdminToken(t *testing.T) {
	const secret = "test-secret"
	svc := newAuthServiceForTest(t, "txapela", secret)

	signed, err := svc.AdminLogin(context.Background(), "txapela")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != "admin" {
		t.Errorf("role claim = %v, want admin", claims["role"])
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatalf("exp claim missing: %v", claims["exp"])
	}
	ttl := time.Until(time.Unix(int64(exp), 0))
	if ttl < 11*time.Hour || ttl > 13*time.Hour {
		t.Errorf("token ttl = %s, want about 12h", ttl)
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	svc := newAuthServiceForTest(t, "txapela", "test-secret")

	_, err := svc.AdminLogin(context.Background(), "boina")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want %v", err, ErrInvalidCredentials)
	}
}

func TestAdminLoginEmptyPassword(t *testing.T) {
	svc := newAuthServiceForTest(t, "txapela", "test-secret")

	_, err := svc.AdminLogin(context.Background(), "")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want %v", err, ErrInvalidCredentials)
	}
}
