package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/certchain/certificate-system/internal/core/domain"
	"github.com/certchain/certificate-system/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, code, password string, role domain.Role) *domain.User {
	t.Helper()
	svc := NewUserService(repo, discardLogger)
	u, err := svc.Create(context.Background(), ports.CreateUserInput{Code: code, Name: code + " name", Role: role, Password: password})
	if err != nil {
		t.Fatalf("seed user %s: %v", code, err)
	}
	return u
}

func TestAuthService_SignIn_Success(t *testing.T) {
	repo := newStubUserRepo()
	seeded := seedUser(t, repo, "S001", "pw", domain.RoleStudent)
	svc := NewAuthService(repo, "secret", time.Hour)

	token, user, err := svc.SignIn(context.Background(), "S001", "pw")
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Code != "S001" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != seeded.ID {
		t.Fatalf("expected sub %s, got %v", seeded.ID, claims["sub"])
	}
	if claims["role"] != string(domain.RoleStudent) {
		t.Fatalf("expected role %s, got %v", domain.RoleStudent, claims["role"])
	}
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, "S001", "pw", domain.RoleStudent)
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.SignIn(context.Background(), "S001", "nope"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SignIn_UnknownCode(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour)

	if _, _, err := svc.SignIn(context.Background(), "ghost", "pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SignIn_EmptyCredentials(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour)

	if _, _, err := svc.SignIn(context.Background(), "", "pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty code, got %v", err)
	}
	if _, _, err := svc.SignIn(context.Background(), "S001", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}
