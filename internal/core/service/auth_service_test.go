package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lunchvote/voting-api/internal/core/domain"
	"github.com/lunchvote/voting-api/internal/core/ports"
)

func registerUser(t *testing.T, repo *stubUserRepo, in ports.CreateUserInput) *domain.User {
	t.Helper()
	users := NewUserService(repo, &countingCache{}, discardLogger)
	u, err := users.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	created := registerUser(t, repo, ports.CreateUserInput{
		Name: "Carol", Email: "carol@example.com", Password: "s3cret", Roles: []string{domain.RoleAdmin}, Enabled: true,
	})

	token, user, err := svc.Login(context.Background(), "Carol@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.ID != created.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != created.ID {
		t.Fatalf("expected sub %s, got %v", created.ID, claims["sub"])
	}
	roles, ok := claims["roles"].([]interface{})
	if !ok || len(roles) != 1 || roles[0] != domain.RoleAdmin {
		t.Fatalf("unexpected roles claim: %v", claims["roles"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	registerUser(t, repo, ports.CreateUserInput{Name: "Dave", Email: "dave@example.com", Password: "goodpass", Enabled: true})
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Disabled(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, discardLogger)

	registerUser(t, repo, ports.CreateUserInput{Name: "Eve", Email: "eve@example.com", Password: "password", Enabled: false})
	if _, _, err := svc.Login(context.Background(), "eve@example.com", "password"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), "secret", time.Hour, discardLogger)

	if _, _, err := svc.Login(context.Background(), "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
