package handler

import (
	"errors"
	"strings"
	"testing"

	"github.com/lunchvote/voting-api/internal/core/domain"
)

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	err := NewValidator().Validate(&dishRequest{Name: "Soup", Date: "02.03.2026"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	for _, want := range []string{"date must be a YYYY-MM-DD date", "price is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestValidator_Roles(t *testing.T) {
	v := NewValidator()
	ok := &userRequest{Name: "Ann", Email: "ann@example.com", Roles: []string{domain.RoleUser, domain.RoleAdmin}}
	if err := v.Validate(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := &userRequest{Name: "Ann", Email: "ann@example.com", Roles: []string{"ROLE_ROOT"}}
	err := v.Validate(bad)
	if !errors.Is(err, domain.ErrValidation) || !strings.Contains(err.Error(), "ROLE_ROOT") {
		t.Fatalf("expected unknown role error, got %v", err)
	}
}

func TestValidator_PasswordOptionalOnUpdate(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(&userRequest{Name: "Ann", Email: "ann@example.com"}); err != nil {
		t.Fatalf("empty password must be allowed: %v", err)
	}
	err := v.Validate(&userRequest{Name: "Ann", Email: "ann@example.com", Password: "abc"})
	if err == nil || !strings.Contains(err.Error(), "password must be at least 5") {
		t.Fatalf("expected short password error, got %v", err)
	}
}

func TestValidator_ProfileFormat(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(&profileRequest{Name: "Ann", Email: "ann@example.com", Password: "secret"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := v.Validate(&profileRequest{Name: "Ann", Email: "not-an-email", Password: "abc"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	for _, want := range []string{"email must be a valid email", "password must be at least 5 characters"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}
