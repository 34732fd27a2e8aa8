package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/knowledge-base-api/internal/models"
	"github.com/knowledge-base-api/internal/service"
)

func TestRegisterAndLogin(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	user, token, err := h.services.Auth.Register(ctx, &models.RegisterInput{
		Email:    "Staff@Example.com",
		Password: "secret123",
		Name:     "Staff Member",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("Role = %q, want %q", user.Role, models.RoleUser)
	}
	if user.PasswordHash == "secret123" {
		t.Error("password stored in plaintext")
	}
	if token == "" {
		t.Error("Register() returned empty token")
	}

	claims, err := h.services.Auth.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != user.ID || claims.Role != models.RoleUser {
		t.Errorf("claims = %+v", claims)
	}

	// login is case-insensitive on email
	loggedIn, loginToken, err := h.services.Auth.Login(ctx, &models.LoginInput{
		Email:    "staff@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("Login() returned user %d, want %d", loggedIn.ID, user.ID)
	}
	if loginToken == "" {
		t.Error("Login() returned empty token")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	input := &models.RegisterInput{Email: "staff@example.com", Password: "secret123", Name: "First"}
	if _, _, err := h.services.Auth.Register(ctx, input); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, _, err := h.services.Auth.Register(ctx, &models.RegisterInput{
		Email: "staff@example.com", Password: "other-secret", Name: "Second",
	})
	if !errors.Is(err, service.ErrDuplicate) {
		t.Errorf("Register() error = %v, want ErrDuplicate", err)
	}
}

func TestLoginFailures(t *testing.T) {
	h := newTestHarness(t)
	ctx := context.Background()

	if _, _, err := h.services.Auth.Register(ctx, &models.RegisterInput{
		Email: "staff@example.com", Password: "secret123", Name: "Staff",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name  string
		input *models.LoginInput
	}{
		{"wrong password", &models.LoginInput{Email: "staff@example.com", Password: "wrong"}},
		{"unknown email", &models.LoginInput{Email: "nobody@example.com", Password: "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := h.services.Auth.Login(ctx, tt.input)
			// both failures look identical to the caller
			if !errors.Is(err, service.ErrBadCredentials) {
				t.Errorf("Login() error = %v, want ErrBadCredentials", err)
			}
		})
	}
}
