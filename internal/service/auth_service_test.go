package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iconidentify/blogsmith/internal/auth"
	"github.com/iconidentify/blogsmith/internal/domain"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()
	_, users := setupDB(t)
	svc := NewAuthService(users, auth.NewTokenIssuer("test-secret", time.Hour), testLogger())

	// Real argon2id parameters are slow; a reversible stand-in keeps the
	// service logic under test.
	svc.hash = func(p string) (string, error) { return "hashed:" + p, nil }
	svc.verify = func(p, encoded string) (bool, error) {
		if !strings.HasPrefix(encoded, "hashed:") {
			return false, auth.ErrInvalidHash
		}
		return encoded == "hashed:"+p, nil
	}
	return svc
}

func register(t *testing.T, svc *AuthService, email string) *AuthResult {
	t.Helper()
	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "  Ada  ",
		Email:    email,
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return res
}

func TestAuthService_Register(t *testing.T) {
	svc := setupAuthService(t)

	res := register(t, svc, " Ada@Example.com ")

	if res.User.Name != "Ada" {
		t.Errorf("Name = %q, want trimmed", res.User.Name)
	}
	if res.User.Email != "ada@example.com" {
		t.Errorf("Email = %q, want normalized", res.User.Email)
	}
	if res.User.PasswordHash == "secret1" {
		t.Error("password stored in plain text")
	}
	if res.Token == "" {
		t.Error("Token should not be empty")
	}

	userID, err := svc.Authenticate(res.Token)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if userID != res.User.ID {
		t.Errorf("Authenticate = %q, want %q", userID, res.User.ID)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := setupAuthService(t)
	register(t, svc, "ada@example.com")

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name: "Other", Email: "ADA@example.com", Password: "secret2",
	})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc := setupAuthService(t)
	registered := register(t, svc, "ada@example.com")
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "ada@example.com", "secret1", nil},
		{"email case", "ADA@example.com", "secret1", nil},
		{"wrong password", "ada@example.com", "secret2", domain.ErrInvalidCredentials},
		{"unknown email", "bob@example.com", "secret1", domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Login(ctx, domain.LoginRequest{Email: tt.email, Password: tt.password})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Login error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && res.User.ID != registered.User.ID {
				t.Errorf("logged in as %q, want %q", res.User.ID, registered.User.ID)
			}
		})
	}
}

func TestAuthService_MeAndProfile(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()
	ada := register(t, svc, "ada@example.com")
	register(t, svc, "bob@example.com")

	me, err := svc.Me(ctx, ada.User.ID)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if me.Email != "ada@example.com" {
		t.Errorf("Email = %q", me.Email)
	}

	updated, err := svc.UpdateProfile(ctx, ada.User.ID, domain.ProfileUpdate{Name: " Ada Lovelace ", Email: "ADA@lovelace.dev"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.Name != "Ada Lovelace" || updated.Email != "ada@lovelace.dev" {
		t.Errorf("updated = %+v", updated)
	}

	_, err = svc.UpdateProfile(ctx, ada.User.ID, domain.ProfileUpdate{Email: "bob@example.com"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	// Keeping the current email is not a conflict.
	if _, err := svc.UpdateProfile(ctx, ada.User.ID, domain.ProfileUpdate{Email: "ada@lovelace.dev"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if _, err := svc.Me(ctx, "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_AuthenticateRejectsGarbage(t *testing.T) {
	svc := setupAuthService(t)

	if _, err := svc.Authenticate("garbage"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
