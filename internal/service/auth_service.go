package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iconidentify/blogsmith/internal/auth"
	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/repository"
)

// TokenIssuer issues and verifies bearer tokens. *auth.TokenIssuer
// implements it.
type TokenIssuer interface {
	Issue(userID domain.UserID) (string, error)
	Verify(token string) (domain.UserID, error)
}

// AuthService manages accounts and tokens.
type AuthService struct {
	users  repository.UserRepository
	tokens TokenIssuer
	logger *slog.Logger

	// swapped in tests for cheaper hashing
	hash   func(password string) (string, error)
	verify func(password, encoded string) (bool, error)
}

// NewAuthService creates a new auth service.
func NewAuthService(users repository.UserRepository, tokens TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger,
		hash:   auth.HashPassword,
		verify: auth.VerifyPassword,
	}
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates an account and returns a token for it.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*AuthResult, error) {
	email := domain.NormalizeEmail(req.Email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           domain.UserID(uuid.New().String()),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

// Login checks credentials. Unknown emails and wrong passwords both return
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := s.verify(req.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error("stored password hash is unreadable", "user_id", user.ID, "error", err)
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Me returns the account for userID.
func (s *AuthService) Me(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	return s.users.Get(ctx, userID)
}

// UpdateProfile changes the name and/or email of userID. Blank fields are
// left unchanged.
func (s *AuthService) UpdateProfile(ctx context.Context, userID domain.UserID, upd domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(upd.Name); name != "" {
		user.Name = name
	}
	if email := domain.NormalizeEmail(upd.Email); email != "" && email != user.Email {
		existing, err := s.users.GetByEmail(ctx, email)
		if err == nil && existing.ID != user.ID {
			return nil, domain.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = email
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a bearer token.
func (s *AuthService) Authenticate(token string) (domain.UserID, error) {
	return s.tokens.Verify(token)
}
