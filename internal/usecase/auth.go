package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pitchside/scoutd/internal/auth"
	"github.com/pitchside/scoutd/internal/domain"
	"github.com/pitchside/scoutd/internal/repository"
)

// AuthUsecase handles registration, credential exchange and user lookup.
type AuthUsecase struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewAuthUsecase creates a new AuthUsecase.
func NewAuthUsecase(users repository.UserRepository, tokens *auth.TokenManager, logger *zap.Logger) *AuthUsecase {
	return &AuthUsecase{users: users, tokens: tokens, logger: logger}
}

// Register creates a new user with a hashed password. The role defaults to
// "user"; anything invalid in the payload is rejected.
func (uc *AuthUsecase) Register(ctx context.Context, in *domain.RegisterInput) (*domain.User, error) {
	if _, err := uc.users.GetByUsername(ctx, in.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if _, err := uc.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.IsValid() {
		return nil, &domain.ValidationError{Fields: map[string]string{"role": "must be one of: admin, user"}}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:          in.Email,
		Username:       in.Username,
		HashedPassword: hash,
		Role:           role,
		IsActive:       true,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		uc.logger.Error("Failed to create user", zap.Error(err), zap.String("username", in.Username))
		return nil, err
	}

	uc.logger.Info("User registered",
		zap.String("username", u.Username),
		zap.String("role", string(u.Role)),
	)
	return u, nil
}

// Login verifies credentials and issues a short-lived bearer token.
func (uc *AuthUsecase) Login(ctx context.Context, in *domain.LoginInput) (*domain.Token, error) {
	u, err := uc.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(in.Password, u.HashedPassword) {
		return nil, domain.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, domain.ErrInactiveUser
	}

	token, err := uc.tokens.Issue(u)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("User logged in",
		zap.String("username", u.Username),
		zap.String("role", string(u.Role)),
	)
	return &domain.Token{AccessToken: token, TokenType: "bearer"}, nil
}

// GetByUsername looks up the user behind a verified token subject.
func (uc *AuthUsecase) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return uc.users.GetByUsername(ctx, username)
}

// EnsureAdmin seeds one admin credential into empty storage. It is called
// explicitly from the server entry point at startup; creation is skipped
// when the username already exists.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, username, email, password string, logger *zap.Logger) error {
	_, err := users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u := &domain.User{
		Email:          email,
		Username:       username,
		HashedPassword: hash,
		Role:           domain.RoleAdmin,
		IsActive:       true,
	}
	if err := users.Create(ctx, u); err != nil {
		return err
	}

	logger.Info("Admin user seeded", zap.String("username", username))
	return nil
}
