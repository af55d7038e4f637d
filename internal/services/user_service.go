package services

import (
	"context"
	"fmt"

	"go-mongo-todo/internal/models"
	"go-mongo-todo/internal/repositories"
)

// UserService handles registration and credential checks.
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Register hashes the password and creates the user. A taken email
// surfaces as repositories.ErrDuplicateEmail.
func (s *UserService) Register(ctx context.Context, req models.UserRegisterRequest) (*models.User, error) {
	hashedPassword, err := repositories.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := &models.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}
	return s.users.Create(ctx, newUser)
}

// FindByCredentials resolves a user from email and password. Both an
// unknown email and a wrong password return the same
// ErrInvalidCredentials, so callers cannot probe which emails exist.
func (s *UserService) FindByCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := repositories.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
