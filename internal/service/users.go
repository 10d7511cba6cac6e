package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"rawstock/internal/auth"
	"rawstock/internal/domain"
)

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (s *Service) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, username, email, hash, domain.RoleUser)
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, hash, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(hash, password) {
		return nil, fmt.Errorf("invalid credentials")
	}

	token, err := auth.GenerateToken(s.jwtSecret, *user)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &LoginResult{
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) UpdateUserRole(ctx context.Context, id int64, role string) (*domain.User, error) {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	return s.repo.UpdateUserRole(ctx, id, role)
}

func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.repo.DeleteUser(ctx, id)
}
