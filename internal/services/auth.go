package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ticketflow/internal/domain"
)

type authService struct {
	userRepo    domain.UserRepository
	tokens      domain.TokenIssuer
	tokenExpiry time.Duration
}

// NewAuthService creates the AuthService used by the HTTP surface. It only
// resolves users by email and issues tokens; there are no credentials here.
func NewAuthService(userRepo domain.UserRepository, tokens domain.TokenIssuer, tokenExpiry time.Duration) domain.AuthService {
	return &authService{
		userRepo:    userRepo,
		tokens:      tokens,
		tokenExpiry: tokenExpiry,
	}
}

func (s *authService) Login(ctx context.Context, email string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", nil, domain.ErrInvalidInput
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("get user by email: %w", err)
	}
	token, err := s.tokens.Issue(user.ID, user.Email, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
