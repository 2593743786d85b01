package service

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"
	"eventhub-backend/internal/ratelimit"
	"eventhub-backend/internal/repository"
	"eventhub-backend/internal/security"
)

type authService struct {
	users   repository.UserRepository
	tokens  security.TokenManager
	limiter ratelimit.Limiter
}

func NewAuthService(users repository.UserRepository, tokens security.TokenManager, limiter ratelimit.Limiter) AuthService {
	return &authService{users: users, tokens: tokens, limiter: limiter}
}

func (s *authService) Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", "", domain.E(domain.CodeInvalidArgument, "a valid email address is required")
	}
	if len(password) < 8 {
		return nil, "", "", domain.E(domain.CodeInvalidArgument, "password must be at least 8 characters")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", "", domain.E(domain.CodeInvalidArgument, "name is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", "", domain.E(domain.CodeAlreadyRegistered, "an account with this email already exists")
		}
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	email = domain.NormalizeEmail(email)
	// Login is keyed by email, not user id: the caller is not authenticated
	// yet, and the point is to slow down guessing against one account.
	allowed, err := s.limiter.Allow(ctx, "login", email)
	if err != nil {
		logger.Warn("rate limiter unavailable", "operation", "login", "error", err)
	} else if !allowed {
		return "", "", domain.E(domain.CodeRateLimited, "too many login attempts, try again later")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", domain.E(domain.CodeUnauthorized, "invalid email or password")
		}
		return "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", "", domain.E(domain.CodeUnauthorized, "invalid email or password")
	}
	return s.issueTokens(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", domain.E(domain.CodeUnauthorized, "invalid or expired refresh token")
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", domain.E(domain.CodeUnauthorized, "refresh token required")
	}
	// Re-read the user so a deleted account cannot refresh forever.
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", domain.E(domain.CodeUnauthorized, "account no longer exists")
		}
		return "", "", err
	}
	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
