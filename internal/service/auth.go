package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
	"darna-backend/internal/repository"
	"darna-backend/internal/security"
	"darna-backend/internal/settings"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	settings *settings.Store
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, settings *settings.Store) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		settings: settings,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, phone, password string, role domain.Role) (*domain.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, "", "", apperr.Validation("name and email are required")
	}
	if role == domain.RoleAdmin {
		return nil, "", "", apperr.New(apperr.KindForbidden, "admin accounts cannot be self-registered")
	}

	minLen := settings.DefaultSecuritySettings().MinPasswordLength
	if snap, ok := s.settings.Snapshot(); ok {
		minLen = snap.Security.MinPasswordLength
	}
	if len(password) < minLen {
		return nil, "", "", apperr.Newf(apperr.KindValidation, "password must be at least %d characters", minLen)
	}

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", "", apperr.Conflict("an account with this email already exists")
	} else if err != nil && !apperr.IsKind(err, apperr.KindNotFound) && !errors.Is(err, sql.ErrNoRows) {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PhoneNumber:  phone,
		Role:         role,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, "", "", apperr.New(apperr.KindUnauthorized, "invalid email or password")
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", apperr.New(apperr.KindUnauthorized, "invalid email or password")
	}

	access, refresh, err := s.issueTokens(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return "", "", apperr.Wrap(apperr.KindUnauthorized, "invalid refresh token", err)
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", apperr.New(apperr.KindUnauthorized, "a refresh token is required")
	}

	// Role may have changed since the refresh token was issued, so the user
	// is re-read instead of trusting the embedded claims.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return "", "", apperr.New(apperr.KindUnauthorized, "account no longer exists")
		}
		return "", "", err
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *domain.User) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", apperr.Wrap(apperr.KindInternal, "failed to sign access token", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", apperr.Wrap(apperr.KindInternal, "failed to sign refresh token", err)
	}
	return access, refresh, nil
}
