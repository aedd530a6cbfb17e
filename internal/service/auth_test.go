package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
	"darna-backend/internal/security"
	"darna-backend/internal/settings"
)

func newAuthFixture() (*MockUserRepo, AuthService) {
	userRepo := new(MockUserRepo)
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", 15, 60*24)
	settingsStore := settings.NewStore(new(MockSettingsRepo))
	return userRepo, NewAuthService(userRepo, tokens, settingsStore)
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "lina@test.dz").Return(nil, apperr.NotFound("no such user"))
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, access, refresh, err := svc.Signup(ctx, "Lina", "Lina@Test.dz", "0550", "longenough", domain.RoleUser)
		assert.NoError(t, err)
		assert.Equal(t, "lina@test.dz", user.Email)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		// The stored hash verifies against the original password.
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenough")))
	})

	t.Run("short password rejected by security settings", func(t *testing.T) {
		userRepo, svc := newAuthFixture()

		_, _, _, err := svc.Signup(ctx, "Lina", "lina@test.dz", "", "short", domain.RoleUser)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "lina@test.dz").Return(&domain.User{ID: "u-1", Email: "lina@test.dz"}, nil)

		_, _, _, err := svc.Signup(ctx, "Lina", "lina@test.dz", "", "longenough", domain.RoleUser)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})

	t.Run("admin self-registration is forbidden", func(t *testing.T) {
		_, svc := newAuthFixture()
		_, _, _, err := svc.Signup(ctx, "Evil", "evil@test.dz", "", "longenough", domain.RoleAdmin)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	user := &domain.User{ID: "u-1", Email: "lina@test.dz", Role: domain.RoleHost, PasswordHash: string(hash)}

	t.Run("success", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "lina@test.dz").Return(user, nil)

		got, access, refresh, err := svc.Login(ctx, "lina@test.dz", "correct-horse")
		assert.NoError(t, err)
		assert.Equal(t, "u-1", got.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "lina@test.dz").Return(user, nil)

		_, _, _, err := svc.Login(ctx, "lina@test.dz", "wrong")
		assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
	})

	t.Run("unknown email is unauthorized, not not-found", func(t *testing.T) {
		userRepo, svc := newAuthFixture()
		userRepo.On("GetByEmail", ctx, "ghost@test.dz").Return(nil, apperr.NotFound("no such user"))

		_, _, _, err := svc.Login(ctx, "ghost@test.dz", "whatever")
		assert.True(t, apperr.IsKind(err, apperr.KindUnauthorized))
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", 15, 60*24)
	userRepo := new(MockUserRepo)
	svc := NewAuthService(userRepo, tokens, settings.NewStore(new(MockSettingsRepo)))

	t.Run("access token is not accepted as refresh", func(t *testing.T) {
		access, err := tokens.GenerateAccessToken("u-1", "lina@test.dz", domain.RoleUser)
		assert.NoError(t, err)

		_, _, gotErr := svc.Refresh(ctx, access)
		assert.True(t, apperr.IsKind(gotErr, apperr.KindUnauthorized))
	})

	t.Run("valid refresh re-reads the user", func(t *testing.T) {
		refresh, err := tokens.GenerateRefreshToken("u-1", "lina@test.dz")
		assert.NoError(t, err)
		userRepo.On("GetByID", ctx, "u-1").Return(&domain.User{ID: "u-1", Email: "lina@test.dz", Role: domain.RoleHost}, nil)

		access, newRefresh, gotErr := svc.Refresh(ctx, refresh)
		assert.NoError(t, gotErr)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, newRefresh)
	})
}
