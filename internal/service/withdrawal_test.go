package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
)

func newWithdrawalFixture() (*MockWithdrawalRepo, *MockPaymentAccountRepo, *MockUserRepo, *MockNotificationRepo, *MockEmailService, WithdrawalService) {
	withdrawalRepo := new(MockWithdrawalRepo)
	accountRepo := new(MockPaymentAccountRepo)
	userRepo := new(MockUserRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	svc := NewWithdrawalService(withdrawalRepo, accountRepo, userRepo, noteRepo, emailSvc)
	return withdrawalRepo, accountRepo, userRepo, noteRepo, emailSvc, svc
}

func TestWithdrawalService_RequestWithdrawal(t *testing.T) {
	ctx := context.Background()
	account := &domain.PaymentAccount{ID: "acc-1", HostID: "host-1"}
	// 10000 completed earnings, 3000 already withdrawn, 2000 locked pending:
	// 5000 available.
	earnings := domain.HostEarnings{
		CompletedEarningsDzd:    10000,
		CompletedWithdrawalsDzd: 3000,
		PendingWithdrawalsDzd:   2000,
	}

	t.Run("amount equal to balance passes", func(t *testing.T) {
		withdrawalRepo, accountRepo, _, _, _, svc := newWithdrawalFixture()
		accountRepo.On("GetByID", ctx, "acc-1").Return(account, nil)
		withdrawalRepo.On("GetEarnings", ctx, "host-1").Return(earnings, nil)
		withdrawalRepo.On("CreateWithBalanceCheck", ctx, mock.AnythingOfType("*domain.WithdrawalRequest")).Return(nil)

		w, err := svc.RequestWithdrawal(ctx, "host-1", "acc-1", 5000)
		assert.NoError(t, err)
		assert.Equal(t, domain.WithdrawalStatusPending, w.Status)
		assert.Equal(t, int64(5000), w.AmountDzd)
	})

	t.Run("amount over balance fails with no store call", func(t *testing.T) {
		withdrawalRepo, accountRepo, _, _, _, svc := newWithdrawalFixture()
		accountRepo.On("GetByID", ctx, "acc-1").Return(account, nil)
		withdrawalRepo.On("GetEarnings", ctx, "host-1").Return(earnings, nil)

		_, err := svc.RequestWithdrawal(ctx, "host-1", "acc-1", 5001)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		withdrawalRepo.AssertNotCalled(t, "CreateWithBalanceCheck", mock.Anything, mock.Anything)
	})

	t.Run("non-positive amount fails before any lookup", func(t *testing.T) {
		withdrawalRepo, accountRepo, _, _, _, svc := newWithdrawalFixture()

		_, err := svc.RequestWithdrawal(ctx, "host-1", "acc-1", 0)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))

		_, err = svc.RequestWithdrawal(ctx, "host-1", "acc-1", -100)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))

		accountRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		withdrawalRepo.AssertNotCalled(t, "CreateWithBalanceCheck", mock.Anything, mock.Anything)
	})

	t.Run("missing account selection fails", func(t *testing.T) {
		_, _, _, _, _, svc := newWithdrawalFixture()
		_, err := svc.RequestWithdrawal(ctx, "host-1", "", 1000)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})

	t.Run("someone else's account is forbidden", func(t *testing.T) {
		withdrawalRepo, accountRepo, _, _, _, svc := newWithdrawalFixture()
		accountRepo.On("GetByID", ctx, "acc-2").Return(&domain.PaymentAccount{ID: "acc-2", HostID: "host-9"}, nil)

		_, err := svc.RequestWithdrawal(ctx, "host-1", "acc-2", 1000)
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
		withdrawalRepo.AssertNotCalled(t, "CreateWithBalanceCheck", mock.Anything, mock.Anything)
	})
}

func TestWithdrawalService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("pending approves", func(t *testing.T) {
		withdrawalRepo, _, userRepo, noteRepo, emailSvc, svc := newWithdrawalFixture()
		pending := &domain.WithdrawalRequest{ID: "w-1", HostID: "host-1", AmountDzd: 4000, Status: domain.WithdrawalStatusPending}
		withdrawalRepo.On("GetByID", ctx, "w-1").Return(pending, nil).Once()
		withdrawalRepo.On("UpdateStatus", ctx, "w-1", domain.WithdrawalStatusPending, domain.WithdrawalStatusApproved, "", "admin-1").Return(nil)
		withdrawalRepo.On("GetByID", ctx, "w-1").Return(&domain.WithdrawalRequest{ID: "w-1", Status: domain.WithdrawalStatusApproved}, nil)
		userRepo.On("GetByID", ctx, "host-1").Return(&domain.User{ID: "host-1", Email: "h@test.dz"}, nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		emailSvc.On("SendWithdrawalProcessed", ctx, "h@test.dz", int64(4000), "approved").Return(nil)

		w, err := svc.Approve(ctx, "admin-1", "w-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.WithdrawalStatusApproved, w.Status)
	})

	t.Run("double approve is a conflict", func(t *testing.T) {
		withdrawalRepo, _, _, _, _, svc := newWithdrawalFixture()
		withdrawalRepo.On("GetByID", ctx, "w-1").Return(&domain.WithdrawalRequest{ID: "w-1", Status: domain.WithdrawalStatusApproved}, nil)

		_, err := svc.Approve(ctx, "admin-1", "w-1")
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})

	t.Run("complete requires approved", func(t *testing.T) {
		withdrawalRepo, _, _, _, _, svc := newWithdrawalFixture()
		withdrawalRepo.On("GetByID", ctx, "w-1").Return(&domain.WithdrawalRequest{ID: "w-1", Status: domain.WithdrawalStatusPending}, nil)

		_, err := svc.Complete(ctx, "admin-1", "w-1")
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})
}
