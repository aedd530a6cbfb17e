package service

import (
	"context"
	"fmt"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
	"darna-backend/internal/logger"
	"darna-backend/internal/repository"
)

type withdrawalService struct {
	withdrawalRepo repository.WithdrawalRepository
	accountRepo    repository.PaymentAccountRepository
	userRepo       repository.UserRepository
	noteRepo       repository.NotificationRepository
	emailSvc       EmailService
}

func NewWithdrawalService(
	withdrawalRepo repository.WithdrawalRepository,
	accountRepo repository.PaymentAccountRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) WithdrawalService {
	return &withdrawalService{
		withdrawalRepo: withdrawalRepo,
		accountRepo:    accountRepo,
		userRepo:       userRepo,
		noteRepo:       noteRepo,
		emailSvc:       emailSvc,
	}
}

func (s *withdrawalService) RequestWithdrawal(ctx context.Context, hostID, paymentAccountID string, amountDzd int64) (*domain.WithdrawalRequest, error) {
	if amountDzd <= 0 {
		return nil, apperr.Validation("withdrawal amount must be positive")
	}
	if paymentAccountID == "" {
		return nil, apperr.Validation("a payment account must be selected")
	}

	account, err := s.accountRepo.GetByID(ctx, paymentAccountID)
	if err != nil {
		return nil, err
	}
	if account.HostID != hostID {
		return nil, apperr.New(apperr.KindForbidden, "the payment account belongs to another host")
	}

	// Pre-check against the current balance so the common over-draw case
	// fails fast; the repository repeats the check inside a serializable
	// transaction so concurrent requests cannot both pass it.
	earnings, err := s.withdrawalRepo.GetEarnings(ctx, hostID)
	if err != nil {
		return nil, err
	}
	if amountDzd > earnings.AvailableBalance() {
		return nil, apperr.Validation("withdrawal amount exceeds your available balance")
	}

	w := &domain.WithdrawalRequest{
		HostID:           hostID,
		PaymentAccountID: paymentAccountID,
		AmountDzd:        amountDzd,
		Status:           domain.WithdrawalStatusPending,
	}
	if err := s.withdrawalRepo.CreateWithBalanceCheck(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *withdrawalService) Approve(ctx context.Context, adminID, requestID string) (*domain.WithdrawalRequest, error) {
	w, err := s.withdrawalRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := domain.GuardWithdrawalApprove(w.Status); err != nil {
		return nil, err
	}
	if err := s.withdrawalRepo.UpdateStatus(ctx, requestID, w.Status, domain.WithdrawalStatusApproved, "", adminID); err != nil {
		return nil, err
	}
	s.notifyHost(ctx, w, string(domain.WithdrawalStatusApproved))
	return s.withdrawalRepo.GetByID(ctx, requestID)
}

func (s *withdrawalService) Complete(ctx context.Context, adminID, requestID string) (*domain.WithdrawalRequest, error) {
	w, err := s.withdrawalRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := domain.GuardWithdrawalComplete(w.Status); err != nil {
		return nil, err
	}
	if err := s.withdrawalRepo.UpdateStatus(ctx, requestID, w.Status, domain.WithdrawalStatusCompleted, "", adminID); err != nil {
		return nil, err
	}
	s.notifyHost(ctx, w, string(domain.WithdrawalStatusCompleted))
	return s.withdrawalRepo.GetByID(ctx, requestID)
}

func (s *withdrawalService) Reject(ctx context.Context, adminID, requestID, reason string) (*domain.WithdrawalRequest, error) {
	w, err := s.withdrawalRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := domain.GuardWithdrawalReject(w.Status); err != nil {
		return nil, err
	}
	if err := s.withdrawalRepo.UpdateStatus(ctx, requestID, w.Status, domain.WithdrawalStatusRejected, reason, adminID); err != nil {
		return nil, err
	}
	s.notifyHost(ctx, w, string(domain.WithdrawalStatusRejected))
	return s.withdrawalRepo.GetByID(ctx, requestID)
}

// notifyHost is best-effort: a failed notice never undoes the processed
// withdrawal.
func (s *withdrawalService) notifyHost(ctx context.Context, w *domain.WithdrawalRequest, status string) {
	host, err := s.userRepo.GetByID(ctx, w.HostID)
	if err != nil {
		logger.Warn("skipping withdrawal notification, host lookup failed", "withdrawal_id", w.ID, "error", err)
		return
	}

	note := &domain.Notification{
		UserID:    w.HostID,
		Title:     "Withdrawal update",
		Message:   fmt.Sprintf("Your withdrawal request for %d DA is now %s", w.AmountDzd, status),
		Type:      "WITHDRAWAL_" + status,
		RelatedID: w.ID,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("failed to create notification", "user_id", w.HostID, "error", err)
	}
	if err := s.emailSvc.SendWithdrawalProcessed(ctx, host.Email, w.AmountDzd, status); err != nil {
		logger.Warn("failed to send withdrawal email", "user_id", w.HostID, "error", err)
	}
}

func (s *withdrawalService) Earnings(ctx context.Context, hostID string) (domain.HostEarnings, error) {
	return s.withdrawalRepo.GetEarnings(ctx, hostID)
}

func (s *withdrawalService) ListMine(ctx context.Context, hostID string, page, pageSize int32) ([]domain.WithdrawalRequest, int32, error) {
	return s.withdrawalRepo.ListByHost(ctx, hostID, page, pageSize)
}

func (s *withdrawalService) ListPending(ctx context.Context, page, pageSize int32) ([]domain.WithdrawalRequest, int32, error) {
	return s.withdrawalRepo.ListByStatus(ctx, domain.WithdrawalStatusPending, page, pageSize)
}

func (s *withdrawalService) AddPaymentAccount(ctx context.Context, hostID string, account *domain.PaymentAccount) (*domain.PaymentAccount, error) {
	if account.Provider == "" || account.AccountNumber == "" || account.HolderName == "" {
		return nil, apperr.Validation("provider, account number and holder name are required")
	}
	account.HostID = hostID
	account.Verified = false
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *withdrawalService) ListPaymentAccounts(ctx context.Context, hostID string) ([]domain.PaymentAccount, error) {
	return s.accountRepo.ListByHost(ctx, hostID)
}
