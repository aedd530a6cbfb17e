package domain

import "darna-backend/internal/apperr"

type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusApproved  WithdrawalStatus = "approved"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	WithdrawalStatusRejected  WithdrawalStatus = "rejected"
)

// WithdrawalRequest is a host's request to pay out part of their available
// balance to one of their payment accounts.
type WithdrawalRequest struct {
	ID               string           `json:"id"`
	HostID           string           `json:"host_id"`
	PaymentAccountID string           `json:"payment_account_id"`
	AmountDzd        int64            `json:"amount_dzd"`
	Status           WithdrawalStatus `json:"status"`
	RejectionReason  string           `json:"rejection_reason,omitempty"`
	ProcessedBy      *string          `json:"processed_by,omitempty"`
	ProcessedOn      *string          `json:"processed_on,omitempty"`
	CreatedOn        string           `json:"created_on"`
	UpdatedOn        string           `json:"updated_on"`
}

// HostEarnings is the source-derived money summary for a host. It is
// recomputed from commission transactions and withdrawal rows at request
// time, never cached across a session.
type HostEarnings struct {
	CompletedEarningsDzd    int64 `json:"completed_earnings_dzd"`
	CompletedWithdrawalsDzd int64 `json:"completed_withdrawals_dzd"`
	PendingWithdrawalsDzd   int64 `json:"pending_withdrawals_dzd"`
}

// AvailableBalance is completed earnings minus everything already withdrawn
// or locked in a pending/approved withdrawal.
func (e HostEarnings) AvailableBalance() int64 {
	return e.CompletedEarningsDzd - (e.CompletedWithdrawalsDzd + e.PendingWithdrawalsDzd)
}

// GuardWithdrawalApprove validates admin approval of a withdrawal.
func GuardWithdrawalApprove(s WithdrawalStatus) error {
	if s != WithdrawalStatusPending {
		return apperr.Newf(apperr.KindConflict, "withdrawal cannot be approved while %s", s)
	}
	return nil
}

// GuardWithdrawalComplete validates marking an approved withdrawal as paid.
func GuardWithdrawalComplete(s WithdrawalStatus) error {
	if s != WithdrawalStatusApproved {
		return apperr.Newf(apperr.KindConflict, "withdrawal cannot be completed while %s", s)
	}
	return nil
}

// GuardWithdrawalReject validates rejection. Only pending requests can be
// rejected; the reason is optional.
func GuardWithdrawalReject(s WithdrawalStatus) error {
	if s != WithdrawalStatusPending {
		return apperr.Newf(apperr.KindConflict, "withdrawal cannot be rejected while %s", s)
	}
	return nil
}
