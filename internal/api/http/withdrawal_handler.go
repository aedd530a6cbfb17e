package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"darna-backend/internal/domain"
	"darna-backend/internal/service"
)

type WithdrawalHandler struct {
	withdrawalSvc service.WithdrawalService
}

func NewWithdrawalHandler(withdrawalSvc service.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalSvc: withdrawalSvc}
}

type withdrawalRequest struct {
	PaymentAccountID string `json:"payment_account_id" validate:"required"`
	AmountDzd        int64  `json:"amount_dzd" validate:"required,gt=0"`
}

func (h *WithdrawalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req withdrawalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(req); err != nil {
		writeError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	wr, err := h.withdrawalSvc.RequestWithdrawal(r.Context(), claims.UserID, req.PaymentAccountID, req.AmountDzd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, wr)
}

func (h *WithdrawalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	wr, err := h.withdrawalSvc.Approve(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wr)
}

func (h *WithdrawalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	wr, err := h.withdrawalSvc.Complete(r.Context(), claims.UserID, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wr)
}

func (h *WithdrawalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	wr, err := h.withdrawalSvc.Reject(r.Context(), claims.UserID, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wr)
}

func (h *WithdrawalHandler) Earnings(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	earnings, err := h.withdrawalSvc.Earnings(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"completed_earnings_dzd":    earnings.CompletedEarningsDzd,
		"completed_withdrawals_dzd": earnings.CompletedWithdrawalsDzd,
		"pending_withdrawals_dzd":   earnings.PendingWithdrawalsDzd,
		"available_balance_dzd":     earnings.AvailableBalance(),
	})
}

func (h *WithdrawalHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	page, pageSize := pageParams(r)
	list, total, err := h.withdrawalSvc.ListMine(r.Context(), claims.UserID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, list, total, page, pageSize)
}

func (h *WithdrawalHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)
	list, total, err := h.withdrawalSvc.ListPending(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writePage(w, list, total, page, pageSize)
}

type paymentAccountRequest struct {
	Provider      string `json:"provider" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	HolderName    string `json:"holder_name" validate:"required"`
}

func (h *WithdrawalHandler) AddPaymentAccount(w http.ResponseWriter, r *http.Request) {
	var req paymentAccountRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validateBody(req); err != nil {
		writeError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	account, err := h.withdrawalSvc.AddPaymentAccount(r.Context(), claims.UserID, &domain.PaymentAccount{
		Provider:      req.Provider,
		AccountNumber: req.AccountNumber,
		HolderName:    req.HolderName,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

func (h *WithdrawalHandler) ListPaymentAccounts(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	accounts, err := h.withdrawalSvc.ListPaymentAccounts(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}
