package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
	"darna-backend/internal/repository"
)

type withdrawalRepository struct {
	db *sql.DB
}

func NewWithdrawalRepository(db *sql.DB) repository.WithdrawalRepository {
	return &withdrawalRepository{db: db}
}

const earningsQuery = `SELECT
	COALESCE((SELECT SUM(host_payout_dzd) FROM commission_transactions WHERE host_id = $1 AND status = 'completed'), 0),
	COALESCE((SELECT SUM(amount_dzd) FROM withdrawal_requests WHERE host_id = $1 AND status = 'completed'), 0),
	COALESCE((SELECT SUM(amount_dzd) FROM withdrawal_requests WHERE host_id = $1 AND status IN ('pending', 'approved')), 0)`

// GetEarnings recomputes the host's money summary from source rows on every
// call; nothing is cached across a session.
func (r *withdrawalRepository) GetEarnings(ctx context.Context, hostID string) (domain.HostEarnings, error) {
	var e domain.HostEarnings
	err := r.db.QueryRowContext(ctx, earningsQuery, hostID).
		Scan(&e.CompletedEarningsDzd, &e.CompletedWithdrawalsDzd, &e.PendingWithdrawalsDzd)
	return e, err
}

// CreateWithBalanceCheck re-runs the balance computation and the insert in
// one serializable transaction. The service layer validates against a fresh
// read first for a friendly error; this check is the authoritative one and
// holds under concurrent requests from the same host.
func (r *withdrawalRepository) CreateWithBalanceCheck(ctx context.Context, w *domain.WithdrawalRequest) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var e domain.HostEarnings
	if err := tx.QueryRowContext(ctx, earningsQuery, w.HostID).
		Scan(&e.CompletedEarningsDzd, &e.CompletedWithdrawalsDzd, &e.PendingWithdrawalsDzd); err != nil {
		return err
	}
	if w.AmountDzd > e.AvailableBalance() {
		return apperr.Validation("withdrawal amount exceeds your available balance")
	}

	now := time.Now()
	query := `INSERT INTO withdrawal_requests (id, host_id, payment_account_id, amount_dzd, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.ExecContext(ctx, query, w.ID, w.HostID, w.PaymentAccountID, w.AmountDzd, domain.WithdrawalStatusPending, now, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		var pqErr *pq.Error
		// 40001 is serialization_failure: a concurrent withdrawal won the
		// race; the caller simply re-submits.
		if errors.As(err, &pqErr) && pqErr.Code == "40001" {
			return apperr.Wrap(apperr.KindConflict, "a concurrent withdrawal changed your balance, please retry", err)
		}
		return err
	}
	w.Status = domain.WithdrawalStatusPending
	return nil
}

func scanWithdrawal(row interface{ Scan(...any) error }) (*domain.WithdrawalRequest, error) {
	w := &domain.WithdrawalRequest{}
	var processedBy sql.NullString
	var processedOn sql.NullTime
	var createdOn, updatedOn time.Time
	err := row.Scan(&w.ID, &w.HostID, &w.PaymentAccountID, &w.AmountDzd, &w.Status, &w.RejectionReason,
		&processedBy, &processedOn, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	if processedBy.Valid {
		w.ProcessedBy = &processedBy.String
	}
	if processedOn.Valid {
		s := processedOn.Time.Format(timestampLayout)
		w.ProcessedOn = &s
	}
	w.CreatedOn = createdOn.Format(timestampLayout)
	w.UpdatedOn = updatedOn.Format(timestampLayout)
	return w, nil
}

const withdrawalColumns = `id, host_id, payment_account_id, amount_dzd, status, COALESCE(rejection_reason, ''), processed_by, processed_on, created_on, updated_on`

func (r *withdrawalRepository) GetByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE id = $1`
	w, err := scanWithdrawal(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("withdrawal request not found")
	}
	return w, err
}

func (r *withdrawalRepository) ListByHost(ctx context.Context, hostID string, page, pageSize int32) ([]domain.WithdrawalRequest, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM withdrawal_requests WHERE host_id = $1`, hostID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE host_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, hostID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []domain.WithdrawalRequest
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *w)
	}
	return requests, count, rows.Err()
}

func (r *withdrawalRepository) ListByStatus(ctx context.Context, status domain.WithdrawalStatus, page, pageSize int32) ([]domain.WithdrawalRequest, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM withdrawal_requests WHERE status = $1`, status).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawal_requests WHERE status = $1 ORDER BY created_on ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, status, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []domain.WithdrawalRequest
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *w)
	}
	return requests, count, rows.Err()
}

// UpdateStatus is a compare-and-set on (id, from).
func (r *withdrawalRepository) UpdateStatus(ctx context.Context, id string, from, to domain.WithdrawalStatus, reason, processorID string) error {
	query := `UPDATE withdrawal_requests SET status=$1, rejection_reason=$2, processed_by=NULLIF($3, ''), processed_on=$4, updated_on=$4
	          WHERE id=$5 AND status=$6`
	result, err := r.db.ExecContext(ctx, query, to, reason, processorID, time.Now(), id, from)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.Conflict("withdrawal status changed underneath you, refresh and retry")
	}
	return nil
}
