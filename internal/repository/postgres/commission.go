package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"darna-backend/internal/domain"
	"darna-backend/internal/repository"
)

type commissionRepository struct {
	db *sql.DB
}

func NewCommissionRepository(db *sql.DB) repository.CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) Create(ctx context.Context, tx *domain.CommissionTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	query := `INSERT INTO commission_transactions (id, booking_id, host_id, total_amount_dzd, commission_amount_dzd, host_payout_dzd, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, tx.ID, tx.BookingID, tx.HostID, tx.TotalAmountDzd,
		tx.CommissionAmountDzd, tx.HostPayoutDzd, tx.Status, time.Now())
	return err
}

func (r *commissionRepository) ListByHost(ctx context.Context, hostID string, page, pageSize int32) ([]domain.CommissionTransaction, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM commission_transactions WHERE host_id = $1`, hostID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, booking_id, host_id, total_amount_dzd, commission_amount_dzd, host_payout_dzd, status, created_on
	          FROM commission_transactions WHERE host_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, hostID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.CommissionTransaction
	for rows.Next() {
		var tx domain.CommissionTransaction
		var createdOn time.Time
		if err := rows.Scan(&tx.ID, &tx.BookingID, &tx.HostID, &tx.TotalAmountDzd, &tx.CommissionAmountDzd,
			&tx.HostPayoutDzd, &tx.Status, &createdOn); err != nil {
			return nil, 0, err
		}
		tx.CreatedOn = createdOn.Format(timestampLayout)
		txs = append(txs, tx)
	}
	return txs, count, rows.Err()
}

// MarkCompletedByBooking releases the payout when the booking completes.
func (r *commissionRepository) MarkCompletedByBooking(ctx context.Context, bookingID string) error {
	query := `UPDATE commission_transactions SET status = 'completed' WHERE booking_id = $1 AND status = 'pending'`
	_, err := r.db.ExecContext(ctx, query, bookingID)
	return err
}
