package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
	"darna-backend/internal/repository"
)

type paymentAccountRepository struct {
	db *sql.DB
}

func NewPaymentAccountRepository(db *sql.DB) repository.PaymentAccountRepository {
	return &paymentAccountRepository{db: db}
}

func (r *paymentAccountRepository) Create(ctx context.Context, a *domain.PaymentAccount) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	query := `INSERT INTO payment_accounts (id, host_id, provider, account_number, holder_name, verified, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.HostID, a.Provider, a.AccountNumber, a.HolderName, a.Verified, time.Now())
	return err
}

func (r *paymentAccountRepository) GetByID(ctx context.Context, id string) (*domain.PaymentAccount, error) {
	a := &domain.PaymentAccount{}
	var createdOn time.Time
	query := `SELECT id, host_id, provider, account_number, holder_name, verified, created_on FROM payment_accounts WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.HostID, &a.Provider, &a.AccountNumber, &a.HolderName, &a.Verified, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("payment account not found")
	}
	if err != nil {
		return nil, err
	}
	a.CreatedOn = createdOn.Format(timestampLayout)
	return a, nil
}

func (r *paymentAccountRepository) ListByHost(ctx context.Context, hostID string) ([]domain.PaymentAccount, error) {
	query := `SELECT id, host_id, provider, account_number, holder_name, verified, created_on
	          FROM payment_accounts WHERE host_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.PaymentAccount
	for rows.Next() {
		var a domain.PaymentAccount
		var createdOn time.Time
		if err := rows.Scan(&a.ID, &a.HostID, &a.Provider, &a.AccountNumber, &a.HolderName, &a.Verified, &createdOn); err != nil {
			return nil, err
		}
		a.CreatedOn = createdOn.Format(timestampLayout)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
