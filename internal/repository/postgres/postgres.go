package postgres

import (
	"database/sql"

	"darna-backend/internal/repository"

	_ "github.com/lib/pq"
)

// timestampLayout is how audit timestamps are rendered onto domain structs.
const timestampLayout = "2006-01-02T15:04:05Z07:00"

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.PaymentAccountRepository
	repository.PropertyRepository
	repository.BookingRepository
	repository.WithdrawalRepository
	repository.CommissionRepository
	repository.ConversationRepository
	repository.WishlistRepository
	repository.NotificationRepository
	repository.SettingsRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                       db,
		UserRepository:           NewUserRepository(db),
		PaymentAccountRepository: NewPaymentAccountRepository(db),
		PropertyRepository:       NewPropertyRepository(db),
		BookingRepository:        NewBookingRepository(db),
		WithdrawalRepository:     NewWithdrawalRepository(db),
		CommissionRepository:     NewCommissionRepository(db),
		ConversationRepository:   NewConversationRepository(db),
		WishlistRepository:       NewWishlistRepository(db),
		NotificationRepository:   NewNotificationRepository(db),
		SettingsRepository:       NewSettingsRepository(db),
	}
}
