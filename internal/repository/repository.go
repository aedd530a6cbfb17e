package repository

import (
	"context"

	"darna-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type PaymentAccountRepository interface {
	Create(ctx context.Context, account *domain.PaymentAccount) error
	GetByID(ctx context.Context, id string) (*domain.PaymentAccount, error)
	ListByHost(ctx context.Context, hostID string) ([]domain.PaymentAccount, error)
}

// PropertyFilter narrows property listings. Zero values mean "no filter".
type PropertyFilter struct {
	Status      domain.PropertyStatus
	Category    domain.PropertyCategory
	Wilaya      string
	MaxPriceDzd int64
}

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter PropertyFilter, page, pageSize int32) ([]domain.Property, int32, error)
	ListByHost(ctx context.Context, hostID string, page, pageSize int32) ([]domain.Property, int32, error)

	// UpdateStatus is a compare-and-set on (id, from): when the stored status
	// no longer matches, no row changes and a conflict is returned.
	UpdateStatus(ctx context.Context, id string, from, to domain.PropertyStatus, reason, moderatorID string) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByGuest(ctx context.Context, guestID string, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByHost(ctx context.Context, hostID string, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error)

	// UpdateStatus is a compare-and-set on (id, from).
	UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error

	// CompletePastCheckouts moves confirmed bookings whose check-out date is
	// before today into completed, returning the affected booking rows.
	CompletePastCheckouts(ctx context.Context, today string) ([]domain.Booking, error)
}

type WithdrawalRepository interface {
	// CreateWithBalanceCheck inserts the request inside a serializable
	// transaction that recomputes the host's available balance; the insert
	// aborts when the amount exceeds it, so concurrent requests cannot both
	// pass the check.
	CreateWithBalanceCheck(ctx context.Context, w *domain.WithdrawalRequest) error

	GetByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error)
	ListByHost(ctx context.Context, hostID string, page, pageSize int32) ([]domain.WithdrawalRequest, int32, error)
	ListByStatus(ctx context.Context, status domain.WithdrawalStatus, page, pageSize int32) ([]domain.WithdrawalRequest, int32, error)

	// UpdateStatus is a compare-and-set on (id, from).
	UpdateStatus(ctx context.Context, id string, from, to domain.WithdrawalStatus, reason, processorID string) error

	// GetEarnings recomputes the host's money summary from commission
	// transactions and withdrawal rows at call time.
	GetEarnings(ctx context.Context, hostID string) (domain.HostEarnings, error)
}

type CommissionRepository interface {
	Create(ctx context.Context, tx *domain.CommissionTransaction) error
	ListByHost(ctx context.Context, hostID string, page, pageSize int32) ([]domain.CommissionTransaction, int32, error)
	MarkCompletedByBooking(ctx context.Context, bookingID string) error
}

type ConversationRepository interface {
	Create(ctx context.Context, c *domain.Conversation) error
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
	SetStatus(ctx context.Context, id string, status domain.ConversationStatus) error
	ListByParticipant(ctx context.Context, userID string, page, pageSize int32) ([]domain.Conversation, int32, error)

	// CreateMessage inserts the message and bumps the conversation's
	// last_activity_on in one transaction.
	CreateMessage(ctx context.Context, m *domain.Message) error
	ListMessages(ctx context.Context, conversationID string, page, pageSize int32) ([]domain.Message, int32, error)
}

type WishlistRepository interface {
	// Toggle flips membership of (userID, propertyID) and reports the new
	// membership state: true after an insert, false after a delete.
	Toggle(ctx context.Context, userID, propertyID string) (bool, error)
	Contains(ctx context.Context, userID, propertyID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Property, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}

type SettingsRepository interface {
	// Get returns the raw JSON payload for a key, or nil when the key has
	// never been written.
	Get(ctx context.Context, key string) ([]byte, error)
	GetAll(ctx context.Context) (map[string][]byte, error)

	// Upsert persists the payload and fires the settings change
	// notification channel.
	Upsert(ctx context.Context, key string, payload []byte) error
}
