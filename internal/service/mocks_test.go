package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"darna-backend/internal/domain"
	"darna-backend/internal/repository"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockPropertyRepo
type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPropertyRepo) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) Update(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPropertyRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPropertyRepo) List(ctx context.Context, filter repository.PropertyFilter, page, pageSize int32) ([]domain.Property, int32, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Property), args.Get(1).(int32), args.Error(2)
}
func (m *MockPropertyRepo) ListByHost(ctx context.Context, hostID string, page, pageSize int32) ([]domain.Property, int32, error) {
	args := m.Called(ctx, hostID, page, pageSize)
	return args.Get(0).([]domain.Property), args.Get(1).(int32), args.Error(2)
}
func (m *MockPropertyRepo) UpdateStatus(ctx context.Context, id string, from, to domain.PropertyStatus, reason, moderatorID string) error {
	args := m.Called(ctx, id, from, to, reason, moderatorID)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByGuest(ctx context.Context, guestID string, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, guestID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByHost(ctx context.Context, hostID string, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, hostID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockBookingRepo) CompletePastCheckouts(ctx context.Context, today string) ([]domain.Booking, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockWithdrawalRepo
type MockWithdrawalRepo struct {
	mock.Mock
}

func (m *MockWithdrawalRepo) CreateWithBalanceCheck(ctx context.Context, w *domain.WithdrawalRequest) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}
func (m *MockWithdrawalRepo) GetByID(ctx context.Context, id string) (*domain.WithdrawalRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WithdrawalRequest), args.Error(1)
}
func (m *MockWithdrawalRepo) ListByHost(ctx context.Context, hostID string, page, pageSize int32) ([]domain.WithdrawalRequest, int32, error) {
	args := m.Called(ctx, hostID, page, pageSize)
	return args.Get(0).([]domain.WithdrawalRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockWithdrawalRepo) ListByStatus(ctx context.Context, status domain.WithdrawalStatus, page, pageSize int32) ([]domain.WithdrawalRequest, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.WithdrawalRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockWithdrawalRepo) UpdateStatus(ctx context.Context, id string, from, to domain.WithdrawalStatus, reason, processorID string) error {
	args := m.Called(ctx, id, from, to, reason, processorID)
	return args.Error(0)
}
func (m *MockWithdrawalRepo) GetEarnings(ctx context.Context, hostID string) (domain.HostEarnings, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).(domain.HostEarnings), args.Error(1)
}

// MockPaymentAccountRepo
type MockPaymentAccountRepo struct {
	mock.Mock
}

func (m *MockPaymentAccountRepo) Create(ctx context.Context, account *domain.PaymentAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockPaymentAccountRepo) GetByID(ctx context.Context, id string) (*domain.PaymentAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentAccount), args.Error(1)
}
func (m *MockPaymentAccountRepo) ListByHost(ctx context.Context, hostID string) ([]domain.PaymentAccount, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]domain.PaymentAccount), args.Error(1)
}

// MockCommissionRepo
type MockCommissionRepo struct {
	mock.Mock
}

func (m *MockCommissionRepo) Create(ctx context.Context, tx *domain.CommissionTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockCommissionRepo) ListByHost(ctx context.Context, hostID string, page, pageSize int32) ([]domain.CommissionTransaction, int32, error) {
	args := m.Called(ctx, hostID, page, pageSize)
	return args.Get(0).([]domain.CommissionTransaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockCommissionRepo) MarkCompletedByBooking(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockWishlistRepo
type MockWishlistRepo struct {
	mock.Mock
}

func (m *MockWishlistRepo) Toggle(ctx context.Context, userID, propertyID string) (bool, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}
func (m *MockWishlistRepo) Contains(ctx context.Context, userID, propertyID string) (bool, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}
func (m *MockWishlistRepo) ListByUser(ctx context.Context, userID string) ([]domain.Property, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Property), args.Error(1)
}

// MockSettingsRepo
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockSettingsRepo) GetAll(ctx context.Context) (map[string][]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]byte), args.Error(1)
}
func (m *MockSettingsRepo) Upsert(ctx context.Context, key string, payload []byte) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendListingApproved(ctx context.Context, email, name, title string) error {
	args := m.Called(ctx, email, name, title)
	return args.Error(0)
}
func (m *MockEmailService) SendListingRejected(ctx context.Context, email, name, title, reason string) error {
	args := m.Called(ctx, email, name, title, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingRequest(ctx context.Context, hostEmail, guestName, title string) error {
	args := m.Called(ctx, hostEmail, guestName, title)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingConfirmed(ctx context.Context, guestEmail, title, checkIn string) error {
	args := m.Called(ctx, guestEmail, title, checkIn)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancelled(ctx context.Context, email, title string) error {
	args := m.Called(ctx, email, title)
	return args.Error(0)
}
func (m *MockEmailService) SendWithdrawalProcessed(ctx context.Context, hostEmail string, amountDzd int64, status string) error {
	args := m.Called(ctx, hostEmail, amountDzd, status)
	return args.Error(0)
}
