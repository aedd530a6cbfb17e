package service

import (
	"context"

	"darna-backend/internal/domain"
	"darna-backend/internal/repository"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, phone, password string, role domain.Role) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type PropertyService interface {
	CreateListing(ctx context.Context, hostID string, p *domain.Property, publish bool) (*domain.Property, error)
	GetListing(ctx context.Context, id string) (*domain.Property, error)
	UpdateListing(ctx context.Context, userID string, role domain.Role, p *domain.Property) (*domain.Property, error)
	DeleteListing(ctx context.Context, userID string, role domain.Role, id string) error
	Submit(ctx context.Context, hostID, id string) (*domain.Property, error)
	Approve(ctx context.Context, adminID, id string) (*domain.Property, error)
	Reject(ctx context.Context, adminID, id, reason string) (*domain.Property, error)
	Browse(ctx context.Context, filter repository.PropertyFilter, page, pageSize int32) ([]domain.Property, int32, error)
	ListMine(ctx context.Context, hostID string, page, pageSize int32) ([]domain.Property, int32, error)
	ModerationQueue(ctx context.Context, page, pageSize int32) ([]domain.Property, int32, error)
}

type BookingService interface {
	RequestBooking(ctx context.Context, guestID, propertyID, checkIn, checkOut string, guestCount int32) (*domain.Booking, error)
	Confirm(ctx context.Context, hostID, bookingID string) (*domain.Booking, error)
	Complete(ctx context.Context, hostID, bookingID string) (*domain.Booking, error)
	Cancel(ctx context.Context, userID, bookingID string) (*domain.Booking, error)
	GetBooking(ctx context.Context, userID string, role domain.Role, bookingID string) (*domain.Booking, error)
	MyBookings(ctx context.Context, guestID string, bucket domain.BookingBucket, page, pageSize int32) ([]domain.Booking, int32, error)
	HostBookings(ctx context.Context, hostID string, bucket domain.BookingBucket, page, pageSize int32) ([]domain.Booking, int32, error)
}

type WithdrawalService interface {
	RequestWithdrawal(ctx context.Context, hostID, paymentAccountID string, amountDzd int64) (*domain.WithdrawalRequest, error)
	Approve(ctx context.Context, adminID, requestID string) (*domain.WithdrawalRequest, error)
	Complete(ctx context.Context, adminID, requestID string) (*domain.WithdrawalRequest, error)
	Reject(ctx context.Context, adminID, requestID, reason string) (*domain.WithdrawalRequest, error)
	Earnings(ctx context.Context, hostID string) (domain.HostEarnings, error)
	ListMine(ctx context.Context, hostID string, page, pageSize int32) ([]domain.WithdrawalRequest, int32, error)
	ListPending(ctx context.Context, page, pageSize int32) ([]domain.WithdrawalRequest, int32, error)
	AddPaymentAccount(ctx context.Context, hostID string, account *domain.PaymentAccount) (*domain.PaymentAccount, error)
	ListPaymentAccounts(ctx context.Context, hostID string) ([]domain.PaymentAccount, error)
}

type ConversationService interface {
	Start(ctx context.Context, creatorID string, convType domain.ConversationType, propertyID *string, participantIDs []string) (*domain.Conversation, error)
	Close(ctx context.Context, id string) (*domain.Conversation, error)
	Reopen(ctx context.Context, id string) (*domain.Conversation, error)
	SendMessage(ctx context.Context, senderID, conversationID, body string) (*domain.Message, error)
	List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Conversation, int32, error)
	Messages(ctx context.Context, userID string, role domain.Role, conversationID string, page, pageSize int32) ([]domain.Message, int32, error)
}

type WishlistService interface {
	Toggle(ctx context.Context, userID, propertyID string) (bool, error)
	List(ctx context.Context, userID string) ([]domain.Property, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

type EmailService interface {
	SendListingApproved(ctx context.Context, email, name, title string) error
	SendListingRejected(ctx context.Context, email, name, title, reason string) error
	SendBookingRequest(ctx context.Context, hostEmail, guestName, title string) error
	SendBookingConfirmed(ctx context.Context, guestEmail, title, checkIn string) error
	SendBookingCancelled(ctx context.Context, email, title string) error
	SendWithdrawalProcessed(ctx context.Context, hostEmail string, amountDzd int64, status string) error
}
