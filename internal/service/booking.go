package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
	"darna-backend/internal/logger"
	"darna-backend/internal/pricing"
	"darna-backend/internal/repository"
	"darna-backend/internal/settings"
)

type bookingService struct {
	bookingRepo    repository.BookingRepository
	propRepo       repository.PropertyRepository
	commissionRepo repository.CommissionRepository
	userRepo       repository.UserRepository
	noteRepo       repository.NotificationRepository
	emailSvc       EmailService
	settings       *settings.Store
	now            func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	propRepo repository.PropertyRepository,
	commissionRepo repository.CommissionRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	settingsStore *settings.Store,
) BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		propRepo:       propRepo,
		commissionRepo: commissionRepo,
		userRepo:       userRepo,
		noteRepo:       noteRepo,
		emailSvc:       emailSvc,
		settings:       settingsStore,
		now:            time.Now,
	}
}

func (s *bookingService) RequestBooking(ctx context.Context, guestID, propertyID, checkIn, checkOut string, guestCount int32) (*domain.Booking, error) {
	if guestCount <= 0 {
		return nil, apperr.Validation("guest count must be positive")
	}

	prop, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop.Status != domain.PropertyStatusActive {
		return nil, apperr.Conflict("this property is not open for booking")
	}
	if prop.HostID == guestID {
		return nil, apperr.Validation("hosts cannot book their own property")
	}

	total, err := pricing.StayCost(prop.PriceDzd, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		PropertyID:     propertyID,
		GuestID:        guestID,
		HostID:         prop.HostID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		TotalAmountDzd: total,
		GuestCount:     guestCount,
		Status:         domain.BookingStatusPending,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	guest, err := s.userRepo.GetByID(ctx, guestID)
	if err != nil {
		logger.Warn("skipping host notification, guest lookup failed", "booking_id", booking.ID, "error", err)
		return booking, nil
	}
	s.notify(ctx, prop.HostID, "New booking request",
		fmt.Sprintf("%s requested to book '%s' from %s to %s", guest.Name, prop.Title, checkIn, checkOut),
		"BOOKING_REQUEST", booking.ID,
		func(host *domain.User) error {
			return s.emailSvc.SendBookingRequest(ctx, host.Email, guest.Name, prop.Title)
		})

	return booking, nil
}

func (s *bookingService) Confirm(ctx context.Context, hostID, bookingID string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.HostID != hostID {
		return nil, apperr.New(apperr.KindForbidden, "only the host may confirm this booking")
	}
	if err := domain.GuardConfirm(b.Status); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, b.Status, domain.BookingStatusConfirmed); err != nil {
		return nil, err
	}

	prop, perr := s.propRepo.GetByID(ctx, b.PropertyID)
	title := b.PropertyID
	category := domain.PropertyCategoryShortStay
	if perr == nil {
		title = prop.Title
		category = prop.Category
	}

	// A pending commission row is cut at confirmation and settles when the
	// stay completes. Earnings queries only count completed rows, so an
	// eventual cancellation leaves the balance untouched.
	if err := s.commissionRepo.Create(ctx, s.commissionFor(b, category)); err != nil {
		logger.Error("failed to record commission transaction", "booking_id", b.ID, "error", err)
	}
	s.notify(ctx, b.GuestID, "Booking confirmed",
		fmt.Sprintf("Your booking for '%s' starting %s is confirmed", title, b.CheckInDate),
		"BOOKING_CONFIRMED", b.ID,
		func(guest *domain.User) error {
			return s.emailSvc.SendBookingConfirmed(ctx, guest.Email, title, b.CheckInDate)
		})

	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *bookingService) commissionFor(b *domain.Booking, category domain.PropertyCategory) *domain.CommissionTransaction {
	rates := settings.DefaultCommissionRates()
	if snap, ok := s.settings.Snapshot(); ok {
		rates = snap.Commission
	}
	rate := rates.ShortStay
	switch category {
	case domain.PropertyCategorySale:
		rate = rates.Sale
	case domain.PropertyCategoryRent:
		rate = rates.Rent
	}
	commission := int64(math.Round(float64(b.TotalAmountDzd) * rate))
	return &domain.CommissionTransaction{
		BookingID:           b.ID,
		HostID:              b.HostID,
		TotalAmountDzd:      b.TotalAmountDzd,
		CommissionAmountDzd: commission,
		HostPayoutDzd:       b.TotalAmountDzd - commission,
		Status:              domain.CommissionStatusPending,
	}
}

func (s *bookingService) Complete(ctx context.Context, hostID, bookingID string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.HostID != hostID {
		return nil, apperr.New(apperr.KindForbidden, "only the host may complete this booking")
	}
	if err := domain.GuardComplete(b.Status); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, b.Status, domain.BookingStatusCompleted); err != nil {
		return nil, err
	}
	if err := s.commissionRepo.MarkCompletedByBooking(ctx, bookingID); err != nil {
		logger.Error("failed to settle commission transaction", "booking_id", bookingID, "error", err)
	}
	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *bookingService) Cancel(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.GuestID != userID && b.HostID != userID {
		return nil, apperr.New(apperr.KindForbidden, "only a booking participant may cancel it")
	}
	if err := domain.GuardCancel(b.Status); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, b.Status, domain.BookingStatusCancelled); err != nil {
		return nil, err
	}

	prop, perr := s.propRepo.GetByID(ctx, b.PropertyID)
	title := b.PropertyID
	if perr == nil {
		title = prop.Title
	}
	counterparty := b.HostID
	if userID == b.HostID {
		counterparty = b.GuestID
	}
	s.notify(ctx, counterparty, "Booking cancelled",
		fmt.Sprintf("A booking for '%s' starting %s was cancelled", title, b.CheckInDate),
		"BOOKING_CANCELLED", b.ID,
		func(u *domain.User) error {
			return s.emailSvc.SendBookingCancelled(ctx, u.Email, title)
		})

	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *bookingService) GetBooking(ctx context.Context, userID string, role domain.Role, bookingID string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.GuestID != userID && b.HostID != userID && role != domain.RoleAdmin {
		return nil, apperr.New(apperr.KindForbidden, "you are not a participant in this booking")
	}
	return b, nil
}

func (s *bookingService) MyBookings(ctx context.Context, guestID string, bucket domain.BookingBucket, page, pageSize int32) ([]domain.Booking, int32, error) {
	list, total, err := s.bookingRepo.ListByGuest(ctx, guestID, "", page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return s.filterBucket(list, bucket), total, nil
}

func (s *bookingService) HostBookings(ctx context.Context, hostID string, bucket domain.BookingBucket, page, pageSize int32) ([]domain.Booking, int32, error) {
	list, total, err := s.bookingRepo.ListByHost(ctx, hostID, "", page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return s.filterBucket(list, bucket), total, nil
}

// filterBucket classifies each booking against the current wall clock. The
// bucket is derived per call and never persisted.
func (s *bookingService) filterBucket(list []domain.Booking, bucket domain.BookingBucket) []domain.Booking {
	if bucket == domain.BookingBucketNone {
		return list
	}
	today := s.now()
	out := make([]domain.Booking, 0, len(list))
	for _, b := range list {
		if b.Bucket(today) == bucket {
			out = append(out, b)
		}
	}
	return out
}

func (s *bookingService) notify(ctx context.Context, userID, title, message, noteType, relatedID string, sendEmail func(*domain.User) error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("skipping notification, user lookup failed", "user_id", userID, "type", noteType, "error", err)
		return
	}

	note := &domain.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      noteType,
		RelatedID: relatedID,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("failed to create notification", "user_id", userID, "type", noteType, "error", err)
	}
	if err := sendEmail(user); err != nil {
		logger.Warn("failed to send notification email", "user_id", userID, "type", noteType, "error", err)
	}
}
