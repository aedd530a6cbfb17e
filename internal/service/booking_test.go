package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
	"darna-backend/internal/settings"
)

type bookingFixture struct {
	bookingRepo    *MockBookingRepo
	propRepo       *MockPropertyRepo
	commissionRepo *MockCommissionRepo
	userRepo       *MockUserRepo
	noteRepo       *MockNotificationRepo
	emailSvc       *MockEmailService
	svc            BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookingRepo:    new(MockBookingRepo),
		propRepo:       new(MockPropertyRepo),
		commissionRepo: new(MockCommissionRepo),
		userRepo:       new(MockUserRepo),
		noteRepo:       new(MockNotificationRepo),
		emailSvc:       new(MockEmailService),
	}
	// An unloaded store serves built-in defaults, which is what these tests
	// want.
	settingsStore := settings.NewStore(new(MockSettingsRepo))
	f.svc = NewBookingService(f.bookingRepo, f.propRepo, f.commissionRepo, f.userRepo, f.noteRepo, f.emailSvc, settingsStore)
	return f
}

func TestBookingService_RequestBooking(t *testing.T) {
	ctx := context.Background()
	active := &domain.Property{
		ID:       "p-1",
		HostID:   "host-1",
		Title:    "Villa",
		Status:   domain.PropertyStatusActive,
		Category: domain.PropertyCategoryShortStay,
		PriceDzd: 8000,
	}

	t.Run("total is nightly price times nights", func(t *testing.T) {
		f := newBookingFixture()
		f.propRepo.On("GetByID", ctx, "p-1").Return(active, nil)
		f.bookingRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
		f.userRepo.On("GetByID", ctx, "guest-1").Return(&domain.User{ID: "guest-1", Name: "Lina"}, nil)
		f.userRepo.On("GetByID", ctx, "host-1").Return(&domain.User{ID: "host-1", Email: "h@test.dz"}, nil)
		f.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		f.emailSvc.On("SendBookingRequest", ctx, "h@test.dz", "Lina", "Villa").Return(nil)

		b, err := f.svc.RequestBooking(ctx, "guest-1", "p-1", "2026-07-01", "2026-07-04", 2)
		assert.NoError(t, err)
		assert.Equal(t, int64(24000), b.TotalAmountDzd) // 3 nights * 8000
		assert.Equal(t, domain.BookingStatusPending, b.Status)
		assert.Equal(t, "host-1", b.HostID)
	})

	t.Run("same-day range is rejected", func(t *testing.T) {
		f := newBookingFixture()
		f.propRepo.On("GetByID", ctx, "p-1").Return(active, nil)

		_, err := f.svc.RequestBooking(ctx, "guest-1", "p-1", "2026-07-01", "2026-07-01", 2)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
		f.bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("inactive property cannot be booked", func(t *testing.T) {
		f := newBookingFixture()
		f.propRepo.On("GetByID", ctx, "p-2").Return(&domain.Property{ID: "p-2", Status: domain.PropertyStatusSuspended}, nil)

		_, err := f.svc.RequestBooking(ctx, "guest-1", "p-2", "2026-07-01", "2026-07-04", 2)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})

	t.Run("host cannot book own property", func(t *testing.T) {
		f := newBookingFixture()
		f.propRepo.On("GetByID", ctx, "p-1").Return(active, nil)

		_, err := f.svc.RequestBooking(ctx, "host-1", "p-1", "2026-07-01", "2026-07-04", 2)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	})
}

func TestBookingService_Confirm(t *testing.T) {
	ctx := context.Background()
	pending := &domain.Booking{
		ID:             "b-1",
		PropertyID:     "p-1",
		GuestID:        "guest-1",
		HostID:         "host-1",
		CheckInDate:    "2026-07-01",
		TotalAmountDzd: 24000,
		Status:         domain.BookingStatusPending,
	}
	prop := &domain.Property{ID: "p-1", Title: "Villa", Category: domain.PropertyCategoryShortStay}

	t.Run("confirm cuts a pending commission row", func(t *testing.T) {
		f := newBookingFixture()
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(pending, nil).Once()
		f.bookingRepo.On("UpdateStatus", ctx, "b-1", domain.BookingStatusPending, domain.BookingStatusConfirmed).Return(nil)
		f.propRepo.On("GetByID", ctx, "p-1").Return(prop, nil)
		f.commissionRepo.On("Create", ctx, mock.MatchedBy(func(tx *domain.CommissionTransaction) bool {
			// Default short-stay rate is 10%.
			return tx.BookingID == "b-1" &&
				tx.CommissionAmountDzd == 2400 &&
				tx.HostPayoutDzd == 21600 &&
				tx.Status == domain.CommissionStatusPending
		})).Return(nil)
		f.userRepo.On("GetByID", ctx, "guest-1").Return(&domain.User{ID: "guest-1", Email: "g@test.dz"}, nil)
		f.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		f.emailSvc.On("SendBookingConfirmed", ctx, "g@test.dz", "Villa", "2026-07-01").Return(nil)
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(&domain.Booking{ID: "b-1", Status: domain.BookingStatusConfirmed}, nil)

		b, err := f.svc.Confirm(ctx, "host-1", "b-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
		f.commissionRepo.AssertExpectations(t)
	})

	t.Run("only the host may confirm", func(t *testing.T) {
		f := newBookingFixture()
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(pending, nil)

		_, err := f.svc.Confirm(ctx, "guest-1", "b-1")
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("confirm on cancelled is a conflict", func(t *testing.T) {
		f := newBookingFixture()
		f.bookingRepo.On("GetByID", ctx, "b-2").Return(&domain.Booking{ID: "b-2", HostID: "host-1", Status: domain.BookingStatusCancelled}, nil)

		_, err := f.svc.Confirm(ctx, "host-1", "b-2")
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})
}

func TestBookingService_Complete(t *testing.T) {
	ctx := context.Background()

	t.Run("complete settles the commission", func(t *testing.T) {
		f := newBookingFixture()
		confirmed := &domain.Booking{ID: "b-1", HostID: "host-1", Status: domain.BookingStatusConfirmed}
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(confirmed, nil).Once()
		f.bookingRepo.On("UpdateStatus", ctx, "b-1", domain.BookingStatusConfirmed, domain.BookingStatusCompleted).Return(nil)
		f.commissionRepo.On("MarkCompletedByBooking", ctx, "b-1").Return(nil)
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(&domain.Booking{ID: "b-1", Status: domain.BookingStatusCompleted}, nil)

		b, err := f.svc.Complete(ctx, "host-1", "b-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCompleted, b.Status)
		f.commissionRepo.AssertExpectations(t)
	})
}

func TestBookingService_Cancel(t *testing.T) {
	ctx := context.Background()
	confirmed := &domain.Booking{
		ID:          "b-1",
		PropertyID:  "p-1",
		GuestID:     "guest-1",
		HostID:      "host-1",
		CheckInDate: "2026-07-01",
		Status:      domain.BookingStatusConfirmed,
	}

	t.Run("guest cancel notifies the host", func(t *testing.T) {
		f := newBookingFixture()
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(confirmed, nil).Once()
		f.bookingRepo.On("UpdateStatus", ctx, "b-1", domain.BookingStatusConfirmed, domain.BookingStatusCancelled).Return(nil)
		f.propRepo.On("GetByID", ctx, "p-1").Return(&domain.Property{ID: "p-1", Title: "Villa"}, nil)
		f.userRepo.On("GetByID", ctx, "host-1").Return(&domain.User{ID: "host-1", Email: "h@test.dz"}, nil)
		f.noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)
		f.emailSvc.On("SendBookingCancelled", ctx, "h@test.dz", "Villa").Return(nil)
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(&domain.Booking{ID: "b-1", Status: domain.BookingStatusCancelled}, nil)

		b, err := f.svc.Cancel(ctx, "guest-1", "b-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, b.Status)
	})

	t.Run("outsiders cannot cancel", func(t *testing.T) {
		f := newBookingFixture()
		f.bookingRepo.On("GetByID", ctx, "b-1").Return(confirmed, nil)

		_, err := f.svc.Cancel(ctx, "stranger", "b-1")
		assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
	})

	t.Run("cancel after completion is a conflict", func(t *testing.T) {
		f := newBookingFixture()
		f.bookingRepo.On("GetByID", ctx, "b-2").Return(&domain.Booking{ID: "b-2", GuestID: "guest-1", HostID: "host-1", Status: domain.BookingStatusCompleted}, nil)

		_, err := f.svc.Cancel(ctx, "guest-1", "b-2")
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})
}

func TestBookingService_BucketFilter(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture()

	list := []domain.Booking{
		{ID: "up", CheckInDate: "2999-01-01", CheckOutDate: "2999-01-05", Status: domain.BookingStatusConfirmed},
		{ID: "past", CheckInDate: "2020-01-01", CheckOutDate: "2020-01-05", Status: domain.BookingStatusConfirmed},
		{ID: "gone", CheckInDate: "2999-01-01", CheckOutDate: "2999-01-05", Status: domain.BookingStatusCancelled},
	}
	f.bookingRepo.On("ListByGuest", ctx, "guest-1", domain.BookingStatus(""), int32(1), int32(20)).Return(list, int32(3), nil)

	got, total, err := f.svc.MyBookings(ctx, "guest-1", domain.BookingBucketUpcoming, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int32(3), total)
	assert.Len(t, got, 1)
	assert.Equal(t, "up", got[0].ID)
}
