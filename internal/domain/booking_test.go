package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"darna-backend/internal/apperr"
)

func TestBooking_Bucket(t *testing.T) {
	today := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		status   BookingStatus
		want     BookingBucket
	}{
		{"future confirmed is upcoming", "2026-09-10", "2026-09-15", BookingStatusConfirmed, BookingBucketUpcoming},
		{"future pending is upcoming", "2026-09-10", "2026-09-15", BookingStatusPending, BookingBucketUpcoming},
		{"starts today is upcoming", "2026-09-01", "2026-09-05", BookingStatusConfirmed, BookingBucketUpcoming},
		{"in progress is current", "2026-08-30", "2026-09-03", BookingStatusConfirmed, BookingBucketCurrent},
		// A check-out before today is past even when the stored status still
		// says confirmed.
		{"yesterday check-out still confirmed is past", "2026-08-25", "2026-08-31", BookingStatusConfirmed, BookingBucketPast},
		{"completed is past regardless of dates", "2026-09-10", "2026-09-15", BookingStatusCompleted, BookingBucketPast},
		{"cancelled is no bucket", "2026-09-10", "2026-09-15", BookingStatusCancelled, BookingBucketNone},
		{"cancelled with past dates is past", "2026-08-20", "2026-08-25", BookingStatusCancelled, BookingBucketPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{CheckInDate: tt.checkIn, CheckOutDate: tt.checkOut, Status: tt.status}
			assert.Equal(t, tt.want, b.Bucket(today))
		})
	}
}

func TestBookingGuards(t *testing.T) {
	assert.NoError(t, GuardConfirm(BookingStatusPending))
	assert.True(t, apperr.IsKind(GuardConfirm(BookingStatusConfirmed), apperr.KindConflict))
	assert.True(t, apperr.IsKind(GuardConfirm(BookingStatusCancelled), apperr.KindConflict))

	assert.NoError(t, GuardComplete(BookingStatusConfirmed))
	assert.True(t, apperr.IsKind(GuardComplete(BookingStatusPending), apperr.KindConflict))

	assert.NoError(t, GuardCancel(BookingStatusPending))
	assert.NoError(t, GuardCancel(BookingStatusConfirmed))
	assert.True(t, apperr.IsKind(GuardCancel(BookingStatusCompleted), apperr.KindConflict))
	assert.True(t, apperr.IsKind(GuardCancel(BookingStatusCancelled), apperr.KindConflict))
}
