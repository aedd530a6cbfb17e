package domain

import (
	"time"

	"darna-backend/internal/apperr"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking references one property and one guest. Dates are calendar dates in
// yyyy-mm-dd form; with that layout lexicographic comparison is date
// comparison, which the repositories and bucket derivation rely on.
type Booking struct {
	ID             string        `json:"id"`
	PropertyID     string        `json:"property_id"`
	GuestID        string        `json:"guest_id"`
	HostID         string        `json:"host_id"`
	CheckInDate    string        `json:"check_in_date"`
	CheckOutDate   string        `json:"check_out_date"`
	TotalAmountDzd int64         `json:"total_amount_dzd"`
	GuestCount     int32         `json:"guest_count"`
	Status         BookingStatus `json:"status"`
	CreatedOn      string        `json:"created_on"`
	UpdatedOn      string        `json:"updated_on"`
}

// BookingBucket is the derived display bucket. It is never stored: "today"
// is a volatile input re-read at query time, so the bucket is recomputed on
// every call from dates plus stored status.
type BookingBucket string

const (
	BookingBucketUpcoming BookingBucket = "upcoming"
	BookingBucketPast     BookingBucket = "past"
	BookingBucketCurrent  BookingBucket = "current"
	BookingBucketNone     BookingBucket = ""
)

// DateLayout is the calendar date layout used across the domain.
const DateLayout = "2006-01-02"

// Bucket classifies a booking against the given wall-clock moment.
// past wins over upcoming: a completed booking is past regardless of dates,
// and a check-out before today is past even when the stored status still
// says confirmed. Cancelled bookings fall in no bucket.
func (b *Booking) Bucket(today time.Time) BookingBucket {
	day := today.Format(DateLayout)
	if b.CheckOutDate < day || b.Status == BookingStatusCompleted {
		return BookingBucketPast
	}
	if b.Status == BookingStatusCancelled {
		return BookingBucketNone
	}
	if b.CheckInDate >= day {
		return BookingBucketUpcoming
	}
	return BookingBucketCurrent
}

// GuardConfirm validates host confirmation of a booking request.
func GuardConfirm(s BookingStatus) error {
	if s != BookingStatusPending {
		return apperr.Newf(apperr.KindConflict, "booking cannot be confirmed while %s", s)
	}
	return nil
}

// GuardComplete validates completion of a confirmed stay.
func GuardComplete(s BookingStatus) error {
	if s != BookingStatusConfirmed {
		return apperr.Newf(apperr.KindConflict, "booking cannot be completed while %s", s)
	}
	return nil
}

// GuardCancel validates cancellation. Cancelled is terminal.
func GuardCancel(s BookingStatus) error {
	if s != BookingStatusPending && s != BookingStatusConfirmed {
		return apperr.Newf(apperr.KindConflict, "booking cannot be cancelled while %s", s)
	}
	return nil
}
