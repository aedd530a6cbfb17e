package jobs

import (
	"context"
	"time"

	"darna-backend/internal/domain"
	"darna-backend/internal/logger"
)

// CompletePastBookings moves confirmed bookings whose check-out date has
// passed into completed and settles their commission rows, so host earnings
// catch up even when the host never presses "complete".
func (jr *JobRunner) CompletePastBookings() {
	jr.runWithRecovery("CompletePastBookings", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format(domain.DateLayout)

		completed, err := jr.store.CompletePastCheckouts(ctx, today)
		if err != nil {
			logger.Error("Failed to complete past bookings", "error", err)
			return
		}

		for i := range completed {
			b := &completed[i]
			if err := jr.store.MarkCompletedByBooking(ctx, b.ID); err != nil {
				logger.Error("Failed to settle commission for completed booking", "booking_id", b.ID, "error", err)
			}
			note := &domain.Notification{
				UserID:    b.GuestID,
				Title:     "Stay completed",
				Message:   "Your stay has ended, thanks for booking with Darna",
				Type:      "BOOKING_COMPLETED",
				RelatedID: b.ID,
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Warn("failed to create completion notification", "booking_id", b.ID, "error", err)
			}
		}

		logger.Info("Completed past bookings", "count", len(completed))
	})
}

// SendCheckInReminders notifies guests whose stay starts tomorrow.
func (jr *JobRunner) SendCheckInReminders() {
	jr.runWithRecovery("SendCheckInReminders", func() {
		ctx := context.Background()
		tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(domain.DateLayout)

		query := `
			SELECT b.id, b.guest_id, b.check_in_date, p.title, u.email
			FROM bookings b
			JOIN properties p ON p.id = b.property_id
			JOIN users u ON u.id = b.guest_id
			WHERE b.status = 'confirmed'
			  AND b.check_in_date = $1
		`
		rows, err := jr.db.QueryContext(ctx, query, tomorrow)
		if err != nil {
			logger.Error("Failed to query upcoming check-ins", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var bookingID, guestID, checkIn, title, email string
			if err := rows.Scan(&bookingID, &guestID, &checkIn, &title, &email); err != nil {
				logger.Error("Failed to scan upcoming check-in", "error", err)
				continue
			}

			note := &domain.Notification{
				UserID:    guestID,
				Title:     "Check-in tomorrow",
				Message:   "Your stay at '" + title + "' starts tomorrow",
				Type:      "CHECK_IN_REMINDER",
				RelatedID: bookingID,
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Warn("failed to create check-in reminder", "booking_id", bookingID, "error", err)
			}
			if err := jr.services.Email.SendBookingConfirmed(ctx, email, title, checkIn); err != nil {
				logger.Warn("failed to send check-in reminder email", "booking_id", bookingID, "error", err)
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating upcoming check-ins", "error", err)
			return
		}

		logger.Info("Sent check-in reminders", "count", count)
	})
}
