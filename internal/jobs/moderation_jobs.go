package jobs

import (
	"context"

	"darna-backend/internal/domain"
	"darna-backend/internal/logger"
)

// RemindPendingModeration nudges admins about listings that have been waiting
// in the moderation queue for more than a day.
func (jr *JobRunner) RemindPendingModeration() {
	jr.runWithRecovery("RemindPendingModeration", func() {
		ctx := context.Background()

		var pending int64
		countQuery := `
			SELECT COUNT(*)
			FROM properties
			WHERE status = 'pending'
			  AND updated_on < NOW() - INTERVAL '1 day'
		`
		if err := jr.db.QueryRowContext(ctx, countQuery).Scan(&pending); err != nil {
			logger.Error("Failed to count stale pending listings", "error", err)
			return
		}
		if pending == 0 {
			logger.Info("No stale pending listings")
			return
		}

		rows, err := jr.db.QueryContext(ctx, `SELECT id FROM users WHERE role = 'admin'`)
		if err != nil {
			logger.Error("Failed to query admins", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var adminID string
			if err := rows.Scan(&adminID); err != nil {
				logger.Error("Failed to scan admin id", "error", err)
				continue
			}
			note := &domain.Notification{
				UserID:  adminID,
				Title:   "Moderation queue backlog",
				Message: "Listings have been waiting in the moderation queue for over a day",
				Type:    "MODERATION_REMINDER",
			}
			if err := jr.store.NotificationRepository.Create(ctx, note); err != nil {
				logger.Warn("failed to create moderation reminder", "admin_id", adminID, "error", err)
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating admins", "error", err)
			return
		}

		logger.Info("Sent moderation reminders", "stale_listings", pending, "admins", count)
	})
}
