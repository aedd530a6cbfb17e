package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
	"darna-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, property_id, guest_id, host_id, check_in_date, check_out_date, total_amount_dzd, guest_count, status, created_on, updated_on`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	query := `INSERT INTO bookings (id, property_id, guest_id, host_id, check_in_date, check_out_date, total_amount_dzd, guest_count, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, b.ID, b.PropertyID, b.GuestID, b.HostID, b.CheckInDate, b.CheckOutDate,
		b.TotalAmountDzd, b.GuestCount, b.Status, now, now)
	return err
}

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	var checkIn, checkOut, createdOn, updatedOn time.Time
	err := row.Scan(&b.ID, &b.PropertyID, &b.GuestID, &b.HostID, &checkIn, &checkOut,
		&b.TotalAmountDzd, &b.GuestCount, &b.Status, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	b.CheckInDate = checkIn.Format(domain.DateLayout)
	b.CheckOutDate = checkOut.Format(domain.DateLayout)
	b.CreatedOn = createdOn.Format(timestampLayout)
	b.UpdatedOn = updatedOn.Format(timestampLayout)
	return b, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("booking not found")
	}
	return b, err
}

func (r *bookingRepository) list(ctx context.Context, column, id string, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE %s = $1`, bookingColumns, column)
	args := []interface{}{id}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query += fmt.Sprintf(" ORDER BY check_in_date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListByGuest(ctx context.Context, guestID string, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "guest_id", guestID, status, page, pageSize)
}

func (r *bookingRepository) ListByHost(ctx context.Context, hostID string, status domain.BookingStatus, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "host_id", hostID, status, page, pageSize)
}

// UpdateStatus is a compare-and-set on (id, from).
func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, from, to domain.BookingStatus) error {
	query := `UPDATE bookings SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`
	result, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.Conflict("booking status changed underneath you, refresh and retry")
	}
	return nil
}

// CompletePastCheckouts advances confirmed bookings whose check-out date is
// before today. Today is supplied by the caller to keep the job testable.
func (r *bookingRepository) CompletePastCheckouts(ctx context.Context, today string) ([]domain.Booking, error) {
	query := `UPDATE bookings
	          SET status = 'completed', updated_on = NOW()
	          WHERE status = 'confirmed' AND check_out_date < $1
	          RETURNING ` + bookingColumns
	rows, err := r.db.QueryContext(ctx, query, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completed []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		completed = append(completed, *b)
	}
	return completed, rows.Err()
}
