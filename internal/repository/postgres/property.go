package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
	"darna-backend/internal/repository"
)

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyColumns = `id, host_id, title, description, category, status, price_dzd, price_type, wilaya, address,
	bedrooms, bathrooms, area_sqm, image_urls, rejection_reason, moderated_by, moderated_on, created_on, updated_on`

func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	query := `INSERT INTO properties (id, host_id, title, description, category, status, price_dzd, price_type, wilaya, address,
	            bedrooms, bathrooms, area_sqm, image_urls, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, p.ID, p.HostID, p.Title, p.Description, p.Category, p.Status, p.PriceDzd, p.PriceType,
		p.Wilaya, p.Address, p.Bedrooms, p.Bathrooms, p.AreaSqm, pq.Array(p.ImageURLs), now, now)
	return err
}

func scanProperty(row interface{ Scan(...any) error }) (*domain.Property, error) {
	p := &domain.Property{}
	var moderatedBy sql.NullString
	var moderatedOn sql.NullTime
	var createdOn, updatedOn time.Time
	err := row.Scan(&p.ID, &p.HostID, &p.Title, &p.Description, &p.Category, &p.Status, &p.PriceDzd, &p.PriceType,
		&p.Wilaya, &p.Address, &p.Bedrooms, &p.Bathrooms, &p.AreaSqm, pq.Array(&p.ImageURLs),
		&p.RejectionReason, &moderatedBy, &moderatedOn, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	if moderatedBy.Valid {
		p.ModeratedBy = &moderatedBy.String
	}
	if moderatedOn.Valid {
		s := moderatedOn.Time.Format(timestampLayout)
		p.ModeratedOn = &s
	}
	p.CreatedOn = createdOn.Format(timestampLayout)
	p.UpdatedOn = updatedOn.Format(timestampLayout)
	return p, nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	p, err := scanProperty(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("listing not found")
	}
	return p, err
}

func (r *propertyRepository) Update(ctx context.Context, p *domain.Property) error {
	query := `UPDATE properties SET title=$1, description=$2, category=$3, price_dzd=$4, price_type=$5, wilaya=$6,
	            address=$7, bedrooms=$8, bathrooms=$9, area_sqm=$10, image_urls=$11, updated_on=$12 WHERE id=$13`
	_, err := r.db.ExecContext(ctx, query, p.Title, p.Description, p.Category, p.PriceDzd, p.PriceType, p.Wilaya,
		p.Address, p.Bedrooms, p.Bathrooms, p.AreaSqm, pq.Array(p.ImageURLs), time.Now(), p.ID)
	return err
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("listing not found")
	}
	return nil
}

// UpdateStatus performs the guarded transition as a compare-and-set: the
// row only changes when its stored status still matches the expected prior
// state, so two racing admin actions cannot both land.
func (r *propertyRepository) UpdateStatus(ctx context.Context, id string, from, to domain.PropertyStatus, reason, moderatorID string) error {
	query := `UPDATE properties SET status=$1, rejection_reason=$2, moderated_by=NULLIF($3, ''), moderated_on=$4, updated_on=$4
	          WHERE id=$5 AND status=$6`
	result, err := r.db.ExecContext(ctx, query, to, reason, moderatorID, time.Now(), id, from)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.Conflict("listing status changed underneath you, refresh and retry")
	}
	return nil
}

func (r *propertyRepository) List(ctx context.Context, filter repository.PropertyFilter, page, pageSize int32) ([]domain.Property, int32, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, filter.Category)
		argIdx++
	}
	if filter.Wilaya != "" {
		query += fmt.Sprintf(" AND wilaya = $%d", argIdx)
		args = append(args, filter.Wilaya)
		argIdx++
	}
	if filter.MaxPriceDzd > 0 {
		query += fmt.Sprintf(" AND price_dzd <= $%d", argIdx)
		args = append(args, filter.MaxPriceDzd)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		properties = append(properties, *p)
	}
	return properties, count, rows.Err()
}

func (r *propertyRepository) ListByHost(ctx context.Context, hostID string, page, pageSize int32) ([]domain.Property, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM properties WHERE host_id = $1`, hostID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE host_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, hostID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		properties = append(properties, *p)
	}
	return properties, count, rows.Err()
}
