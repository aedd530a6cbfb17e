package postgres

import (
	"context"
	"database/sql"
	"time"

	"darna-backend/internal/domain"
	"darna-backend/internal/repository"
)

type wishlistRepository struct {
	db *sql.DB
}

func NewWishlistRepository(db *sql.DB) repository.WishlistRepository {
	return &wishlistRepository{db: db}
}

// Toggle flips membership in one transaction: delete first, and insert only
// when nothing was deleted. The store remains the source of truth; two
// immediate toggles land back on the original state.
func (r *wishlistRepository) Toggle(ctx context.Context, userID, propertyID string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM wishlists WHERE user_id = $1 AND property_id = $2`, userID, propertyID)
	if err != nil {
		return false, err
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	member := false
	if deleted == 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO wishlists (user_id, property_id, created_on) VALUES ($1, $2, $3)`,
			userID, propertyID, time.Now()); err != nil {
			return false, err
		}
		member = true
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return member, nil
}

func (r *wishlistRepository) Contains(ctx context.Context, userID, propertyID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM wishlists WHERE user_id = $1 AND property_id = $2)`,
		userID, propertyID).Scan(&exists)
	return exists, err
}

func (r *wishlistRepository) ListByUser(ctx context.Context, userID string) ([]domain.Property, error) {
	query := `SELECT p.id, p.host_id, p.title, p.description, p.category, p.status, p.price_dzd, p.price_type, p.wilaya, p.address,
	            p.bedrooms, p.bathrooms, p.area_sqm, p.image_urls, p.rejection_reason, p.moderated_by, p.moderated_on, p.created_on, p.updated_on
	          FROM properties p
	          JOIN wishlists w ON w.property_id = p.id
	          WHERE w.user_id = $1 ORDER BY w.created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}
