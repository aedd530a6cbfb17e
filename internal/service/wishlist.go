package service

import (
	"context"

	"darna-backend/internal/domain"
	"darna-backend/internal/repository"
)

type wishlistService struct {
	wishRepo repository.WishlistRepository
	propRepo repository.PropertyRepository
}

func NewWishlistService(wishRepo repository.WishlistRepository, propRepo repository.PropertyRepository) WishlistService {
	return &wishlistService{wishRepo: wishRepo, propRepo: propRepo}
}

// Toggle flips wishlist membership and reports the new state. Two rapid
// toggles of the same pair restore the original state; the flip itself is a
// single delete-or-insert in the repository, so there is nothing to guard
// here beyond the property existing.
func (s *wishlistService) Toggle(ctx context.Context, userID, propertyID string) (bool, error) {
	if _, err := s.propRepo.GetByID(ctx, propertyID); err != nil {
		return false, err
	}
	return s.wishRepo.Toggle(ctx, userID, propertyID)
}

func (s *wishlistService) List(ctx context.Context, userID string) ([]domain.Property, error) {
	return s.wishRepo.ListByUser(ctx, userID)
}
