package domain

import "darna-backend/internal/apperr"

type PropertyStatus string

const (
	PropertyStatusDraft     PropertyStatus = "draft"
	PropertyStatusPending   PropertyStatus = "pending"
	PropertyStatusActive    PropertyStatus = "active"
	PropertyStatusSuspended PropertyStatus = "suspended"
)

type PropertyCategory string

const (
	PropertyCategorySale      PropertyCategory = "sale"
	PropertyCategoryRent      PropertyCategory = "rent"
	PropertyCategoryShortStay PropertyCategory = "short-stay"
)

// Property is a listing owned by exactly one host. PriceDzd is the canonical
// amount in DZD; every other currency is a display-only conversion.
type Property struct {
	ID              string           `json:"id"`
	HostID          string           `json:"host_id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Category        PropertyCategory `json:"category"`
	Status          PropertyStatus   `json:"status"`
	PriceDzd        int64            `json:"price_dzd"`
	PriceType       string           `json:"price_type"`
	Wilaya          string           `json:"wilaya"`
	Address         string           `json:"address"`
	Bedrooms        int32            `json:"bedrooms"`
	Bathrooms       int32            `json:"bathrooms"`
	AreaSqm         int32            `json:"area_sqm"`
	ImageURLs       []string         `json:"image_urls"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	ModeratedBy     *string          `json:"moderated_by,omitempty"`
	ModeratedOn     *string          `json:"moderated_on,omitempty"`
	CreatedOn       string           `json:"created_on"`
	UpdatedOn       string           `json:"updated_on"`
}

// Moderation transitions are guarded by the expected prior state. A stale
// in-memory status never silently overwrites a newer one; the repository
// update is a compare-and-set on (id, prior status) and the guards below
// reject impossible transitions before any store call.

// CanSubmit reports whether a host may move the listing into moderation.
func (s PropertyStatus) CanSubmit() bool {
	return s == PropertyStatusDraft
}

// CanApprove reports whether an admin approve is valid. Approve activates a
// pending listing and is also the only way back from suspended.
func (s PropertyStatus) CanApprove() bool {
	return s == PropertyStatusPending || s == PropertyStatusSuspended
}

// CanReject reports whether an admin reject is valid.
func (s PropertyStatus) CanReject() bool {
	return s == PropertyStatusPending || s == PropertyStatusActive
}

// GuardSubmit validates the submit transition.
func GuardSubmit(s PropertyStatus) error {
	if !s.CanSubmit() {
		return apperr.Newf(apperr.KindConflict, "listing cannot be submitted while %s", s)
	}
	return nil
}

// GuardApprove validates the approve transition.
func GuardApprove(s PropertyStatus) error {
	if !s.CanApprove() {
		return apperr.Newf(apperr.KindConflict, "listing cannot be approved while %s", s)
	}
	return nil
}

// GuardReject validates the reject transition. Reject always carries a
// reason; an empty one is a validation error, not a conflict.
func GuardReject(s PropertyStatus, reason string) error {
	if reason == "" {
		return apperr.Validation("a rejection reason is required")
	}
	if !s.CanReject() {
		return apperr.Newf(apperr.KindConflict, "listing cannot be rejected while %s", s)
	}
	return nil
}
