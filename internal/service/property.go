package service

import (
	"context"
	"fmt"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
	"darna-backend/internal/logger"
	"darna-backend/internal/repository"
)

type propertyService struct {
	propRepo repository.PropertyRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	emailSvc EmailService
}

func NewPropertyService(
	propRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
) PropertyService {
	return &propertyService{
		propRepo: propRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
		emailSvc: emailSvc,
	}
}

func validateListing(p *domain.Property) error {
	if p.Title == "" {
		return apperr.Validation("a listing title is required")
	}
	if p.PriceDzd <= 0 {
		return apperr.Validation("the listing price must be positive")
	}
	switch p.Category {
	case domain.PropertyCategorySale, domain.PropertyCategoryRent, domain.PropertyCategoryShortStay:
	default:
		return apperr.Newf(apperr.KindValidation, "unknown listing category %q", p.Category)
	}
	return nil
}

func (s *propertyService) CreateListing(ctx context.Context, hostID string, p *domain.Property, publish bool) (*domain.Property, error) {
	if err := validateListing(p); err != nil {
		return nil, err
	}
	p.HostID = hostID
	p.Status = domain.PropertyStatusDraft
	if publish {
		// "Save and publish" goes straight into the moderation queue.
		p.Status = domain.PropertyStatusPending
	}
	p.RejectionReason = ""
	p.ModeratedBy = nil
	p.ModeratedOn = nil

	if err := s.propRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *propertyService) GetListing(ctx context.Context, id string) (*domain.Property, error) {
	return s.propRepo.GetByID(ctx, id)
}

func (s *propertyService) UpdateListing(ctx context.Context, userID string, role domain.Role, p *domain.Property) (*domain.Property, error) {
	existing, err := s.propRepo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if existing.HostID != userID && role != domain.RoleAdmin {
		return nil, apperr.New(apperr.KindForbidden, "only the owner may edit this listing")
	}
	if err := validateListing(p); err != nil {
		return nil, err
	}

	// Edits never change the lifecycle state or moderation trail.
	p.HostID = existing.HostID
	p.Status = existing.Status
	p.RejectionReason = existing.RejectionReason
	p.ModeratedBy = existing.ModeratedBy
	p.ModeratedOn = existing.ModeratedOn

	if err := s.propRepo.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.propRepo.GetByID(ctx, p.ID)
}

func (s *propertyService) DeleteListing(ctx context.Context, userID string, role domain.Role, id string) error {
	existing, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.HostID != userID && role != domain.RoleAdmin {
		return apperr.New(apperr.KindForbidden, "only the owner may delete this listing")
	}
	return s.propRepo.Delete(ctx, id)
}

func (s *propertyService) Submit(ctx context.Context, hostID, id string) (*domain.Property, error) {
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.HostID != hostID {
		return nil, apperr.New(apperr.KindForbidden, "only the owner may submit this listing")
	}
	if err := domain.GuardSubmit(p.Status); err != nil {
		return nil, err
	}
	if err := s.propRepo.UpdateStatus(ctx, id, p.Status, domain.PropertyStatusPending, "", ""); err != nil {
		return nil, err
	}
	return s.propRepo.GetByID(ctx, id)
}

func (s *propertyService) Approve(ctx context.Context, adminID, id string) (*domain.Property, error) {
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.GuardApprove(p.Status); err != nil {
		return nil, err
	}
	if err := s.propRepo.UpdateStatus(ctx, id, p.Status, domain.PropertyStatusActive, "", adminID); err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, p, "Listing approved",
		fmt.Sprintf("Your listing '%s' has been approved and is now live", p.Title),
		"LISTING_APPROVED",
		func(owner *domain.User) error {
			return s.emailSvc.SendListingApproved(ctx, owner.Email, owner.Name, p.Title)
		})

	return s.propRepo.GetByID(ctx, id)
}

func (s *propertyService) Reject(ctx context.Context, adminID, id, reason string) (*domain.Property, error) {
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.GuardReject(p.Status, reason); err != nil {
		return nil, err
	}

	// Rejecting suspends, whether the listing was still pending or already
	// live. Approve is the only way back from suspended.
	if err := s.propRepo.UpdateStatus(ctx, id, p.Status, domain.PropertyStatusSuspended, reason, adminID); err != nil {
		return nil, err
	}

	s.notifyOwner(ctx, p, "Listing rejected",
		fmt.Sprintf("Your listing '%s' was rejected: %s", p.Title, reason),
		"LISTING_REJECTED",
		func(owner *domain.User) error {
			return s.emailSvc.SendListingRejected(ctx, owner.Email, owner.Name, p.Title, reason)
		})

	return s.propRepo.GetByID(ctx, id)
}

// notifyOwner writes the in-app notice and sends the email. Both are
// best-effort: failures are logged and never surface to the caller, so a
// flaky mail relay cannot roll back a moderation decision.
func (s *propertyService) notifyOwner(ctx context.Context, p *domain.Property, title, message, noteType string, sendEmail func(*domain.User) error) {
	owner, err := s.userRepo.GetByID(ctx, p.HostID)
	if err != nil {
		logger.Warn("skipping owner notification, owner lookup failed", "property_id", p.ID, "host_id", p.HostID, "error", err)
		return
	}

	note := &domain.Notification{
		UserID:    owner.ID,
		Title:     title,
		Message:   message,
		Type:      noteType,
		RelatedID: p.ID,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("failed to create notification", "user_id", owner.ID, "type", noteType, "error", err)
	}
	if err := sendEmail(owner); err != nil {
		logger.Warn("failed to send notification email", "user_id", owner.ID, "type", noteType, "error", err)
	}
}

func (s *propertyService) Browse(ctx context.Context, filter repository.PropertyFilter, page, pageSize int32) ([]domain.Property, int32, error) {
	// Public browsing only ever sees active listings.
	filter.Status = domain.PropertyStatusActive
	return s.propRepo.List(ctx, filter, page, pageSize)
}

func (s *propertyService) ListMine(ctx context.Context, hostID string, page, pageSize int32) ([]domain.Property, int32, error) {
	return s.propRepo.ListByHost(ctx, hostID, page, pageSize)
}

func (s *propertyService) ModerationQueue(ctx context.Context, page, pageSize int32) ([]domain.Property, int32, error) {
	return s.propRepo.List(ctx, repository.PropertyFilter{Status: domain.PropertyStatusPending}, page, pageSize)
}
