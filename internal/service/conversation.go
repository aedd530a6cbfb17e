package service

import (
	"context"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
	"darna-backend/internal/repository"
	"darna-backend/internal/settings"
)

type conversationService struct {
	convRepo repository.ConversationRepository
	userRepo repository.UserRepository
	settings *settings.Store
}

func NewConversationService(convRepo repository.ConversationRepository, userRepo repository.UserRepository, settingsStore *settings.Store) ConversationService {
	return &conversationService{
		convRepo: convRepo,
		userRepo: userRepo,
		settings: settingsStore,
	}
}

func (s *conversationService) Start(ctx context.Context, creatorID string, convType domain.ConversationType, propertyID *string, participantIDs []string) (*domain.Conversation, error) {
	switch convType {
	case domain.ConversationTypePropertyInquiry, domain.ConversationTypeHostToHost, domain.ConversationTypeSupport:
	default:
		return nil, apperr.Newf(apperr.KindValidation, "unknown conversation type %q", convType)
	}
	if convType == domain.ConversationTypePropertyInquiry && (propertyID == nil || *propertyID == "") {
		return nil, apperr.Validation("a property inquiry must reference a property")
	}

	participants := participantIDs
	if !contains(participants, creatorID) {
		participants = append([]string{creatorID}, participants...)
	}
	if len(participants) < 2 {
		return nil, apperr.Validation("a conversation needs at least two participants")
	}
	for _, id := range participants {
		if _, err := s.userRepo.GetByID(ctx, id); err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				return nil, apperr.Newf(apperr.KindValidation, "participant %s does not exist", id)
			}
			return nil, err
		}
	}

	c := &domain.Conversation{
		Type:           convType,
		Status:         domain.ConversationStatusActive,
		PropertyID:     propertyID,
		ParticipantIDs: participants,
	}
	if err := s.convRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Close and Reopen are unguarded on purpose: the status flips freely in both
// directions and closing twice is a no-op.

func (s *conversationService) Close(ctx context.Context, id string) (*domain.Conversation, error) {
	return s.setStatus(ctx, id, domain.ConversationStatusClosed)
}

func (s *conversationService) Reopen(ctx context.Context, id string) (*domain.Conversation, error) {
	return s.setStatus(ctx, id, domain.ConversationStatusActive)
}

func (s *conversationService) setStatus(ctx context.Context, id string, status domain.ConversationStatus) (*domain.Conversation, error) {
	if _, err := s.convRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.convRepo.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.convRepo.GetByID(ctx, id)
}

func (s *conversationService) SendMessage(ctx context.Context, senderID, conversationID, body string) (*domain.Message, error) {
	if body == "" {
		return nil, apperr.Validation("a message body is required")
	}
	if snap, ok := s.settings.Snapshot(); ok && !snap.Commenting.Enabled {
		return nil, apperr.New(apperr.KindUnavailable, "messaging is temporarily disabled")
	}

	c, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !contains(c.ParticipantIDs, senderID) {
		return nil, apperr.New(apperr.KindForbidden, "you are not a participant in this conversation")
	}
	if c.Status == domain.ConversationStatusClosed {
		return nil, apperr.Conflict("this conversation is closed")
	}

	m := &domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Body:           body,
	}
	if err := s.convRepo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *conversationService) List(ctx context.Context, userID string, page, pageSize int32) ([]domain.Conversation, int32, error) {
	return s.convRepo.ListByParticipant(ctx, userID, page, pageSize)
}

func (s *conversationService) Messages(ctx context.Context, userID string, role domain.Role, conversationID string, page, pageSize int32) ([]domain.Message, int32, error) {
	c, err := s.convRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}
	if !contains(c.ParticipantIDs, userID) && role != domain.RoleAdmin {
		return nil, 0, apperr.New(apperr.KindForbidden, "you are not a participant in this conversation")
	}
	return s.convRepo.ListMessages(ctx, conversationID, page, pageSize)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
