package domain

type ConversationStatus string

const (
	ConversationStatusActive ConversationStatus = "active"
	ConversationStatusClosed ConversationStatus = "closed"
)

type ConversationType string

const (
	ConversationTypePropertyInquiry ConversationType = "property_inquiry"
	ConversationTypeHostToHost      ConversationType = "host_to_host"
	ConversationTypeSupport         ConversationType = "support"
)

// Conversation is a two-state machine: admins may close and reopen it at
// will, with no guard conditions in either direction. LastActivityOn orders
// conversation lists (most recently active first) and is bumped by every
// message send; sending a message never changes Status.
type Conversation struct {
	ID             string             `json:"id"`
	Type           ConversationType   `json:"type"`
	Status         ConversationStatus `json:"status"`
	PropertyID     *string            `json:"property_id,omitempty"`
	ParticipantIDs []string           `json:"participant_ids"`
	LastActivityOn string             `json:"last_activity_on"`
	CreatedOn      string             `json:"created_on"`
}

type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Body           string `json:"body"`
	CreatedOn      string `json:"created_on"`
}
