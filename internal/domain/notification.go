package domain

// Notification is an in-app notice written after a lifecycle transition.
// Writes are best-effort: a failed insert is logged as a warning and never
// rolls back the transition that triggered it.
type Notification struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	Type       string            `json:"type"`
	RelatedID  string            `json:"related_id,omitempty"`
	IsRead     bool              `json:"is_read"`
	Attributes map[string]string `json:"attributes,omitempty"`
	CreatedOn  string            `json:"created_on"`
}
