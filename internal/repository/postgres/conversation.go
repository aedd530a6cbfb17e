package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"darna-backend/internal/apperr"
	"darna-backend/internal/domain"
	"darna-backend/internal/repository"
)

type conversationRepository struct {
	db *sql.DB
}

func NewConversationRepository(db *sql.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, c *domain.Conversation) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	query := `INSERT INTO conversations (id, type, status, property_id, participant_ids, last_activity_on, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $6)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Type, c.Status, c.PropertyID, pq.Array(c.ParticipantIDs), time.Now())
	return err
}

func scanConversation(row interface{ Scan(...any) error }) (*domain.Conversation, error) {
	c := &domain.Conversation{}
	var propertyID sql.NullString
	var lastActivity, createdOn time.Time
	err := row.Scan(&c.ID, &c.Type, &c.Status, &propertyID, pq.Array(&c.ParticipantIDs), &lastActivity, &createdOn)
	if err != nil {
		return nil, err
	}
	if propertyID.Valid {
		c.PropertyID = &propertyID.String
	}
	c.LastActivityOn = lastActivity.Format(timestampLayout)
	c.CreatedOn = createdOn.Format(timestampLayout)
	return c, nil
}

const conversationColumns = `id, type, status, property_id, participant_ids, last_activity_on, created_on`

func (r *conversationRepository) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`
	c, err := scanConversation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("conversation not found")
	}
	return c, err
}

// SetStatus is deliberately unguarded: active↔closed is reversible with no
// prior-state condition.
func (r *conversationRepository) SetStatus(ctx context.Context, id string, status domain.ConversationStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE conversations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperr.NotFound("conversation not found")
	}
	return nil
}

func (r *conversationRepository) ListByParticipant(ctx context.Context, userID string, page, pageSize int32) ([]domain.Conversation, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM conversations WHERE $1 = ANY(participant_ids)`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE $1 = ANY(participant_ids)
	          ORDER BY last_activity_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var conversations []domain.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, 0, err
		}
		conversations = append(conversations, *c)
	}
	return conversations, count, rows.Err()
}

// CreateMessage inserts the message and bumps last_activity_on atomically so
// list ordering never drifts from message history.
func (r *conversationRepository) CreateMessage(ctx context.Context, m *domain.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO messages (id, conversation_id, sender_id, body, created_on) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.ConversationID, m.SenderID, m.Body, now); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE conversations SET last_activity_on = $1 WHERE id = $2`, now, m.ConversationID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *conversationRepository) ListMessages(ctx context.Context, conversationID string, page, pageSize int32) ([]domain.Message, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM messages WHERE conversation_id = $1`, conversationID).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, conversation_id, sender_id, body, created_on FROM messages
	          WHERE conversation_id = $1 ORDER BY created_on ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, conversationID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var m domain.Message
		var createdOn time.Time
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &createdOn); err != nil {
			return nil, 0, err
		}
		m.CreatedOn = createdOn.Format(timestampLayout)
		messages = append(messages, m)
	}
	return messages, count, rows.Err()
}
