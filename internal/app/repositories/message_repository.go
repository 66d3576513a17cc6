package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/greeklink/greeklink/internal/app/models"
	"github.com/greeklink/greeklink/internal/pkg/apperrors"
)

// MessageRepository handles database operations for conversations and messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// GetOrCreateConversation finds the thread between two members, creating
// it on first contact. The pair is normalized so (a,b) and (b,a) resolve
// to the same row.
func (r *MessageRepository) GetOrCreateConversation(ctx context.Context, userA, userB int64) (*models.Conversation, error) {
	if userA > userB {
		userA, userB = userB, userA
	}

	query := `
		INSERT INTO conversations (user_a_id, user_b_id)
		VALUES ($1, $2)
		ON CONFLICT (user_a_id, user_b_id) DO UPDATE SET user_a_id = EXCLUDED.user_a_id
		RETURNING id, user_a_id, user_b_id, last_message_at, created_at
	`

	var c models.Conversation
	err := r.db.QueryRow(ctx, query, userA, userB).Scan(
		&c.ID, &c.UserAID, &c.UserBID, &c.LastMessageAt, &c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &c, nil
}

// GetConversationByID retrieves a conversation by id
func (r *MessageRepository) GetConversationByID(ctx context.Context, id int64) (*models.Conversation, error) {
	query := `SELECT id, user_a_id, user_b_id, last_message_at, created_at FROM conversations WHERE id = $1`

	var c models.Conversation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.UserAID, &c.UserBID, &c.LastMessageAt, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &c, nil
}

// ListConversations retrieves a member's conversations, most recently
// active first.
func (r *MessageRepository) ListConversations(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	query := `
		SELECT id, user_a_id, user_b_id, last_message_at, created_at
		FROM conversations
		WHERE user_a_id = $1 OR user_b_id = $1
		ORDER BY last_message_at DESC NULLS LAST, created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	conversations := make([]*models.Conversation, 0)
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.UserAID, &c.UserBID, &c.LastMessageAt, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		conversations = append(conversations, &c)
	}

	return conversations, rows.Err()
}

// CreateMessage appends a message to a conversation and bumps its
// last_message_at stamp.
func (r *MessageRepository) CreateMessage(ctx context.Context, m *models.Message) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	var createdAt time.Time
	err = tx.QueryRow(ctx, `
		INSERT INTO messages (conversation_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, m.ConversationID, m.SenderID, m.Content).Scan(&id, &createdAt)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	_, err = tx.Exec(ctx,
		"UPDATE conversations SET last_message_at = $1 WHERE id = $2",
		createdAt, m.ConversationID,
	)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing transaction: %w", err)
	}

	m.ID = id
	m.CreatedAt = createdAt
	return id, nil
}

// ListMessages retrieves up to limit messages of a conversation, newest
// first, optionally only those created before the given cursor.
func (r *MessageRepository) ListMessages(ctx context.Context, conversationID int64, before *time.Time, limit int) ([]*models.Message, error) {
	query := `
		SELECT m.id, m.conversation_id, m.sender_id, m.content, m.created_at
		FROM messages m
		WHERE m.conversation_id = $1 AND ($2::timestamptz IS NULL OR m.created_at < $2)
		ORDER BY m.created_at DESC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, conversationID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	messages := make([]*models.Message, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		messages = append(messages, &m)
	}

	return messages, rows.Err()
}
