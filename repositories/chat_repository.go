package repositories

import (
	"context"
	"time"

	"gummy-store/models"

	"github.com/google/uuid"
)

type ConversationRepository struct {
	table *Table
}

func NewConversationRepository(db DBTX) *ConversationRepository {
	return &ConversationRepository{table: mustTable(db, "conversations")}
}

// FindLatest returns the most recently created conversation of the session.
func (r *ConversationRepository) FindLatest(ctx context.Context, sessionID string) (*models.Conversation, error) {
	return SelectOne[models.Conversation](ctx, r.table, Query{
		Filters:    []Eq{{"session_id", sessionID}},
		OrderBy:    "created_at",
		Descending: true,
	})
}

func (r *ConversationRepository) Create(ctx context.Context, sessionID string) (*models.Conversation, error) {
	return InsertInto[models.Conversation](ctx, r.table, map[string]any{
		"session_id": sessionID,
	})
}

func (r *ConversationRepository) Touch(ctx context.Context, id uuid.UUID) error {
	_, err := r.table.Update(ctx, map[string]any{"updated_at": time.Now()}, []Eq{{"id", id}})
	return err
}

type MessageRepository struct {
	table *Table
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{table: mustTable(db, "messages")}
}

func (r *MessageRepository) Append(ctx context.Context, conversationID uuid.UUID, role, content string) (*models.Message, error) {
	msg, err := InsertInto[models.Message](ctx, r.table, map[string]any{
		"conversation_id": conversationID,
		"role":            role,
		"content":         content,
	})
	if err != nil {
		return nil, err
	}
	msg.Persisted = true
	return msg, nil
}

func (r *MessageRepository) List(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	messages, err := SelectInto[models.Message](ctx, r.table, Query{
		Filters: []Eq{{"conversation_id", conversationID}},
		OrderBy: "created_at",
	})
	if err != nil {
		return nil, err
	}
	for i := range messages {
		messages[i].Persisted = true
	}
	return messages, nil
}
