package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gummy-store/models"

	"github.com/google/uuid"
)

type ConversationStore interface {
	FindLatest(ctx context.Context, sessionID string) (*models.Conversation, error)
	Create(ctx context.Context, sessionID string) (*models.Conversation, error)
	Touch(ctx context.Context, id uuid.UUID) error
}

type MessageStore interface {
	Append(ctx context.Context, conversationID uuid.UUID, role, content string) (*models.Message, error)
	List(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error)
}

type Completer interface {
	Complete(ctx context.Context, history []models.ChatTurn, message string) (string, error)
}

type ChatService struct {
	conversations ConversationStore
	messages      MessageStore
	completer     Completer
	now           func() time.Time
}

func NewChatService(conversations ConversationStore, messages MessageStore, completer Completer) *ChatService {
	return &ChatService{
		conversations: conversations,
		messages:      messages,
		completer:     completer,
		now:           time.Now,
	}
}

// Open resumes the session's latest conversation, or starts one seeded with
// the welcome message.
func (s *ChatService) Open(ctx context.Context, session models.Session) (*models.ChatThread, error) {
	conv, err := s.conversations.FindLatest(ctx, session.ID)
	if err == nil {
		msgs, err := s.messages.List(ctx, conv.ID)
		if err != nil {
			return nil, err
		}
		return &models.ChatThread{Conversation: *conv, Messages: msgs}, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	conv, err = s.conversations.Create(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	welcome, err := s.messages.Append(ctx, conv.ID, models.RoleAssistant, models.WelcomeMessage)
	if err != nil {
		return nil, fmt.Errorf("seed welcome message: %w", err)
	}

	return &models.ChatThread{Conversation: *conv, Messages: []models.Message{*welcome}, Created: true}, nil
}

// Send stores the user's message, asks the assistant with the prior
// messages as history and stores the reply. A failed completion yields an
// apology that is returned but never stored.
func (s *ChatService) Send(ctx context.Context, session models.Session, text string) (*models.ChatExchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &models.ValidationError{Fields: models.FieldErrors{"message": "Mensagem vazia"}}
	}

	thread, err := s.Open(ctx, session)
	if err != nil {
		return nil, err
	}
	convID := thread.Conversation.ID

	history := make([]models.ChatTurn, 0, len(thread.Messages))
	for _, m := range thread.Messages {
		history = append(history, models.ChatTurn{Role: m.Role, Content: m.Content})
	}

	userMsg, err := s.messages.Append(ctx, convID, models.RoleUser, text)
	if err != nil {
		return nil, fmt.Errorf("save user message: %w", err)
	}

	exchange := &models.ChatExchange{ConversationID: convID, UserMessage: *userMsg}

	reply, err := s.completer.Complete(ctx, history, text)
	if err != nil {
		log.Printf("[chat] completion failed for %s: %v", convID, err)
		exchange.Reply = s.apology(convID)
		return exchange, nil
	}

	saved, err := s.messages.Append(ctx, convID, models.RoleAssistant, reply)
	if err != nil {
		log.Printf("[chat] save reply for %s: %v", convID, err)
		exchange.Reply = s.apology(convID)
		return exchange, nil
	}
	exchange.Reply = *saved

	if err := s.conversations.Touch(ctx, convID); err != nil {
		log.Printf("[chat] touch conversation %s: %v", convID, err)
	}
	return exchange, nil
}

func (s *ChatService) apology(convID uuid.UUID) models.Message {
	return models.Message{
		ConversationID: convID,
		Role:           models.RoleAssistant,
		Content:        models.ChatApology,
		CreatedAt:      s.now(),
		Persisted:      false,
	}
}

// Reply answers one stateless completion request. Upstream failures
// degrade to the canned unavailable reply.
func (s *ChatService) Reply(ctx context.Context, req models.ChatAIRequest) models.ChatAIResponse {
	reply, err := s.completer.Complete(ctx, req.ConversationHistory, req.Message)
	if err != nil {
		log.Printf("[chat-ai] completion failed: %v", err)
		return models.ChatAIResponse{Reply: models.ChatUnavailable}
	}
	return models.ChatAIResponse{Reply: reply}
}
