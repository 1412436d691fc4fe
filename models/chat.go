package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	WelcomeMessage  = "Oii! deseja tirar alguma dúvida?"
	ChatApology     = "Desculpe, ocorreu um erro ao processar sua mensagem. Por favor, tente novamente."
	ChatUnavailable = "Desculpe, estou com dificuldades técnicas no momento. Por favor, tente novamente em alguns instantes."
	ChatNoReply     = "Desculpe, não consegui processar sua mensagem."
)

type Conversation struct {
	ID        uuid.UUID `json:"id" db:"id"`
	SessionID string    `json:"session_id" db:"session_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Message struct {
	ID             uuid.UUID `json:"id" db:"id"`
	ConversationID uuid.UUID `json:"conversation_id" db:"conversation_id"`
	Role           string    `json:"role" db:"role"`
	Content        string    `json:"content" db:"content"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	Persisted      bool      `json:"persisted" db:"-"`
}

// ChatTurn is one entry of the history sent to the completion endpoint.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatThread struct {
	Conversation Conversation `json:"conversation"`
	Messages     []Message    `json:"messages"`
	Created      bool         `json:"created"`
}

type ChatExchange struct {
	ConversationID uuid.UUID `json:"conversation_id"`
	UserMessage    Message   `json:"user_message"`
	Reply          Message   `json:"reply"`
}
