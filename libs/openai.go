package libs

import (
	"context"
	"errors"

	"gummy-store/models"

	"github.com/sashabaranov/go-openai"
)

type OpenAIChat struct {
	client *openai.Client
	model  string
}

func NewOpenAIChat(apiKey, baseURL, model string) *OpenAIChat {
	if apiKey == "" {
		return &OpenAIChat{model: model}
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIChat{client: openai.NewClientWithConfig(cfg), model: model}
}

// Complete sends the store prompt, the prior turns and message, and returns
// the first choice. An empty choice yields models.ChatNoReply.
func (c *OpenAIChat) Complete(ctx context.Context, history []models.ChatTurn, message string) (string, error) {
	if c.client == nil {
		return "", errors.New("openai api key is not configured")
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: StorePrompt,
	})
	for _, turn := range history {
		role := openai.ChatMessageRoleUser
		if turn.Role == models.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return "", &models.ProviderError{Provider: "openai", Message: "chat completion failed", Err: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return models.ChatNoReply, nil
	}
	return resp.Choices[0].Message.Content, nil
}
