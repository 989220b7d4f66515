package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ChatClient calls the chat completions endpoint
type ChatClient struct {
	client
	model string
}

// NewChatClient creates a chat completions client for model
func NewChatClient(cfg ClientConfig, model string) *ChatClient {
	return &ChatClient{client: newClient(cfg), model: model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateText implements Generator
func (c *ChatClient) GenerateText(ctx context.Context, req Request) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt()})

	var result chatResponse
	err := c.do(ctx, http.MethodPost, "/chat/completions", chatRequest{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: req.MaxOutputTokens,
	}, &result)
	if err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in API response", ErrEmptyResponse)
	}
	content := strings.TrimSpace(result.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}
