package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Run states reported by the assistants API
const (
	RunQueued     = "queued"
	RunInProgress = "in_progress"
	RunCancelling = "cancelling"
	RunCompleted  = "completed"
)

// AssistantConfig configures an AssistantClient
type AssistantConfig struct {
	ClientConfig
	AssistantID  string
	Instructions string
	PollInterval time.Duration
	Timeout      time.Duration
}

// AssistantClient runs prompts through a pre-configured assistant. Each call
// opens a fresh thread, starts a run and polls it until it reaches a terminal
// state.
type AssistantClient struct {
	client
	assistantID  string
	instructions string
	pollInterval time.Duration
	timeout      time.Duration
}

// NewAssistantClient creates an assistants API client
func NewAssistantClient(cfg AssistantConfig) *AssistantClient {
	c := newClient(cfg.ClientConfig)
	c.headers["OpenAI-Beta"] = "assistants=v2"

	poll := cfg.PollInterval
	if poll <= 0 {
		poll = time.Second
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &AssistantClient{
		client:       c,
		assistantID:  cfg.AssistantID,
		instructions: cfg.Instructions,
		pollInterval: poll,
		timeout:      timeout,
	}
}

type thread struct {
	ID string `json:"id"`
}

type run struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	LastError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error"`
}

type messageList struct {
	Data []struct {
		Role    string `json:"role"`
		Content []struct {
			Type string `json:"type"`
			Text struct {
				Value string `json:"value"`
			} `json:"text"`
		} `json:"content"`
	} `json:"data"`
}

func pending(status string) bool {
	switch status {
	case RunQueued, RunInProgress, RunCancelling:
		return true
	}
	return false
}

// GenerateText implements Generator
func (c *AssistantClient) GenerateText(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var th thread
	if err := c.do(ctx, http.MethodPost, "/threads", struct{}{}, &th); err != nil {
		return "", fmt.Errorf("failed to create thread: %w", err)
	}

	msg := map[string]string{"role": "user", "content": req.Prompt()}
	if err := c.do(ctx, http.MethodPost, "/threads/"+th.ID+"/messages", msg, nil); err != nil {
		return "", fmt.Errorf("failed to add message: %w", err)
	}

	instructions := c.instructions
	if req.System != "" {
		instructions = req.System
	}
	body := map[string]interface{}{"assistant_id": c.assistantID}
	if instructions != "" {
		body["instructions"] = instructions
	}
	if req.MaxOutputTokens > 0 {
		body["max_completion_tokens"] = req.MaxOutputTokens
	}

	var r run
	if err := c.do(ctx, http.MethodPost, "/threads/"+th.ID+"/runs", body, &r); err != nil {
		return "", fmt.Errorf("failed to start run: %w", err)
	}

	r, err := c.wait(ctx, th.ID, r)
	if err != nil {
		return "", err
	}
	if r.Status != RunCompleted {
		c.logger.Warn("assistant run ended without completing",
			zap.String("thread_id", th.ID),
			zap.String("run_id", r.ID),
			zap.String("status", r.Status),
		)
		if r.LastError != nil && r.LastError.Message != "" {
			return "", fmt.Errorf("%w: %s: %s", ErrRunNotCompleted, r.Status, r.LastError.Message)
		}
		return "", fmt.Errorf("%w: %s", ErrRunNotCompleted, r.Status)
	}

	var list messageList
	if err := c.do(ctx, http.MethodGet, "/threads/"+th.ID+"/messages?order=desc&limit=1", nil, &list); err != nil {
		return "", fmt.Errorf("failed to list messages: %w", err)
	}
	if len(list.Data) == 0 || list.Data[0].Role != "assistant" {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range list.Data[0].Content {
		if part.Type == "text" {
			sb.WriteString(part.Text.Value)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// wait polls the run until it leaves the pending states or ctx expires
func (c *AssistantClient) wait(ctx context.Context, threadID string, r run) (run, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for pending(r.Status) {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return r, fmt.Errorf("%w: still %s after %s", ErrRunNotCompleted, r.Status, c.timeout)
			}
			return r, ctx.Err()
		case <-ticker.C:
		}

		if err := c.do(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+r.ID, nil, &r); err != nil {
			return r, fmt.Errorf("failed to poll run: %w", err)
		}
	}
	return r, nil
}
