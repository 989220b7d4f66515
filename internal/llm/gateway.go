// Package llm is the boundary to the external text-generation provider. It
// speaks the OpenAI HTTP API in two flavours: plain chat completions and the
// asynchronous assistants thread/run model.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrEmptyResponse is returned when the provider answers without usable text
	ErrEmptyResponse = errors.New("provider returned no content")
	// ErrRunNotCompleted is returned when an assistant run ends in a non-completed state
	ErrRunNotCompleted = errors.New("assistant run did not complete")
)

// Generator produces text for a prompt
type Generator interface {
	GenerateText(ctx context.Context, req Request) (string, error)
}

// Request is a single generation call. Sections are joined with a space to
// form the user prompt.
type Request struct {
	System          string
	Sections        []string
	MaxOutputTokens int
}

// Prompt returns the user prompt text
func (r Request) Prompt() string {
	parts := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// ClientConfig holds the connection settings shared by both clients
type ClientConfig struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	headers map[string]string
}

func newClient(cfg ClientConfig) client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		logger:  logger,
		headers: map[string]string{},
	}
}

// do sends body as JSON to path and decodes a 2xx response into out
func (c client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("provider request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
