// Package agent is the HTTP client for the conversational agent, an
// OpenAI-compatible chat-completions endpoint.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the agent's chat-completions API. It is constructed once
// at startup and reused for the process lifetime.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	Model        string
	SystemPrompt string
}

// Config carries the agent connection settings.
type Config struct {
	BaseURL      string
	APIKey       string
	Model        string
	SystemPrompt string
	Timeout      time.Duration
}

// NewClient creates an agent client.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		Model:        cfg.Model,
		SystemPrompt: cfg.SystemPrompt,
	}
}

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Chat sends one user message and returns the agent's reply. The call is
// non-streaming; the whole reply comes back in one response.
func (c *Client) Chat(ctx context.Context, userText string) (string, error) {
	messages := make([]Message, 0, 2)
	if c.SystemPrompt != "" {
		messages = append(messages, Message{Role: "system", Content: c.SystemPrompt})
	}
	messages = append(messages, Message{Role: "user", Content: userText})

	payload, err := json.Marshal(chatCompletionRequest{
		Model:    c.Model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("agent: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("agent: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("agent: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("agent: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("agent: unexpected status %d: %s", resp.StatusCode, truncate(body, 256))
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("agent: malformed response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("agent: response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
