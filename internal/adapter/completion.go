package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vitrine/internal/observability"
)

// CompletionClient calls an OpenAI-compatible chat completions endpoint to
// draft assistant replies for the support chat.
type CompletionClient struct {
	baseURL   string
	model     string
	maxTokens int
	client    *http.Client
}

// NewCompletionClient returns a client for the given base URL and model.
func NewCompletionClient(baseURL, model string, maxTokens int) *CompletionClient {
	return &CompletionClient{
		baseURL:   baseURL,
		model:     model,
		maxTokens: maxTokens,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model     string              `json:"model"`
	Messages  []completionMessage `json:"messages"`
	MaxTokens int                 `json:"max_tokens,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message completionMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the persona as the system message and the conversation
// transcript as the user message, returning the assistant's reply text.
func (c *CompletionClient) Complete(ctx context.Context, apiKey, persona, transcript string) (string, error) {
	start := time.Now()
	reply, err := c.complete(ctx, apiKey, persona, transcript)
	observability.ObserveProviderCall("completion", start, err)
	return reply, err
}

func (c *CompletionClient) complete(ctx context.Context, apiKey, persona, transcript string) (string, error) {
	payload := completionRequest{
		Model: c.model,
		Messages: []completionMessage{
			{Role: "system", Content: persona},
			{Role: "user", Content: transcript},
		},
		MaxTokens: c.maxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("completion: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("completion: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("completion: read response: %w", err)
	}

	var decoded completionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("completion: decode response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decoded.Error != nil && decoded.Error.Message != "" {
			return "", fmt.Errorf("completion: status %d: %s", resp.StatusCode, decoded.Error.Message)
		}
		return "", fmt.Errorf("completion: unexpected status %d", resp.StatusCode)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("completion: response has no choices")
	}

	reply := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("completion: empty reply")
	}
	return reply, nil
}
