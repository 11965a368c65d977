// Package adapter contains HTTP clients for remote collaborator APIs.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vitrine/internal/observability"
)

// BestfyClient talks to the Bestfy payment API. Calls are single-attempt;
// failures surface to the caller without retries.
type BestfyClient struct {
	baseURL string
	client  *http.Client
}

// NewBestfyClient returns a client for the given API base URL.
func NewBestfyClient(baseURL string) *BestfyClient {
	return &BestfyClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// ChargeInput describes one PIX charge to create.
type ChargeInput struct {
	AmountCents int
	Description string
	Metadata    map[string]string
}

// Charge is the provider's view of a created charge.
type Charge struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	CheckoutURL string `json:"checkout_url"`
}

type bestfyChargeRequest struct {
	Amount      int               `json:"amount"`
	Currency    string            `json:"currency"`
	Method      string            `json:"payment_method"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type bestfyErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCharge creates a PIX charge and returns the provider checkout URL.
func (c *BestfyClient) CreateCharge(ctx context.Context, apiKey string, in ChargeInput) (*Charge, error) {
	start := time.Now()
	charge, err := c.createCharge(ctx, apiKey, in)
	observability.ObserveProviderCall("bestfy", start, err)
	return charge, err
}

func (c *BestfyClient) createCharge(ctx context.Context, apiKey string, in ChargeInput) (*Charge, error) {
	payload := bestfyChargeRequest{
		Amount:      in.AmountCents,
		Currency:    "BRL",
		Method:      "pix",
		Description: in.Description,
		Metadata:    in.Metadata,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("bestfy: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("bestfy: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bestfy: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("bestfy: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr bestfyErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("bestfy: status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("bestfy: unexpected status %d", resp.StatusCode)
	}

	var charge Charge
	if err := json.Unmarshal(raw, &charge); err != nil {
		return nil, fmt.Errorf("bestfy: decode response: %w", err)
	}
	if charge.CheckoutURL == "" {
		return nil, fmt.Errorf("bestfy: response missing checkout_url")
	}
	return &charge, nil
}
