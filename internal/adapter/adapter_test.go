package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestfyClient_CreateCharge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/charges", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(2990), body["amount"])
		assert.Equal(t, "BRL", body["currency"])
		assert.Equal(t, "pix", body["payment_method"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ch_1","status":"pending","checkout_url":"https://pay.bestfy.test/ch_1"}`))
	}))
	defer srv.Close()

	client := NewBestfyClient(srv.URL)
	charge, err := client.CreateCharge(context.Background(), "sk_test_123", ChargeInput{
		AmountCents: 2990,
		Description: "Assinatura mensal",
	})
	require.NoError(t, err)
	assert.Equal(t, "ch_1", charge.ID)
	assert.Equal(t, "https://pay.bestfy.test/ch_1", charge.CheckoutURL)
}

func TestBestfyClient_ErrorStatusSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer srv.Close()

	client := NewBestfyClient(srv.URL)
	_, err := client.CreateCharge(context.Background(), "bad", ChargeInput{AmountCents: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestBestfyClient_MissingCheckoutURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"ch_2","status":"pending"}`))
	}))
	defer srv.Close()

	client := NewBestfyClient(srv.URL)
	_, err := client.CreateCharge(context.Background(), "sk", ChargeInput{AmountCents: 100})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checkout_url")
}

func TestCompletionClient_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-ia", r.Header.Get("Authorization"))

		var body completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "voce e a Kelly", body.Messages[0].Content)
		assert.Equal(t, "user", body.Messages[1].Role)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  oi, amor!  "}}]}`))
	}))
	defer srv.Close()

	client := NewCompletionClient(srv.URL, "gpt-4o-mini", 256)
	reply, err := client.Complete(context.Background(), "sk-ia", "voce e a Kelly", "user: oi")
	require.NoError(t, err)
	assert.Equal(t, "oi, amor!", reply)
}

func TestCompletionClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	}))
	defer srv.Close()

	client := NewCompletionClient(srv.URL, "gpt-4o-mini", 256)
	_, err := client.Complete(context.Background(), "sk", "persona", "oi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestCompletionClient_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewCompletionClient(srv.URL, "gpt-4o-mini", 256)
	_, err := client.Complete(context.Background(), "sk", "persona", "oi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
