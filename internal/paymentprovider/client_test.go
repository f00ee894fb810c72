package paymentprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreatePaymentIntent(t *testing.T) {
	var gotKeys []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		key := r.Header.Get("Idempotency-Key")
		_, err := uuid.Parse(key)
		assert.NoError(t, err)
		gotKeys = append(gotKeys, key)

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "9900", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "true", r.PostForm.Get("automatic_payment_methods[enabled]"))
		assert.Equal(t, "1", r.PostForm.Get("metadata[courseId]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","client_secret":"pi_1_secret_abc","amount":9900,"currency":"usd","status":"requires_payment_method"}`))
	}))
	defer srv.Close()

	c := NewClient("sk_test_123", srv.URL+"/v1/", time.Second)
	params := CreateIntentRequest{
		Amount:   9900,
		Currency: "usd",
		Metadata: map[string]string{"courseId": "1"},
	}

	intent, err := c.CreatePaymentIntent(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "pi_1_secret_abc", intent.ClientSecret)
	assert.Equal(t, int64(9900), intent.Amount)

	_, err = c.CreatePaymentIntent(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, gotKeys, 2)
	assert.NotEqual(t, gotKeys[0], gotKeys[1])
}

func TestClient_CreatePaymentIntent_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","code":"amount_too_small","message":"Amount must be at least $0.50 usd"}}`))
	}))
	defer srv.Close()

	c := NewClient("sk_test_123", srv.URL, time.Second)
	_, err := c.CreatePaymentIntent(context.Background(), CreateIntentRequest{Amount: 1, Currency: "usd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Amount must be at least $0.50 usd")
}

func TestClient_CreatePaymentIntent_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("oops"))
	}))
	defer srv.Close()

	c := NewClient("sk_test_123", srv.URL, time.Second)
	_, err := c.CreatePaymentIntent(context.Background(), CreateIntentRequest{Amount: 100, Currency: "usd"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("key", "", 0)
	assert.Equal(t, DefaultAPIURL, c.apiURL)
	assert.Equal(t, 10*time.Second, c.httpClient.Timeout)
}
