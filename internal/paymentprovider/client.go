// Package paymentprovider реализует HTTP-клиент платёжного провайдера
// (Stripe PaymentIntents API). Клиент только создаёт намерение и отдаёт
// client secret; данные карт и вебхуки обрабатывает сам провайдер.
package paymentprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultAPIURL — базовый адрес API провайдера.
const DefaultAPIURL = "https://api.stripe.com/v1"

// Client — клиент платёжного провайдера.
type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент. Пустой apiURL заменяется на DefaultAPIURL.
func NewClient(secretKey, apiURL string, timeout time.Duration) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		secretKey:  secretKey,
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, form url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", uuid.NewString())
	return req, nil
}

// CreatePaymentIntent создаёт платёжное намерение и возвращает его вместе с client secret.
func (c *Client) CreatePaymentIntent(ctx context.Context, params CreateIntentRequest) (*PaymentIntent, error) {
	const op = "paymentprovider.CreatePaymentIntent"

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(params.Amount, 10))
	form.Set("currency", params.Currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range params.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/payment_intents", form)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("%s: unexpected status %s: %s", op, resp.Status, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("%s: unexpected status %s", op, resp.Status)
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &intent, nil
}
