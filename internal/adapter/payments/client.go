package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/marketbase/marketplace/internal/domain/model"
)

// Client exposes operations against the payment gateway.
type Client interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (*model.PaymentIntent, error)
	PublishableKey() string
}

// HTTPClient implements Client via the gateway's form-encoded HTTP API.
type HTTPClient struct {
	baseURL        *url.URL
	secretKey      string
	publishableKey string
	httpClient     *http.Client
	logger         *slog.Logger
}

// intentResponse mirrors the JSON payload returned by the gateway.
type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// NewHTTPClient creates an HTTP payment gateway client.
func NewHTTPClient(baseURL, secretKey, publishableKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment url must be absolute")
	}
	if secretKey == "" {
		return nil, fmt.Errorf("payment secret key is required")
	}
	return &HTTPClient{
		baseURL:        parsed,
		secretKey:      secretKey,
		publishableKey: publishableKey,
		logger:         logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateIntent prepares a charge at the gateway and returns the client
// secret the storefront needs to confirm it.
func (c *HTTPClient) CreateIntent(ctx context.Context, amount int64, currency string) (*model.PaymentIntent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/payment_intents")

	form := url.Values{}
	form.Set("amount", fmt.Sprintf("%d", amount))
	form.Set("currency", currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("payment intent request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("payment gateway error: %s", resp.Status)
	}

	var data intentResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	return &model.PaymentIntent{
		ID:           data.ID,
		ClientSecret: data.ClientSecret,
		Amount:       data.Amount,
		Currency:     data.Currency,
	}, nil
}

// PublishableKey returns the key the storefront embeds client-side.
func (c *HTTPClient) PublishableKey() string {
	return c.publishableKey
}
