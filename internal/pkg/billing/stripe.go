package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/medirate/medirate/internal/pkg/env"
)

const defaultStripeAPIBaseURL = "https://api.stripe.com/v1"

// StripeAPI is the provider surface the reconciler depends on. The concrete
// client talks to the Stripe REST API; tests substitute a fake.
type StripeAPI interface {
	GetCustomer(ctx context.Context, customerID string) (*StripeCustomer, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*StripeSubscription, error)
	CreatePaymentIntent(ctx context.Context, params PaymentIntentParams) (*StripePaymentIntent, error)
}

type StripeClient struct {
	SecretKey  string
	APIBaseURL string

	HTTPClient *http.Client
}

func NewStripeClientFromEnv() *StripeClient {
	return &StripeClient{
		SecretKey:  strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", "")),
		APIBaseURL: strings.TrimRight(env.GetEnv("STRIPE_API_BASE_URL", defaultStripeAPIBaseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *StripeClient) GetCustomer(ctx context.Context, customerID string) (*StripeCustomer, error) {
	id := strings.TrimSpace(customerID)
	if id == "" {
		return nil, errors.New("customer id is required")
	}

	body, err := c.get(ctx, "/customers/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var customer StripeCustomer
	if err := json.Unmarshal(body, &customer); err != nil {
		return nil, err
	}
	if strings.TrimSpace(customer.ID) == "" {
		return nil, errors.New("stripe customer response missing id")
	}
	return &customer, nil
}

func (c *StripeClient) GetSubscription(ctx context.Context, subscriptionID string) (*StripeSubscription, error) {
	id := strings.TrimSpace(subscriptionID)
	if id == "" {
		return nil, errors.New("subscription id is required")
	}

	body, err := c.get(ctx, "/subscriptions/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var sub StripeSubscription
	if err := json.Unmarshal(body, &sub); err != nil {
		return nil, err
	}
	if strings.TrimSpace(sub.ID) == "" {
		return nil, errors.New("stripe subscription response missing id")
	}
	return &sub, nil
}

func (c *StripeClient) CreatePaymentIntent(ctx context.Context, params PaymentIntentParams) (*StripePaymentIntent, error) {
	if params.AmountCents <= 0 {
		return nil, errors.New("payment intent amount must be positive")
	}
	currency := strings.TrimSpace(params.Currency)
	if currency == "" {
		currency = "usd"
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(params.AmountCents, 10))
	form.Set("currency", currency)
	if d := strings.TrimSpace(params.Description); d != "" {
		form.Set("description", d)
	}
	for k, v := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBaseURL+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var intent StripePaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, err
	}
	if strings.TrimSpace(intent.ID) == "" {
		return nil, errors.New("stripe payment intent response missing id")
	}
	return &intent, nil
}

func (c *StripeClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *StripeClient) do(req *http.Request) ([]byte, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("STRIPE_SECRET_KEY is not configured")
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("stripe request failed: %s %s status=%d body=%s", req.Method, req.URL.Path, resp.StatusCode, string(body))
	}
	return body, nil
}
