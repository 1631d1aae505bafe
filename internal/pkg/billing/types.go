package billing

import (
	"encoding/json"
	"errors"
	"strings"
)

// Stripe webhook event types the reconciler reacts to. Everything else is
// acknowledged and ignored.
const (
	EventSubscriptionCreated = "customer.subscription.created"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
	EventInvoicePaid         = "invoice.paid"
	EventInvoicePaymentOK    = "invoice.payment_succeeded"
	EventCheckoutCompleted   = "checkout.session.completed"
)

// StripeEvent is the webhook envelope: id, type and the embedded object.
type StripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// StripeCustomer is the subset of the customer object the reconciler needs.
type StripeCustomer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// StripeSubscription mirrors the provider subscription object. The first
// item's price id is the plan reference.
type StripeSubscription struct {
	ID                 string `json:"id"`
	Customer           string `json:"customer"`
	Status             string `json:"status"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
	Items              struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

// PlanID returns the price id of the first subscribed item, or "".
func (s *StripeSubscription) PlanID() string {
	if len(s.Items.Data) == 0 {
		return ""
	}
	return strings.TrimSpace(s.Items.Data[0].Price.ID)
}

// StripeInvoice is the subset of the invoice object used for payment
// recording. AmountPaid is in minor currency units.
type StripeInvoice struct {
	ID         string `json:"id"`
	Customer   string `json:"customer"`
	AmountPaid int64  `json:"amount_paid"`
	Status     string `json:"status"`
}

// StripeCheckoutSession is the subset of the checkout session object used to
// bridge one-time checkout flows into the subscription ledger.
type StripeCheckoutSession struct {
	ID              string `json:"id"`
	Customer        string `json:"customer"`
	CustomerEmail   string `json:"customer_email"`
	Subscription    string `json:"subscription"`
	CustomerDetails struct {
		Email string `json:"email"`
	} `json:"customer_details"`
}

// Email returns whichever email field the session carries.
func (s *StripeCheckoutSession) Email() string {
	if e := strings.TrimSpace(s.CustomerEmail); e != "" {
		return e
	}
	return strings.TrimSpace(s.CustomerDetails.Email)
}

// StripePaymentIntent is the response of a payment intent creation.
type StripePaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
}

// PaymentIntentParams describes a charge request against the provider.
type PaymentIntentParams struct {
	AmountCents int64
	Currency    string
	Description string
	Metadata    map[string]string
}

// WebhookEventInput is the normalized input for webhook event persistence.
type WebhookEventInput struct {
	Provider        string
	ProviderEventID string
	EventType       string
	PayloadJSON     string
	SignatureValid  bool
}

// ParseWebhookEvent decodes the webhook envelope.
func ParseWebhookEvent(payload []byte) (*StripeEvent, error) {
	var event StripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	if strings.TrimSpace(event.Type) == "" {
		return nil, errors.New("webhook payload missing event type")
	}
	return &event, nil
}
