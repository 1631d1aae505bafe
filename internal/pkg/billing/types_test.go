package billing

import (
	"testing"

	"github.com/medirate/medirate/app/models"
)

func TestParseWebhookEvent(t *testing.T) {
	raw := []byte(`{
		"id": "evt_123",
		"type": "customer.subscription.updated",
		"data": { "object": { "id": "sub_123", "customer": "cus_1", "status": "past_due" } }
	}`)

	event, err := ParseWebhookEvent(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if event.ID != "evt_123" || event.Type != EventSubscriptionUpdated {
		t.Fatalf("unexpected envelope: %+v", event)
	}
	if len(event.Data.Object) == 0 {
		t.Fatalf("expected embedded object payload")
	}

	if _, err := ParseWebhookEvent([]byte(`{"id":"evt_1"}`)); err == nil {
		t.Fatalf("expected error for missing event type")
	}
	if _, err := ParseWebhookEvent([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestStripeSubscriptionPlanID(t *testing.T) {
	sub := subscriptionEvent("sub_1", "cus_1", "active", "price_x")
	if got := sub.PlanID(); got != "price_x" {
		t.Fatalf("PlanID = %q, want price_x", got)
	}
	if got := (&StripeSubscription{}).PlanID(); got != "" {
		t.Fatalf("expected empty plan for item-less subscription, got %q", got)
	}
}

func TestCheckoutSessionEmailFallback(t *testing.T) {
	s := &StripeCheckoutSession{CustomerEmail: "a@example.com"}
	if s.Email() != "a@example.com" {
		t.Fatalf("expected customer_email to win")
	}
	s = &StripeCheckoutSession{}
	s.CustomerDetails.Email = "b@example.com"
	if s.Email() != "b@example.com" {
		t.Fatalf("expected customer_details fallback")
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Active", want: models.SubscriptionStatusActive},
		{in: " past_due ", want: models.SubscriptionStatusPastDue},
		{in: "", want: models.SubscriptionStatusActive},
		{in: "unpaid", want: "unpaid"},
	}
	for _, tt := range tests {
		if got := normalizeStatus(tt.in); got != tt.want {
			t.Fatalf("normalizeStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsEntitlingStatus(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: models.SubscriptionStatusActive, want: true},
		{in: "Trialing", want: true},
		{in: " past_due ", want: true},
		{in: models.SubscriptionStatusCanceled, want: false},
		{in: models.SubscriptionStatusIncomplete, want: false},
		{in: "unpaid", want: false},
		{in: "", want: false},
	}
	for _, tt := range tests {
		if got := isEntitlingStatus(tt.in); got != tt.want {
			t.Fatalf("isEntitlingStatus(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
