package controllers

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/medirate/medirate/app/models"
	"github.com/medirate/medirate/internal/pkg/billing"
	"github.com/medirate/medirate/internal/pkg/database"
	"github.com/medirate/medirate/internal/pkg/env"
)

// HandleStripeWebhook ingests billing provider lifecycle notifications.
//
// The signature is verified before anything is parsed or stored. Once the
// event row is persisted, reconciliation failures are logged and recorded on
// the event but the provider still receives {received:true} — retrying
// forever on non-transient conditions (unknown user, missing plan) would
// never succeed.
func HandleStripeWebhook(c *fiber.Ctx) error {
	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("Stripe-Signature"))
	secret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")

	if !billing.VerifyStripeWebhookSignature(rawBody, signature, secret, billing.DefaultSignatureTolerance) {
		return jsonError(c, fiber.StatusBadRequest, "invalid_signature", "Webhook signature verification failed")
	}

	event, err := billing.ParseWebhookEvent(rawBody)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid_payload", "Webhook payload could not be parsed")
	}

	svc := billing.NewServiceFromDB(database.GetDB())
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	created, stored, err := svc.RecordWebhookEvent(ctx, billing.WebhookEventInput{
		Provider:        models.BillingProviderStripe,
		ProviderEventID: event.ID,
		EventType:       event.Type,
		PayloadJSON:     string(rawBody),
		SignatureValid:  true,
	})
	if err != nil {
		log.Printf("stripe webhook persist failed: type=%s id=%s err=%v", event.Type, event.ID, err)
		return jsonError(c, fiber.StatusInternalServerError, "webhook_persist_failed", "Webhook could not be recorded")
	}
	if !created {
		return c.JSON(fiber.Map{"received": true})
	}

	procErr := dispatchStripeEvent(ctx, svc, event)
	if procErr != nil {
		log.Printf("stripe webhook reconciliation failed: type=%s id=%s err=%v", event.Type, event.ID, procErr)
	}
	_ = svc.MarkWebhookProcessed(ctx, stored.ID, procErr)

	return c.JSON(fiber.Map{"received": true})
}

func dispatchStripeEvent(ctx context.Context, svc *billing.Service, event *billing.StripeEvent) error {
	switch event.Type {
	case billing.EventSubscriptionCreated, billing.EventSubscriptionUpdated:
		var sub billing.StripeSubscription
		if err := json.Unmarshal(event.Data.Object, &sub); err != nil {
			return err
		}
		_, err := svc.UpsertSubscription(ctx, &sub)
		return err

	case billing.EventSubscriptionDeleted:
		var sub billing.StripeSubscription
		if err := json.Unmarshal(event.Data.Object, &sub); err != nil {
			return err
		}
		return svc.CancelSubscription(ctx, sub.ID)

	case billing.EventInvoicePaid, billing.EventInvoicePaymentOK:
		var invoice billing.StripeInvoice
		if err := json.Unmarshal(event.Data.Object, &invoice); err != nil {
			return err
		}
		return svc.RecordPayment(ctx, &invoice, event.ID)

	case billing.EventCheckoutCompleted:
		var session billing.StripeCheckoutSession
		if err := json.Unmarshal(event.Data.Object, &session); err != nil {
			return err
		}
		return svc.CompleteCheckout(ctx, &session)

	default:
		// Unhandled event types are acknowledged and ignored.
		return nil
	}
}
