package billing

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/medirate/medirate/app/models"
	"gorm.io/gorm"
)

// Service keeps the local subscription/payment ledger consistent with the
// billing provider's view. The provider is the source of truth: lifecycle
// notifications are mirrored, never reinterpreted.
type Service struct {
	repo   Repository
	stripe StripeAPI
}

// NewService creates a billing service from injected collaborators.
func NewService(repo Repository, stripe StripeAPI) *Service {
	return &Service{repo: repo, stripe: stripe}
}

// NewServiceFromDB creates a billing service from a GORM DB handle using the
// environment-configured Stripe client.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db), NewStripeClientFromEnv())
}

// UpsertSubscription mirrors a provider subscription lifecycle notification
// into the local ledger. Replays of the same event converge to the same row
// state (the provider subscription id is the upsert key).
func (s *Service) UpsertSubscription(ctx context.Context, in *StripeSubscription) (*models.Subscription, error) {
	if in == nil || strings.TrimSpace(in.ID) == "" {
		return nil, errors.New("subscription id is required")
	}

	customer, err := s.stripe.GetCustomer(ctx, in.Customer)
	if err != nil {
		return nil, fmt.Errorf("customer lookup failed: %w", err)
	}

	user, err := s.repo.GetUserByEmail(strings.TrimSpace(customer.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	planID := in.PlanID()
	if planID == "" {
		return nil, ErrMissingPlan
	}

	sub := &models.Subscription{
		UserID:               user.ID,
		StripeSubscriptionID: strings.TrimSpace(in.ID),
		PlanID:               planID,
		Status:               normalizeStatus(in.Status),
		StartDate:            unixTime(in.CurrentPeriodStart),
		EndDate:              unixTime(in.CurrentPeriodEnd),
	}
	if err := s.repo.UpsertSubscription(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// RecordPayment appends a Payment row for a paid invoice. The amount arrives
// in minor currency units. An unresolvable user or subscription is reported
// as a sentinel so the webhook caller can log and still acknowledge.
func (s *Service) RecordPayment(ctx context.Context, invoice *StripeInvoice, providerEventID string) error {
	if invoice == nil || strings.TrimSpace(invoice.Customer) == "" {
		return errors.New("invoice customer is required")
	}

	customer, err := s.stripe.GetCustomer(ctx, invoice.Customer)
	if err != nil {
		return fmt.Errorf("customer lookup failed: %w", err)
	}

	user, err := s.repo.GetUserByEmail(strings.TrimSpace(customer.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	sub, err := s.repo.GetCurrentSubscriptionForUser(user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}

	// The event id keys the unique index that makes replays no-ops. Some
	// deliveries arrive without an envelope id; the invoice id is unique per
	// charge and substitutes, so two distinct id-less invoices cannot
	// collide as "duplicates" of each other.
	eventID := strings.TrimSpace(providerEventID)
	if eventID == "" {
		eventID = strings.TrimSpace(invoice.ID)
	}
	if eventID == "" {
		return errors.New("no provider event or invoice id to key the payment")
	}

	payment := &models.Payment{
		UserID:          user.ID,
		SubscriptionID:  sub.ID,
		PlanID:          sub.PlanID,
		Amount:          float64(invoice.AmountPaid) / 100.0,
		Status:          strings.TrimSpace(invoice.Status),
		ProviderEventID: eventID,
	}
	created, err := s.repo.CreatePaymentIfNotExists(payment)
	if err != nil {
		return err
	}
	if !created {
		log.Printf("billing: duplicate payment event %s for user %d ignored", eventID, user.ID)
	}
	return nil
}

// CancelSubscription marks the subscription canceled and refreshes its
// updated timestamp. The row is preserved for history; replayed delete
// events for an already-canceled subscription are a no-op.
func (s *Service) CancelSubscription(ctx context.Context, providerSubscriptionID string) error {
	_ = ctx
	id := strings.TrimSpace(providerSubscriptionID)
	if id == "" {
		return errors.New("subscription id is required")
	}

	sub, err := s.repo.GetSubscriptionByProviderID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	if sub.IsCanceled() {
		log.Printf("billing: subscription %s already canceled, skipping", id)
		return nil
	}

	if err := s.repo.MarkSubscriptionCanceled(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return nil
}

// CompleteCheckout bridges a finished checkout session into the subscription
// ledger. Sessions without both a customer email and an attached subscription
// are ignored.
func (s *Service) CompleteCheckout(ctx context.Context, session *StripeCheckoutSession) error {
	if session == nil {
		return errors.New("checkout session is required")
	}
	subID := strings.TrimSpace(session.Subscription)
	if session.Email() == "" || subID == "" {
		log.Printf("billing: checkout session %s has no email+subscription, skipping", session.ID)
		return nil
	}

	sub, err := s.stripe.GetSubscription(ctx, subID)
	if err != nil {
		return fmt.Errorf("subscription fetch failed: %w", err)
	}
	_, err = s.UpsertSubscription(ctx, sub)
	return err
}

// AddSubUserResult describes a completed seat purchase.
type AddSubUserResult struct {
	ChargeAmount    float64
	PaymentIntentID string
	ClientSecret    string
	Subscription    *models.Subscription
}

// AddSubUser charges the prorated remainder of the primary's term and inserts
// a seat subscription for the new sub-user.
//
// The slot-limit check and the insert are separate steps with no transaction
// around them; two concurrent calls for the same primary can both pass the
// count check and exceed the seat cap. Known limitation of the accounting
// flow, kept as-is.
func (s *Service) AddSubUser(ctx context.Context, primaryEmail, subUserEmail string) (*AddSubUserResult, error) {
	primaryEmail = strings.TrimSpace(primaryEmail)
	subUserEmail = strings.TrimSpace(subUserEmail)
	if primaryEmail == "" || subUserEmail == "" {
		return nil, errors.New("primary and sub-user emails are required")
	}

	primary, err := s.repo.GetUserByEmail(primaryEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	primarySub, err := s.repo.GetCurrentSubscriptionForUser(primary.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	remainingDays := RemainingWholeDays(time.Now(), primarySub.EndDate)
	if remainingDays == 0 {
		return nil, ErrSubscriptionExpired
	}
	cost := ProratedCost(remainingDays)

	count, err := s.repo.CountSubUsers(primary.ID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxSubUsersPerPrimary {
		return nil, ErrSlotLimitReached
	}

	intent, err := s.stripe.CreatePaymentIntent(ctx, PaymentIntentParams{
		AmountCents: ChargeAmountCents(cost),
		Currency:    "usd",
		Description: fmt.Sprintf("Prorated sub-user seat (%d days remaining)", remainingDays),
		Metadata: map[string]string{
			"primary_email":  primaryEmail,
			"sub_user_email": subUserEmail,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("payment intent creation failed: %w", err)
	}

	subUser, err := s.repo.GetOrCreateUserByEmail(subUserEmail)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	seat := &models.Subscription{
		UserID:               subUser.ID,
		StripeSubscriptionID: "seat_" + intent.ID,
		PlanID:               primarySub.PlanID,
		Status:               models.SubscriptionStatusActive,
		StartDate:            &now,
		EndDate:              primarySub.EndDate,
		PrimaryUserID:        &primary.ID,
	}
	if err := s.repo.CreateSubscription(seat); err != nil {
		return nil, err
	}

	return &AddSubUserResult{
		ChargeAmount:    float64(ChargeAmountCents(cost)) / 100.0,
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Subscription:    seat,
	}, nil
}

// RecordWebhookEvent persists webhook payloads idempotently.
func (s *Service) RecordWebhookEvent(ctx context.Context, in WebhookEventInput) (bool, *models.BillingWebhookEvent, error) {
	_ = ctx
	provider := strings.ToLower(strings.TrimSpace(in.Provider))
	if provider == "" {
		return false, nil, errors.New("provider is required")
	}
	eventID := strings.TrimSpace(in.ProviderEventID)
	if eventID == "" {
		sum := sha256.Sum256([]byte(in.PayloadJSON))
		eventID = "hash:" + hex.EncodeToString(sum[:])
	}

	event := &models.BillingWebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       strings.TrimSpace(in.EventType),
		PayloadJSON:     in.PayloadJSON,
		SignatureValid:  in.SignatureValid,
	}
	return s.repo.CreateWebhookEventIfNotExists(event)
}

// MarkWebhookProcessed marks an event as processed and stores an optional error.
func (s *Service) MarkWebhookProcessed(ctx context.Context, webhookEventID uint, processingErr error) error {
	_ = ctx
	if webhookEventID == 0 {
		return errors.New("webhook_event_id is required")
	}
	errMsg := ""
	if processingErr != nil {
		errMsg = processingErr.Error()
	}
	return s.repo.MarkWebhookProcessed(webhookEventID, errMsg)
}

func unixTime(ts int64) *time.Time {
	if ts <= 0 {
		return nil
	}
	t := time.Unix(ts, 0).UTC()
	return &t
}
