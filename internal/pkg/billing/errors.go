package billing

import "errors"

var (
	// ErrUserNotFound means the billing customer's email has no local user.
	// Webhook callers log and drop the notification; it is not retried.
	ErrUserNotFound = errors.New("billing: no local user for customer email")

	// ErrMissingPlan means the provider subscription carries no priced item.
	ErrMissingPlan = errors.New("billing: subscription has no plan item")

	// ErrSubscriptionNotFound means the expected local subscription row is absent.
	ErrSubscriptionNotFound = errors.New("billing: subscription not found")

	// ErrSubscriptionExpired means the primary subscription has no remaining term.
	ErrSubscriptionExpired = errors.New("billing: subscription expired")

	// ErrSlotLimitReached means the primary already holds the maximum number
	// of sub-user seats.
	ErrSlotLimitReached = errors.New("billing: sub-user slot limit reached")
)
