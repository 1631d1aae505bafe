package models

import "time"

// Subscription status strings mirror the billing provider's vocabulary; the
// reconciler never invents transitions of its own.
const (
	SubscriptionStatusActive     = "active"
	SubscriptionStatusTrialing   = "trialing"
	SubscriptionStatusPastDue    = "past_due"
	SubscriptionStatusCanceled   = "canceled"
	SubscriptionStatusIncomplete = "incomplete"
)

// MaxSubUsersPerPrimary caps additional seats purchased under one primary
// subscriber. Enforced at creation time, not by a database constraint.
const MaxSubUsersPerPrimary = 10

// Subscription is one row per provider subscription id (the natural key for
// upserts). Sub-user seats reference their primary subscriber via
// PrimaryUserID and are billed through the proration flow.
type Subscription struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	UserID               uint       `gorm:"not null;index" json:"user_id"`
	StripeSubscriptionID string     `gorm:"type:varchar(191);not null;uniqueIndex" json:"stripe_subscription_id"`
	PlanID               string     `gorm:"type:varchar(191);not null" json:"plan_id"`
	Status               string     `gorm:"type:varchar(32);not null;default:'active';index" json:"status"`
	StartDate            *time.Time `gorm:"type:timestamp;default:null" json:"start_date,omitempty"`
	EndDate              *time.Time `gorm:"type:timestamp;default:null" json:"end_date,omitempty"`
	PrimaryUserID        *uint      `gorm:"default:null;index" json:"primary_user_id,omitempty"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsCanceled reports whether the subscription has reached the terminal state.
func (s *Subscription) IsCanceled() bool {
	return s.Status == SubscriptionStatusCanceled
}
