package models

import "time"

// Payment is an append-only record per successful invoice. The provider event
// id carries a unique index so replayed invoice webhooks cannot create
// duplicate rows.
type Payment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	SubscriptionID  uint      `gorm:"not null;index" json:"subscription_id"`
	PlanID          string    `gorm:"type:varchar(191);not null" json:"plan_id"`
	Amount          float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status          string    `gorm:"type:varchar(32);not null" json:"status"`
	ProviderEventID string    `gorm:"type:varchar(191);not null;default:'';uniqueIndex" json:"provider_event_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}
