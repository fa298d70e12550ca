package model

import "time"

// ProcessedWebhookEvent is the idempotency ledger for Stripe deliveries.
// Each event ID is inserted before its handler runs; a duplicate delivery
// hits the unique index and is acknowledged without reprocessing. The row is
// removed again when the handler fails so Stripe's retry gets another run.
type ProcessedWebhookEvent struct {
	ID          uint      `gorm:"primaryKey"`
	EventID     string    `gorm:"uniqueIndex;not null;size:255"`
	Type        string    `gorm:"size:100"`
	ProcessedAt time.Time `gorm:"autoCreateTime"`
}

func (ProcessedWebhookEvent) TableName() string {
	return "processed_webhook_events"
}
