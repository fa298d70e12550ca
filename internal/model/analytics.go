package model

import (
	"time"

	"gorm.io/datatypes"
)

// AnalyticsEvent is one best-effort lifecycle record. Category corresponds to
// a tab in the exported spreadsheet view; writes are fire-and-forget and
// never affect the request that produced them.
type AnalyticsEvent struct {
	ID         uint           `gorm:"primaryKey"`
	Category   string         `gorm:"index;size:50;not null"`
	Email      string         `gorm:"size:255"`
	Payload    datatypes.JSON `gorm:"type:jsonb"`
	RecordedAt time.Time      `gorm:"autoCreateTime;index"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
