package analytics

import (
	"encoding/json"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"wellnest_backend/internal/model"
)

// Event categories, each corresponding to a tab in the exported view.
const (
	CategoryFormSubmission = "form_submission"
	CategorySwipe          = "swipe"
	CategoryTierSelected   = "tier_selected"
	CategoryApplication    = "application"
	CategoryWaitlist       = "waitlist"
	CategoryPayment        = "payment"
)

// Sink records lifecycle events best-effort. Record never blocks the caller
// and never returns an error; a failed write degrades to a logged warning.
type Sink struct {
	db *gorm.DB
}

func NewSink(db *gorm.DB) *Sink {
	return &Sink{db: db}
}

func (s *Sink) Record(category, email string, payload map[string]interface{}) {
	if s == nil || s.db == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Analytics sink panicked recording %s event: %v", category, r)
			}
		}()

		var raw datatypes.JSON
		if payload != nil {
			data, err := json.Marshal(payload)
			if err != nil {
				log.Printf("Could not marshal %s analytics payload: %v", category, err)
				return
			}
			raw = datatypes.JSON(data)
		}

		event := model.AnalyticsEvent{
			Category: category,
			Email:    email,
			Payload:  raw,
		}
		if err := s.db.Create(&event).Error; err != nil {
			log.Printf("Could not record %s analytics event: %v", category, err)
		}
	}()
}

// CategoryCounts aggregates total events per category for the admin
// dashboard.
func (s *Sink) CategoryCounts() (map[string]int64, error) {
	var rows []struct {
		Category string
		Count    int64
	}

	err := s.db.Model(&model.AnalyticsEvent{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}
