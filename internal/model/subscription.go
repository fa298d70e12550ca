package model

import (
	"time"

	"gorm.io/gorm"
)

// Subscription mirrors a Stripe subscription for one member. The promo
// counter and upgrade stamps live here as typed columns; the same values are
// written through to Stripe metadata for dashboard visibility.
type Subscription struct {
	gorm.Model
	MemberID uint   `json:"member_id" gorm:"index"`
	PlanType string `json:"plan_type" gorm:"not null"` // ambassador, feedback, regular
	Status   string `json:"status" gorm:"default:'active'"`

	StripeSubID  string `json:"stripe_subscription_id" gorm:"uniqueIndex"`
	StripeItemID string `json:"-"`

	// Discounted-cycle bookkeeping. The counter decrements by one per paid
	// invoice while above 1 and the subscription upgrades in place when it
	// reaches exactly 1; it never decrements to 0.
	PromoMonthsRemaining int        `json:"promo_months_remaining" gorm:"not null;default:0"`
	RegularPriceID       string     `json:"regular_price_id"`
	UpgradedFrom         string     `json:"upgraded_from"`
	UpgradedAt           *time.Time `json:"upgraded_at"`

	TrialEndsAt      *time.Time `json:"trial_ends_at"`
	CurrentPeriodEnd *time.Time `json:"current_period_end"`

	Member Member `json:"-" gorm:"foreignKey:MemberID"`
}
