package model

import "gorm.io/gorm"

// Member is the local record for a person who went through one of the
// conversion paths. Stripe remains the billing source of truth; this row
// exists so lifecycle state does not have to round-trip through provider
// metadata.
type Member struct {
	gorm.Model
	Email            string `json:"email" gorm:"uniqueIndex;not null"`
	Name             string `json:"name"`
	StripeCustomerID string `json:"stripe_customer_id" gorm:"index"`

	// Ambassador application answers
	SocialHandle  string `json:"social_handle"`
	Platform      string `json:"platform"`
	FollowerCount string `json:"follower_count"`
	ContentStyle  string `json:"content_style"`
	WhyAmbassador string `json:"why_ambassador" gorm:"type:text"`

	// Feedback member application answer
	Reason string `json:"reason" gorm:"type:text"`

	Subscriptions []Subscription `json:"-"`
}
