package promo

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"wellnest_backend/internal/model"
	"wellnest_backend/pkg/payment"
	"wellnest_backend/pkg/plans"
)

// Engine applies payment-succeeded transitions to the local subscription row
// and mirrors them to Stripe. The local row is the source of truth for the
// counter; updates are conditional on the expected value so two concurrent
// deliveries cannot double-decrement.
type Engine struct {
	db       *gorm.DB
	payments *payment.Client
}

func NewEngine(db *gorm.DB, payments *payment.Client) *Engine {
	return &Engine{db: db, payments: payments}
}

// HandlePaymentSucceeded runs the state machine for one paid invoice on the
// given Stripe subscription. Unknown subscriptions are logged and skipped so
// unrelated events never fail the webhook.
func (e *Engine) HandlePaymentSucceeded(stripeSubID string) error {
	var sub model.Subscription
	if err := e.db.Where("stripe_sub_id = ?", stripeSubID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Payment succeeded for unknown subscription %s, skipping promo bookkeeping", stripeSubID)
			return nil
		}
		// Anything else must bubble up so the delivery is retried instead of
		// acknowledged with the transition lost.
		return fmt.Errorf("could not load subscription %s: %w", stripeSubID, err)
	}

	switch OnPaymentSucceeded(plans.Kind(sub.PlanType), sub.PromoMonthsRemaining) {
	case ActionDecrement:
		return e.decrement(&sub)
	case ActionUpgrade:
		return e.upgrade(&sub)
	default:
		return nil
	}
}

func (e *Engine) decrement(sub *model.Subscription) error {
	remaining := sub.PromoMonthsRemaining - 1

	// Guarded write: only applies if the counter still holds the value this
	// event observed.
	res := e.db.Model(&model.Subscription{}).
		Where("id = ? AND promo_months_remaining = ?", sub.ID, sub.PromoMonthsRemaining).
		Update("promo_months_remaining", remaining)
	if res.Error != nil {
		return fmt.Errorf("could not decrement promo counter for %s: %w", sub.StripeSubID, res.Error)
	}
	if res.RowsAffected == 0 {
		log.Printf("Promo counter for %s already moved past %d, skipping", sub.StripeSubID, sub.PromoMonthsRemaining)
		return nil
	}

	log.Printf("Subscription %s promo months remaining: %d", sub.StripeSubID, remaining)

	if err := e.payments.SyncPromoMetadata(sub.StripeSubID, remaining); err != nil {
		// The local row already holds the new value; the mirror write is
		// best effort.
		log.Printf("Could not sync promo metadata for %s: %v", sub.StripeSubID, err)
	}
	return nil
}

func (e *Engine) upgrade(sub *model.Subscription) error {
	// Stripe first. If the price replace fails the local row stays in
	// promo-last-cycle and the retried event runs the same transition again.
	if err := e.payments.UpgradeToRegular(sub.StripeSubID, sub.StripeItemID); err != nil {
		return err
	}

	now := time.Now().UTC()
	res := e.db.Model(&model.Subscription{}).
		Where("id = ? AND plan_type = ?", sub.ID, string(plans.Feedback)).
		Updates(map[string]interface{}{
			"plan_type":              string(plans.Regular),
			"promo_months_remaining": 0,
			"upgraded_from":          string(plans.Feedback),
			"upgraded_at":            now,
		})
	if res.Error != nil {
		return fmt.Errorf("could not record upgrade for %s: %w", sub.StripeSubID, res.Error)
	}
	if res.RowsAffected == 0 {
		log.Printf("Subscription %s already upgraded, skipping", sub.StripeSubID)
		return nil
	}

	log.Printf("Subscription %s upgraded from feedback to regular pricing", sub.StripeSubID)
	return nil
}
