package payment

import (
	"fmt"
	"strconv"
	"time"

	stripe "github.com/stripe/stripe-go/v74"
)

// SyncPromoMetadata writes the promo counter back to the Stripe subscription.
// The local subscription row is the source of truth; this keeps the dashboard
// in step and is best-effort for callers.
func (c *Client) SyncPromoMetadata(subID string, remaining int) error {
	if !c.Enabled() {
		return nil
	}

	params := &stripe.SubscriptionParams{}
	params.AddMetadata("promo_months_remaining", strconv.Itoa(remaining))

	if _, err := c.api.Subscriptions.Update(subID, params); err != nil {
		return fmt.Errorf("could not update subscription metadata: %w", err)
	}
	return nil
}

// UpgradeToRegular replaces the subscription's price with the regular price
// and stamps the audit metadata. Re-running after a partial failure is safe:
// setting the same price and metadata again is a no-op on Stripe's side.
func (c *Client) UpgradeToRegular(subID, itemID string) error {
	if !c.Enabled() {
		return nil
	}

	if itemID == "" {
		sub, err := c.api.Subscriptions.Get(subID, nil)
		if err != nil {
			return fmt.Errorf("could not fetch subscription %s: %w", subID, err)
		}
		itemID = firstItemID(sub)
		if itemID == "" {
			return fmt.Errorf("subscription %s has no items", subID)
		}
	}

	params := &stripe.SubscriptionParams{
		Items: []*stripe.SubscriptionItemsParams{
			{
				ID:    stripe.String(itemID),
				Price: stripe.String(c.cfg.RegularPriceID),
			},
		},
		ProrationBehavior: stripe.String("none"),
	}
	params.AddMetadata("type", "regular")
	params.AddMetadata("upgraded_from", "feedback")
	params.AddMetadata("upgraded_at", time.Now().UTC().Format(time.RFC3339))
	// Clearing the key stops the promo bookkeeping rather than leaving a
	// zero behind.
	params.AddMetadata("promo_months_remaining", "")

	if _, err := c.api.Subscriptions.Update(subID, params); err != nil {
		return fmt.Errorf("could not upgrade subscription %s: %w", subID, err)
	}
	return nil
}
