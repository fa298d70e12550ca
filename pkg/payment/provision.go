package payment

import (
	"fmt"
	"log"
	"strconv"

	stripe "github.com/stripe/stripe-go/v74"

	"wellnest_backend/pkg/plans"
)

type AmbassadorApplication struct {
	Email         string
	Name          string
	SocialHandle  string
	Platform      string
	FollowerCount string
	ContentStyle  string
}

type FeedbackApplication struct {
	Email  string
	Name   string
	Reason string
}

type ProvisionResult struct {
	CustomerID     string
	SubscriptionID string
	ItemID         string
	ClientSecret   string
	TrialEnd       int64
	Demo           bool
}

// ProvisionAmbassador creates a Stripe customer and a subscription on the
// regular price with a 90-day trial. The card is saved but nothing is charged
// until the trial ends.
func (c *Client) ProvisionAmbassador(app AmbassadorApplication) (*ProvisionResult, error) {
	if !c.Enabled() {
		return &ProvisionResult{
			CustomerID:     demoID("demo_customer"),
			SubscriptionID: demoID("demo_sub"),
			Demo:           true,
		}, nil
	}

	customerParams := &stripe.CustomerParams{
		Email: stripe.String(app.Email),
		Name:  stripe.String(app.Name),
	}
	customerParams.AddMetadata("type", string(plans.Ambassador))
	customerParams.AddMetadata("socialHandle", app.SocialHandle)
	customerParams.AddMetadata("platform", app.Platform)
	customerParams.AddMetadata("followerCount", app.FollowerCount)
	customerParams.AddMetadata("contentStyle", app.ContentStyle)

	cust, err := c.api.Customers.New(customerParams)
	if err != nil {
		return nil, fmt.Errorf("could not create Stripe customer: %w", err)
	}

	subParams := &stripe.SubscriptionParams{
		Customer: stripe.String(cust.ID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(c.cfg.RegularPriceID)},
		},
		TrialPeriodDays: stripe.Int64(plans.TrialDays),
	}
	subParams.AddMetadata("type", string(plans.Ambassador))

	sub, err := c.api.Subscriptions.New(subParams)
	if err != nil {
		// No compensating delete: the orphaned customer is a documented gap
		// reconciled out-of-band.
		log.Printf("Subscription creation failed, orphaned Stripe customer %s remains: %v", cust.ID, err)
		return nil, fmt.Errorf("could not create ambassador subscription: %w", err)
	}

	return &ProvisionResult{
		CustomerID:     cust.ID,
		SubscriptionID: sub.ID,
		ItemID:         firstItemID(sub),
		TrialEnd:       sub.TrialEnd,
	}, nil
}

// ProvisionFeedback creates a Stripe customer and a subscription on the
// discounted price charging immediately. The promo counter and the regular
// price reference are stamped into subscription metadata so the webhook-driven
// upgrade can find them from the Stripe dashboard as well.
func (c *Client) ProvisionFeedback(app FeedbackApplication) (*ProvisionResult, error) {
	if !c.Enabled() {
		return &ProvisionResult{
			CustomerID:     demoID("demo_customer"),
			SubscriptionID: demoID("demo_sub"),
			Demo:           true,
		}, nil
	}

	customerParams := &stripe.CustomerParams{
		Email: stripe.String(app.Email),
		Name:  stripe.String(app.Name),
	}
	customerParams.AddMetadata("type", string(plans.Feedback))
	customerParams.AddMetadata("reason", app.Reason)

	cust, err := c.api.Customers.New(customerParams)
	if err != nil {
		return nil, fmt.Errorf("could not create Stripe customer: %w", err)
	}

	subParams := &stripe.SubscriptionParams{
		Customer: stripe.String(cust.ID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(c.cfg.FeedbackPriceID)},
		},
	}
	subParams.AddMetadata("type", string(plans.Feedback))
	subParams.AddMetadata("promo_months_remaining", strconv.Itoa(plans.PromoCycles))
	subParams.AddMetadata("regular_price_id", c.cfg.RegularPriceID)
	subParams.AddExpand("latest_invoice.payment_intent")

	sub, err := c.api.Subscriptions.New(subParams)
	if err != nil {
		log.Printf("Subscription creation failed, orphaned Stripe customer %s remains: %v", cust.ID, err)
		return nil, fmt.Errorf("could not create feedback subscription: %w", err)
	}

	result := &ProvisionResult{
		CustomerID:     cust.ID,
		SubscriptionID: sub.ID,
		ItemID:         firstItemID(sub),
	}
	if sub.LatestInvoice != nil && sub.LatestInvoice.PaymentIntent != nil {
		result.ClientSecret = sub.LatestInvoice.PaymentIntent.ClientSecret
	}
	return result, nil
}

func firstItemID(sub *stripe.Subscription) string {
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		return sub.Items.Data[0].ID
	}
	return ""
}
