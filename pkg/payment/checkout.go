package payment

import (
	"fmt"

	stripe "github.com/stripe/stripe-go/v74"

	"wellnest_backend/pkg/plans"
)

// CreateCheckoutSession starts a hosted Checkout flow for the given plan. In
// demo mode it returns a fake session pointing back at the frontend.
func (c *Client) CreateCheckoutSession(kind plans.Kind, customerEmail, baseURL string) (string, string, error) {
	if !c.Enabled() {
		return demoID("demo_session"), baseURL + "/checkout/demo", nil
	}

	priceID := c.priceFor(kind)
	if priceID == "" {
		return "", "", fmt.Errorf("no price configured for plan %s", kind)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(baseURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(baseURL + "/payment-cancelled"),
	}
	if kind == plans.Ambassador {
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			TrialPeriodDays: stripe.Int64(plans.TrialDays),
		}
	}
	if customerEmail != "" {
		params.CustomerEmail = stripe.String(customerEmail)
	}

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", "", fmt.Errorf("could not create checkout session: %w", err)
	}
	return sess.ID, sess.URL, nil
}
