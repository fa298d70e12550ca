package payment

import (
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v74/client"

	"wellnest_backend/pkg/plans"
)

type Config struct {
	SecretKey         string
	WebhookSecret     string
	PublishableKey    string
	AmbassadorPriceID string
	FeedbackPriceID   string
	RegularPriceID    string
}

// Client wraps the Stripe API behind an injectable object so handlers can be
// tested with a disabled client. Without a secret key every provisioning call
// returns deterministic demo identifiers and nothing is ever charged.
type Client struct {
	api *client.API
	cfg Config
}

func New(cfg Config) *Client {
	c := &Client{cfg: cfg}
	if cfg.SecretKey != "" {
		c.api = &client.API{}
		c.api.Init(cfg.SecretKey, nil)
	}
	return c
}

func (c *Client) Enabled() bool {
	return c.api != nil
}

func (c *Client) WebhookSecret() string {
	return c.cfg.WebhookSecret
}

func (c *Client) RegularPriceID() string {
	return c.cfg.RegularPriceID
}

// PublishableKey is safe to hand to browsers; Stripe.js needs it to confirm
// payment intents client side.
func (c *Client) PublishableKey() string {
	return c.cfg.PublishableKey
}

func (c *Client) priceFor(kind plans.Kind) string {
	switch kind {
	case plans.Feedback:
		return c.cfg.FeedbackPriceID
	case plans.Ambassador, plans.Regular:
		return c.cfg.RegularPriceID
	default:
		return ""
	}
}

// Demo identifiers are prefixed so they are visually distinguishable from
// real Stripe IDs and can never be mistaken for billable objects.
func demoID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().Unix())
}
