package controller

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74/webhook"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wellnest_backend/internal/model"
	"wellnest_backend/pkg/analytics"
	"wellnest_backend/pkg/email"
	"wellnest_backend/pkg/payment"
	"wellnest_backend/pkg/plans"
	"wellnest_backend/pkg/promo"
)

// WebhookController verifies and routes Stripe deliveries. Signature
// verification happens against the raw body before anything else; a failed
// handler returns 500 so Stripe retries that event, while unknown event types
// are acknowledged without work.
type WebhookController struct {
	db       *gorm.DB
	payments *payment.Client
	engine   *promo.Engine
	sink     *analytics.Sink
}

func NewWebhookController(db *gorm.DB, payments *payment.Client, engine *promo.Engine, sink *analytics.Sink) *WebhookController {
	return &WebhookController{db: db, payments: payments, engine: engine, sink: sink}
}

func (ctrl *WebhookController) HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signatureHeader := c.Get("Stripe-Signature")

	event, err := webhook.ConstructEvent(payload, signatureHeader, ctrl.payments.WebhookSecret())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook signature",
		})
	}

	// Idempotency ledger: the insert is skipped when this event ID was seen
	// before, and a skipped insert means a duplicate delivery.
	record := model.ProcessedWebhookEvent{EventID: event.ID, Type: string(event.Type)}
	res := ctrl.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
	if res.Error != nil {
		log.Printf("Could not record webhook event %s: %v", event.ID, res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not process webhook event",
		})
	}
	if res.RowsAffected == 0 {
		log.Printf("Duplicate webhook delivery for event %s, acknowledging without reprocessing", event.ID)
		return c.JSON(fiber.Map{"received": true})
	}

	log.Printf("Processing Stripe webhook event: %s (%s)", event.Type, event.ID)

	var handlerErr error
	switch string(event.Type) {
	case "customer.subscription.trial_will_end":
		handlerErr = ctrl.handleTrialWillEnd(event.Data.Raw)
	case "invoice.payment_succeeded":
		handlerErr = ctrl.handlePaymentSucceeded(event.Data.Raw)
	case "invoice.payment_failed":
		handlerErr = ctrl.handlePaymentFailed(event.Data.Raw)
	case "customer.subscription.updated":
		handlerErr = ctrl.handleSubscriptionUpdated(event.Data.Raw)
	default:
		log.Printf("Ignored webhook event type: %s", event.Type)
	}

	if handlerErr != nil {
		// Release the ledger entry so Stripe's retry gets a fresh run. If the
		// release itself fails the retry would be swallowed as a duplicate, so
		// that needs a loud trail for manual replay.
		if err := ctrl.db.Where("event_id = ?", event.ID).Delete(&model.ProcessedWebhookEvent{}).Error; err != nil {
			log.Printf("CRITICAL: could not release ledger entry for failed event %s, its retry will be dropped as a duplicate: %v", event.ID, err)
		}
		log.Printf("Webhook handler for %s (%s) failed: %v", event.Type, event.ID, handlerErr)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not process webhook event",
		})
	}

	return c.JSON(fiber.Map{"received": true})
}

func (ctrl *WebhookController) handleTrialWillEnd(raw json.RawMessage) error {
	var subData struct {
		ID       string `json:"id"`
		TrialEnd int64  `json:"trial_end"`
	}
	if err := json.Unmarshal(raw, &subData); err != nil {
		return err
	}

	var sub model.Subscription
	if err := ctrl.db.Where("stripe_sub_id = ?", subData.ID).Preload("Member").First(&sub).Error; err != nil {
		log.Printf("Trial ending for unknown subscription %s, skipping", subData.ID)
		return nil
	}

	// Only ambassadors trial; everyone else is billed from day one.
	if sub.PlanType != string(plans.Ambassador) {
		return nil
	}

	trialEndsAt := time.Now().AddDate(0, 0, 3)
	if subData.TrialEnd > 0 {
		trialEndsAt = time.Unix(subData.TrialEnd, 0)
	}
	daysLeft := int(time.Until(trialEndsAt).Hours() / 24)

	log.Printf("Trial for subscription %s ends %s", subData.ID, trialEndsAt.Format("2006-01-02"))

	if email.GlobalEmailService != nil {
		regular, _ := plans.Get(plans.Regular)
		if err := email.GlobalEmailService.SendTrialEndingWarning(
			sub.Member.Email,
			sub.Member.Name,
			daysLeft,
			trialEndsAt,
			regular.ChargedPounds(),
		); err != nil {
			log.Printf("Could not send trial ending email to %s: %v", sub.Member.Email, err)
		}
	}

	return nil
}

func (ctrl *WebhookController) handlePaymentSucceeded(raw json.RawMessage) error {
	var invoiceData struct {
		ID            string `json:"id"`
		Subscription  string `json:"subscription"`
		CustomerEmail string `json:"customer_email"`
		AmountPaid    int64  `json:"amount_paid"`
	}
	if err := json.Unmarshal(raw, &invoiceData); err != nil {
		return err
	}

	if invoiceData.Subscription == "" {
		log.Printf("Invoice %s paid with no subscription attached, skipping", invoiceData.ID)
		return nil
	}

	if err := ctrl.engine.HandlePaymentSucceeded(invoiceData.Subscription); err != nil {
		return err
	}

	ctrl.sink.Record(analytics.CategoryPayment, invoiceData.CustomerEmail, map[string]interface{}{
		"invoice_id":   invoiceData.ID,
		"subscription": invoiceData.Subscription,
		"amount_paid":  invoiceData.AmountPaid,
	})

	ctrl.notifyUpgradeIfJustHappened(invoiceData.Subscription)
	return nil
}

// notifyUpgradeIfJustHappened sends the price-change notice when the paid
// invoice completed the promo period. Best effort only.
func (ctrl *WebhookController) notifyUpgradeIfJustHappened(stripeSubID string) {
	if email.GlobalEmailService == nil {
		return
	}

	var sub model.Subscription
	if err := ctrl.db.Where("stripe_sub_id = ?", stripeSubID).Preload("Member").First(&sub).Error; err != nil {
		return
	}
	if sub.UpgradedAt == nil || time.Since(*sub.UpgradedAt) > time.Minute {
		return
	}

	feedback, _ := plans.Get(plans.Feedback)
	regular, _ := plans.Get(plans.Regular)
	if err := email.GlobalEmailService.SendPromoUpgradeNotice(
		sub.Member.Email,
		sub.Member.Name,
		feedback.ChargedPounds(),
		regular.ChargedPounds(),
	); err != nil {
		log.Printf("Could not send upgrade notice to %s: %v", sub.Member.Email, err)
	}
}

func (ctrl *WebhookController) handlePaymentFailed(raw json.RawMessage) error {
	var invoiceData struct {
		ID            string `json:"id"`
		Subscription  string `json:"subscription"`
		CustomerEmail string `json:"customer_email"`
	}
	if err := json.Unmarshal(raw, &invoiceData); err != nil {
		return err
	}

	// Dunning hook: no retry policy is implemented here, the failure is
	// surfaced in the local status for a future policy to act on.
	log.Printf("Payment failed for invoice %s (subscription %s)", invoiceData.ID, invoiceData.Subscription)

	if invoiceData.Subscription != "" {
		ctrl.db.Model(&model.Subscription{}).
			Where("stripe_sub_id = ?", invoiceData.Subscription).
			Update("status", "past_due")
	}

	return nil
}

func (ctrl *WebhookController) handleSubscriptionUpdated(raw json.RawMessage) error {
	var subData struct {
		ID               string `json:"id"`
		Status           string `json:"status"`
		CurrentPeriodEnd int64  `json:"current_period_end"`
	}
	if err := json.Unmarshal(raw, &subData); err != nil {
		return err
	}

	log.Printf("Processing subscription update: %s (status %s)", subData.ID, subData.Status)

	updates := map[string]interface{}{}
	if subData.Status != "" {
		updates["status"] = subData.Status
	}
	if subData.CurrentPeriodEnd > 0 {
		updates["current_period_end"] = time.Unix(subData.CurrentPeriodEnd, 0)
	}
	if len(updates) == 0 {
		return nil
	}

	return ctrl.db.Model(&model.Subscription{}).
		Where("stripe_sub_id = ?", subData.ID).
		Updates(updates).Error
}
