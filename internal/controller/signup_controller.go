package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"wellnest_backend/internal/model"
	"wellnest_backend/pkg/analytics"
	"wellnest_backend/pkg/payment"
	"wellnest_backend/pkg/plans"
	"wellnest_backend/pkg/utils/validation"
)

// SignupController owns the two paid conversion paths. The payment client is
// injected so the flows can run against the demo client in tests and in
// unconfigured environments.
type SignupController struct {
	db       *gorm.DB
	payments *payment.Client
	sink     *analytics.Sink
}

func NewSignupController(db *gorm.DB, payments *payment.Client, sink *analytics.Sink) *SignupController {
	return &SignupController{db: db, payments: payments, sink: sink}
}

// Card fields are interface{} because clients send them as JSON numbers as
// well as strings; they are coerced before validation.
type AmbassadorSetupInput struct {
	Email         string      `json:"email"`
	BillingName   string      `json:"billingName"`
	CardNumber    interface{} `json:"cardNumber"`
	ExpiryDate    interface{} `json:"expiryDate"`
	CVV           interface{} `json:"cvv"`
	SocialHandle  string      `json:"socialHandle"`
	Platform      string      `json:"platform"`
	FollowerCount interface{} `json:"followerCount"`
	ContentStyle  string      `json:"contentStyle"`
	WhyAmbassador string      `json:"whyAmbassador"`
}

type FeedbackSubscriptionInput struct {
	Email       string      `json:"email"`
	BillingName string      `json:"billingName"`
	CardNumber  interface{} `json:"cardNumber"`
	ExpiryDate  interface{} `json:"expiryDate"`
	CVV         interface{} `json:"cvv"`
	Reason      string      `json:"reason"`
}

func (ctrl *SignupController) CreateAmbassadorSetup(c *fiber.Ctx) error {
	input := new(AmbassadorSetupInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	card, err := validation.ValidateCardFields(
		validation.CoerceString(input.CardNumber),
		validation.CoerceString(input.ExpiryDate),
		validation.CoerceString(input.CVV),
		input.Email,
		input.BillingName,
	)
	if err != nil {
		return respondFieldError(c, err)
	}

	result, err := ctrl.payments.ProvisionAmbassador(payment.AmbassadorApplication{
		Email:         card.Email,
		Name:          card.Name,
		SocialHandle:  input.SocialHandle,
		Platform:      input.Platform,
		FollowerCount: validation.CoerceString(input.FollowerCount),
		ContentStyle:  input.ContentStyle,
	})
	if err != nil {
		log.Printf("Ambassador provisioning failed for %s: %v", card.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create ambassador subscription",
		})
	}

	member := model.Member{
		Email:         card.Email,
		Name:          card.Name,
		SocialHandle:  input.SocialHandle,
		Platform:      input.Platform,
		FollowerCount: validation.CoerceString(input.FollowerCount),
		ContentStyle:  input.ContentStyle,
		WhyAmbassador: input.WhyAmbassador,
	}
	if err := ctrl.saveSignup(&member, result, plans.Ambassador); err != nil {
		log.Printf("Could not save ambassador records for %s: %v", card.Email, err)
	}

	ctrl.sink.Record(analytics.CategoryApplication, card.Email, map[string]interface{}{
		"tier":        string(plans.Ambassador),
		"platform":    input.Platform,
		"customer_id": result.CustomerID,
		"demo":        result.Demo,
	})

	response := fiber.Map{
		"success":    true,
		"customerId": result.CustomerID,
		"message":    "Ambassador setup complete. Your card is saved and billing starts after the 90-day trial.",
	}
	if result.SubscriptionID != "" {
		response["subscriptionId"] = result.SubscriptionID
	}
	return c.JSON(response)
}

func (ctrl *SignupController) CreateFeedbackSubscription(c *fiber.Ctx) error {
	input := new(FeedbackSubscriptionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	card, err := validation.ValidateCardFields(
		validation.CoerceString(input.CardNumber),
		validation.CoerceString(input.ExpiryDate),
		validation.CoerceString(input.CVV),
		input.Email,
		input.BillingName,
	)
	if err != nil {
		return respondFieldError(c, err)
	}

	result, err := ctrl.payments.ProvisionFeedback(payment.FeedbackApplication{
		Email:  card.Email,
		Name:   card.Name,
		Reason: input.Reason,
	})
	if err != nil {
		log.Printf("Feedback provisioning failed for %s: %v", card.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create feedback subscription",
		})
	}

	member := model.Member{
		Email:  card.Email,
		Name:   card.Name,
		Reason: input.Reason,
	}
	if err := ctrl.saveSignup(&member, result, plans.Feedback); err != nil {
		log.Printf("Could not save feedback records for %s: %v", card.Email, err)
	}

	feedbackPlan, _ := plans.Get(plans.Feedback)

	ctrl.sink.Record(analytics.CategoryPayment, card.Email, map[string]interface{}{
		"tier":           string(plans.Feedback),
		"charged_amount": feedbackPlan.ChargedPounds(),
		"customer_id":    result.CustomerID,
		"demo":           result.Demo,
	})

	response := fiber.Map{
		"success":        true,
		"customerId":     result.CustomerID,
		"subscriptionId": result.SubscriptionID,
		"chargedAmount":  feedbackPlan.ChargedPounds(),
	}
	if result.ClientSecret != "" {
		response["clientSecret"] = result.ClientSecret
	}
	return c.JSON(response)
}

// saveSignup upserts the member row and records the subscription mirror. The
// promo counter starts at the full cycle count for feedback members only.
func (ctrl *SignupController) saveSignup(member *model.Member, result *payment.ProvisionResult, kind plans.Kind) error {
	var existing model.Member
	err := ctrl.db.Where("email = ?", member.Email).First(&existing).Error
	switch {
	case err == nil:
		member.ID = existing.ID
		member.CreatedAt = existing.CreatedAt
		member.StripeCustomerID = result.CustomerID
		if err := ctrl.db.Save(member).Error; err != nil {
			return err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		member.StripeCustomerID = result.CustomerID
		if err := ctrl.db.Create(member).Error; err != nil {
			return err
		}
	default:
		return err
	}

	sub := model.Subscription{
		MemberID:     member.ID,
		PlanType:     string(kind),
		Status:       "active",
		StripeSubID:  result.SubscriptionID,
		StripeItemID: result.ItemID,
	}
	switch kind {
	case plans.Feedback:
		sub.PromoMonthsRemaining = plans.PromoCycles
		sub.RegularPriceID = ctrl.payments.RegularPriceID()
	case plans.Ambassador:
		sub.Status = "trialing"
		if result.TrialEnd > 0 {
			t := time.Unix(result.TrialEnd, 0)
			sub.TrialEndsAt = &t
		} else {
			t := time.Now().AddDate(0, 0, int(plans.TrialDays))
			sub.TrialEndsAt = &t
		}
	}

	return ctrl.db.Create(&sub).Error
}

func respondFieldError(c *fiber.Ctx, err error) error {
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   fe.Code,
			"field":   fe.Field,
			"message": fe.Error(),
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid input",
	})
}
