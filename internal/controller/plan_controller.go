package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"wellnest_backend/pkg/analytics"
	"wellnest_backend/pkg/payment"
	"wellnest_backend/pkg/plans"
	"wellnest_backend/pkg/utils/validation"
)

type PlanController struct {
	payments *payment.Client
	sink     *analytics.Sink
	baseURL  string
}

func NewPlanController(payments *payment.Client, sink *analytics.Sink, baseURL string) *PlanController {
	return &PlanController{payments: payments, sink: sink, baseURL: baseURL}
}

func (ctrl *PlanController) ListPlans(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"plans":          plans.List(),
		"publishableKey": ctrl.payments.PublishableKey(),
	})
}

type CheckoutSessionInput struct {
	Plan          string `json:"plan"`
	CustomerEmail string `json:"customerEmail"`
}

func (ctrl *PlanController) CreateCheckoutSession(c *fiber.Ctx) error {
	input := new(CheckoutSessionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	kind, ok := plans.ParseKind(input.Plan)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown plan",
		})
	}

	customerEmail := ""
	if input.CustomerEmail != "" {
		normalized, err := validation.NormalizeEmail(input.CustomerEmail)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid email format",
			})
		}
		customerEmail = normalized
	}

	sessionID, url, err := ctrl.payments.CreateCheckoutSession(kind, customerEmail, ctrl.baseURL)
	if err != nil {
		log.Printf("Could not create checkout session for plan %s: %v", kind, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create checkout session",
		})
	}

	ctrl.sink.Record(analytics.CategoryTierSelected, customerEmail, map[string]interface{}{
		"plan": string(kind),
	})

	return c.JSON(fiber.Map{
		"sessionId": sessionID,
		"url":       url,
	})
}
