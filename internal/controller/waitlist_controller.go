package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"wellnest_backend/internal/model"
	"wellnest_backend/pkg/analytics"
	"wellnest_backend/pkg/email"
	"wellnest_backend/pkg/utils/validation"
)

type WaitlistController struct {
	db   *gorm.DB
	sink *analytics.Sink
}

func NewWaitlistController(db *gorm.DB, sink *analytics.Sink) *WaitlistController {
	return &WaitlistController{db: db, sink: sink}
}

type WaitlistInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (ctrl *WaitlistController) CreateWaitlist(c *fiber.Ctx) error {
	input := new(WaitlistInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	normalizedEmail, err := validation.NormalizeEmail(input.Email)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid email format",
		})
	}

	var existing model.WaitlistEntry
	if err := ctrl.db.Where("email = ?", normalizedEmail).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":    "Already on the waitlist",
			"position": existing.Position,
		})
	}

	var count int64
	if err := ctrl.db.Model(&model.WaitlistEntry{}).Count(&count).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not join the waitlist",
		})
	}

	entry := model.WaitlistEntry{
		Email:        normalizedEmail,
		Name:         input.Name,
		ReferralCode: uuid.NewString(),
		Position:     int(count) + 1,
	}
	if err := ctrl.db.Create(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not join the waitlist",
		})
	}

	ctrl.sink.Record(analytics.CategoryWaitlist, normalizedEmail, map[string]interface{}{
		"position": entry.Position,
	})

	if email.GlobalEmailService != nil {
		if err := email.GlobalEmailService.SendWaitlistWelcome(normalizedEmail, input.Name, entry.Position, entry.ReferralCode); err != nil {
			log.Printf("Could not send waitlist welcome email: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"waitlistId": entry.ID,
		"position":   entry.Position,
	})
}
