package controller

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wellnest_backend/internal/model"
	"wellnest_backend/pkg/analytics"
	"wellnest_backend/pkg/utils/jwt"
)

type AdminController struct {
	db           *gorm.DB
	sink         *analytics.Sink
	passwordHash string
}

func NewAdminController(db *gorm.DB, sink *analytics.Sink, passwordHash string) *AdminController {
	return &AdminController{db: db, sink: sink, passwordHash: passwordHash}
}

type AdminLoginInput struct {
	Password string `json:"password"`
}

func (ctrl *AdminController) Login(c *fiber.Ctx) error {
	input := new(AdminLoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if ctrl.passwordHash == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Admin access is not configured",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ctrl.passwordHash), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := jwt.GenerateAdminToken("admin")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
	})
}

func (ctrl *AdminController) GetWaitlist(c *fiber.Ctx) error {
	var entries []model.WaitlistEntry
	if err := ctrl.db.Order("position ASC").Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch waitlist",
		})
	}

	return c.JSON(fiber.Map{
		"entries": entries,
		"total":   len(entries),
	})
}

func (ctrl *AdminController) GetAnalyticsStats(c *fiber.Ctx) error {
	counts, err := ctrl.sink.CategoryCounts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch analytics statistics",
		})
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return c.JSON(fiber.Map{
		"categories": counts,
		"total":      total,
	})
}
