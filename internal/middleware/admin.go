package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"wellnest_backend/pkg/utils/jwt"
)

// AdminAuth protects the dashboard routes with a bearer token issued by the
// admin login endpoint.
func AdminAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization token",
			})
		}

		claims, err := jwt.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		if claims.Role != "admin" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You don't have permission to access this resource",
			})
		}

		c.Locals("admin", claims)
		return c.Next()
	}
}
