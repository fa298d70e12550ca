package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"wellnest_backend/pkg/utils/jwt"
)

func newProtectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/admin/ping", AdminAuth(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestAdminAuthRejectsMissingToken(t *testing.T) {
	jwt.Init("test-secret")
	app := newProtectedApp()

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthRejectsGarbageToken(t *testing.T) {
	jwt.Init("test-secret")
	app := newProtectedApp()

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	jwt.Init("test-secret")
	app := newProtectedApp()

	token, err := jwt.GenerateAdminToken("admin")
	assert.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
