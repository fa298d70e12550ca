package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellnest_backend/pkg/payment"
)

func TestListPlansIncludesPublishableKey(t *testing.T) {
	payments := payment.New(payment.Config{PublishableKey: "pk_test_12345"})
	ctrl := NewPlanController(payments, nil, "http://localhost:3000")

	app := fiber.New()
	app.Get("/api/stripe/plans", ctrl.ListPlans)

	req := httptest.NewRequest("GET", "/api/stripe/plans", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Plans          []json.RawMessage `json:"plans"`
		PublishableKey string            `json:"publishableKey"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "pk_test_12345", payload.PublishableKey)
	assert.Len(t, payload.Plans, 3)
}
