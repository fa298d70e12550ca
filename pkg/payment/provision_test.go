package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDemoModeProvisioning(t *testing.T) {
	c := New(Config{}) // no secret key
	assert.False(t, c.Enabled())

	result, err := c.ProvisionAmbassador(AmbassadorApplication{
		Email: "amb@example.com",
		Name:  "Amb Assador",
	})
	assert.NoError(t, err)
	assert.True(t, result.Demo)
	assert.True(t, strings.HasPrefix(result.CustomerID, "demo_customer_"))
	assert.True(t, strings.HasPrefix(result.SubscriptionID, "demo_sub_"))

	result, err = c.ProvisionFeedback(FeedbackApplication{
		Email:  "fb@example.com",
		Name:   "Feed Back",
		Reason: "curious",
	})
	assert.NoError(t, err)
	assert.True(t, result.Demo)
	assert.True(t, strings.HasPrefix(result.CustomerID, "demo_customer_"))
}

func TestDemoModeCheckoutSession(t *testing.T) {
	c := New(Config{})

	id, url, err := c.CreateCheckoutSession("feedback", "", "https://wellnest.example")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "demo_session_"))
	assert.Equal(t, "https://wellnest.example/checkout/demo", url)
}

func TestDemoModeLifecycleCallsAreNoOps(t *testing.T) {
	c := New(Config{})

	assert.NoError(t, c.SyncPromoMetadata("demo_sub_1", 2))
	assert.NoError(t, c.UpgradeToRegular("demo_sub_1", ""))
}
