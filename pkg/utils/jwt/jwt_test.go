package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	Init("test-secret")

	token, err := GenerateAdminToken("ops@wellnest.example")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "ops@wellnest.example", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
}

func TestTamperedTokenRejected(t *testing.T) {
	Init("test-secret")

	token, err := GenerateAdminToken("ops@wellnest.example")
	assert.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	Init("first-secret")
	token, err := GenerateAdminToken("ops@wellnest.example")
	assert.NoError(t, err)

	Init("second-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
