package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("QUEUE_DRIVER", "")
	t.Setenv("NOTIFY_RECIPIENT", "")
	t.Setenv("PAYPAL_ENV", "")
	t.Setenv("PAYPAL_BASE_URL", "")

	assert.Equal(t, "3000", Port())
	assert.Equal(t, QUEUE_REDIS, QueueDriver())
	assert.Equal(t, "usatagsus@gmail.com", NotifyRecipient())
	assert.Equal(t, "https://api-m.paypal.com", PayPalBaseURL())
}

func TestPayPalSandbox(t *testing.T) {
	t.Setenv("PAYPAL_BASE_URL", "")
	t.Setenv("PAYPAL_ENV", "sandbox")
	assert.Equal(t, "https://api-m.sandbox.paypal.com", PayPalBaseURL())
}

func TestEnvParsing(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-number")
	assert.Equal(t, 587, SMTPPort())

	t.Setenv("QUEUE_WORKER", "false")
	assert.False(t, QueueWorkerEnabled())
}

func TestAdmin(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "admin@usatag.us")
	t.Setenv("ADMIN_PASSWORD", "")
	assert.Nil(t, Admin())

	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("ADMIN_USERNAME", "")
	admin := Admin()
	if assert.NotNil(t, admin) {
		assert.Equal(t, "admin", admin.Username)
	}
}

func TestPublicEnv(t *testing.T) {
	t.Setenv("SERVER_URL", "https://api.usatag.us")
	t.Setenv("PAYPAL_CLIENT_ID", "client-id")
	t.Setenv("RAPID_API_KEY", "")

	env := GetPublicEnv()
	assert.Equal(t, "https://api.usatag.us", env.ServerURL)
	assert.Equal(t, "client-id", env.PayPalClientID)
	assert.Empty(t, env.RapidAPIKey)
}
