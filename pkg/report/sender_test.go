package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPSenderFromEnv(t *testing.T) {
	t.Setenv("FLOTILLA_SMTP_ADDRESS", "smtp.example.com:587")
	t.Setenv("FLOTILLA_SMTP_USERNAME", "reports")
	t.Setenv("FLOTILLA_SMTP_PASSWORD", "hunter2")
	t.Setenv("FLOTILLA_SMTP_FROM", "tracker@example.com")
	t.Setenv("FLOTILLA_SMTP_RECIPIENTS", "a@example.com,b@example.com")

	sender, err := NewSMTPSenderFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", sender.Address)
	assert.Equal(t, "tracker@example.com", sender.From)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sender.Recipients)
}

func TestNewSMTPSenderFromEnvMissingConfiguration(t *testing.T) {
	t.Setenv("FLOTILLA_SMTP_ADDRESS", "")
	t.Setenv("FLOTILLA_SMTP_FROM", "")
	t.Setenv("FLOTILLA_SMTP_RECIPIENTS", "")

	_, err := NewSMTPSenderFromEnv()
	assert.Error(t, err)
}
