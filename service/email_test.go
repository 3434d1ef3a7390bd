package service

import (
	"errors"
	"testing"

	"labbudget/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmailService() *EmailService {
	return NewEmailService(&config.EmailConfig{})
}

func TestGenerateExpiryDigestBody(t *testing.T) {
	s := newTestEmailService()
	months := 1
	body := s.generateExpiryDigestBody("2026-03-15", []ProjectSummary{
		{
			Project:       projectNamed("<GrantA>", "2026-04-30"),
			Execution:     Execution{Remaining: 12345, PercentTotal: 0.6},
			MonthsLeft:    &months,
			ExpiryWarning: WarningMarker + WarningMarker,
		},
	})

	assert.Contains(t, body, "2026-03-15")
	assert.Contains(t, body, "&lt;GrantA&gt;")
	assert.NotContains(t, body, "<GrantA>")
	assert.Contains(t, body, "2026-04-30")
	assert.Contains(t, body, "$12345")
	assert.Contains(t, body, "60.0%")
	assert.Contains(t, body, "經費到期提醒")
}

func TestSendExpiryDigest_Disabled(t *testing.T) {
	s := newTestEmailService()
	sent, err := s.SendExpiryDigest([]string{"pi@example.com"}, Overview{})
	assert.False(t, sent)
	assert.True(t, errors.Is(err, ErrEmailDisabled))
}

func TestSendExpiryDigest_NothingToSend(t *testing.T) {
	s := NewEmailService(&config.EmailConfig{Enabled: true, Recipients: []string{"pi@example.com"}})

	sent, err := s.SendExpiryDigest(nil, Overview{Projects: []ProjectSummary{{Project: projectNamed("Far", "2030-01-01")}}})
	require.NoError(t, err)
	assert.False(t, sent)

	s = NewEmailService(&config.EmailConfig{Enabled: true})
	_, err = s.SendExpiryDigest(nil, Overview{})
	assert.True(t, errors.Is(err, ErrValidation))
}
