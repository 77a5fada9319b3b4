package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/folio-contact/internal/config"
)

func TestLoadSendGrid(t *testing.T) {
	t.Setenv("RELAY_SENDGRID_API_KEY", "sg-key")
	t.Setenv("RELAY_MAIL_FROM", "no-reply@folio.example")
	t.Setenv("RELAY_MAIL_TO", "owner@folio.example")
	t.Setenv("RELAY_CORS_ALLOWED_ORIGINS", "https://folio.example, http://localhost:5500")
	t.Setenv("RELAY_APP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddress())
	assert.Equal(t, config.MailProviderSendGrid, cfg.Mail.Provider)
	assert.Equal(t, []string{"https://folio.example", "http://localhost:5500"}, cfg.AllowedOrigins)
	assert.Equal(t, "https://folio.example", cfg.DefaultOrigin)
	assert.Equal(t, 10*time.Second, cfg.Mail.Timeout)
	assert.Equal(t, "Portfolio Contact", cfg.Mail.FromName)
}

func TestLoadRequiresSendGridKey(t *testing.T) {
	t.Setenv("RELAY_SENDGRID_API_KEY", "")
	t.Setenv("RELAY_MAIL_PROVIDER", "sendgrid")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadRequiresEnvelope(t *testing.T) {
	t.Setenv("RELAY_MAIL_PROVIDER", "postmark")
	t.Setenv("RELAY_POSTMARK_SERVER_TOKEN", "pm-token")
	t.Setenv("RELAY_MAIL_FROM", "")
	t.Setenv("RELAY_MAIL_TO", "")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadLogProvider(t *testing.T) {
	t.Setenv("RELAY_MAIL_PROVIDER", "LOG")
	t.Setenv("RELAY_CORS_DEFAULT_ORIGIN", "https://default.example")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.MailProviderLog, cfg.Mail.Provider)
	assert.Equal(t, "https://default.example", cfg.DefaultOrigin)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("RELAY_MAIL_PROVIDER", "carrier-pigeon")

	_, err := config.Load()
	require.ErrorContains(t, err, "unsupported mail provider")
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("RELAY_MAIL_PROVIDER", "log")
	t.Setenv("RELAY_MAIL_TIMEOUT", "soon")

	_, err := config.Load()
	require.ErrorContains(t, err, "invalid mail.timeout")
}

func TestLoadForm(t *testing.T) {
	t.Setenv("RELAY_FORM_DESTINATION", "abc123")
	t.Setenv("RELAY_FORM_BASE_URL", "https://relay.example/")

	cfg, err := config.LoadForm()
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.Destination)
	assert.Equal(t, "https://relay.example", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
}

func TestLoadToggles(t *testing.T) {
	t.Setenv("RELAY_MAIL_PROVIDER", "log")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.AccessLogs)

	t.Setenv("RELAY_METRICS_ENABLED", "false")
	t.Setenv("RELAY_LOG_ACCESS", "true")

	cfg, err = config.Load()
	require.NoError(t, err)
	assert.False(t, cfg.MetricsEnabled)
	assert.True(t, cfg.AccessLogs)
}

func TestLoadRequiresOriginsInProduction(t *testing.T) {
	t.Setenv("RELAY_MAIL_PROVIDER", "log")
	t.Setenv("RELAY_APP_ENV", "production")
	t.Setenv("RELAY_CORS_ALLOWED_ORIGINS", "")

	_, err := config.Load()
	require.ErrorContains(t, err, "cors allowed origins must be provided in production")

	t.Setenv("RELAY_CORS_ALLOWED_ORIGINS", "https://folio.example")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "https://folio.example", cfg.DefaultOrigin)
}

func TestLoadUsesDevOriginOutsideProduction(t *testing.T) {
	t.Setenv("RELAY_MAIL_PROVIDER", "log")
	t.Setenv("RELAY_APP_ENV", "development")
	t.Setenv("RELAY_CORS_ALLOWED_ORIGINS", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{config.DevAllowedOrigin}, cfg.AllowedOrigins)
	assert.Equal(t, config.DevAllowedOrigin, cfg.DefaultOrigin)
}
