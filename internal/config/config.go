package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported mail providers.
const (
	MailProviderSendGrid = "sendgrid"
	MailProviderPostmark = "postmark"
	MailProviderLog      = "log"
)

// DevAllowedOrigin is the CORS allow-list outside production when none is configured.
const DevAllowedOrigin = "http://localhost:5500"

// Config holds runtime configuration values for the relay service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string
	DefaultOrigin  string
	BodyLimit      int
	MetricsEnabled bool
	AccessLogs     bool
	Mail           MailConfig
}

// MailConfig describes the outbound email provider and the fixed envelope.
type MailConfig struct {
	Provider             string
	Timeout              time.Duration
	SendGridAPIKey       string
	SendGridHost         string
	PostmarkServerToken  string
	PostmarkAccountToken string
	PostmarkBaseURL      string
	From                 string
	FromName             string
	To                   string
	Tag                  string
}

// FormConfig holds what the form controller needs to reach the third-party form relay.
type FormConfig struct {
	Destination    string
	BaseURL        string
	Timeout        time.Duration
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// IsProduction reports whether the relay runs with app.env set to production.
func (c Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "production" || env == "prod"
}

func newViper() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("RELAY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Folio Contact Relay")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("body_limit_bytes", 64*1024)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("log.access", false)
	v.SetDefault("mail.provider", MailProviderSendGrid)
	v.SetDefault("mail.timeout", "10s")
	v.SetDefault("mail.from_name", "Portfolio Contact")
	v.SetDefault("mail.tag", "portfolio-contact")
	v.SetDefault("form.base_url", "https://formsubmit.co")
	v.SetDefault("form.timeout", "15s")

	return v
}

// Load reads relay configuration from environment variables and an optional .env file.
func Load() (Config, error) {
	v := newViper()

	timeout, err := parseDuration(v, "mail.timeout")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("app.port"),
		LogLevel:       v.GetString("log.level"),
		LogFormat:      v.GetString("log.format"),
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
		DefaultOrigin:  strings.TrimSpace(v.GetString("cors.default_origin")),
		BodyLimit:      v.GetInt("body_limit_bytes"),
		MetricsEnabled: v.GetBool("metrics.enabled"),
		AccessLogs:     v.GetBool("log.access"),
		Mail: MailConfig{
			Provider:             strings.ToLower(strings.TrimSpace(v.GetString("mail.provider"))),
			Timeout:              timeout,
			SendGridAPIKey:       v.GetString("sendgrid.api_key"),
			SendGridHost:         v.GetString("sendgrid.host"),
			PostmarkServerToken:  v.GetString("postmark.server_token"),
			PostmarkAccountToken: v.GetString("postmark.account_token"),
			PostmarkBaseURL:      v.GetString("postmark.base_url"),
			From:                 strings.TrimSpace(v.GetString("mail.from")),
			FromName:             v.GetString("mail.from_name"),
			To:                   strings.TrimSpace(v.GetString("mail.to")),
			Tag:                  v.GetString("mail.tag"),
		},
	}

	if len(cfg.AllowedOrigins) == 0 {
		if cfg.IsProduction() {
			return Config{}, fmt.Errorf("cors allowed origins must be provided in production")
		}
		cfg.AllowedOrigins = []string{DevAllowedOrigin}
	}
	if cfg.DefaultOrigin == "" {
		cfg.DefaultOrigin = cfg.AllowedOrigins[0]
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = 64 * 1024
	}

	if err := cfg.Mail.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (m MailConfig) validate() error {
	switch m.Provider {
	case MailProviderSendGrid:
		if m.SendGridAPIKey == "" {
			return fmt.Errorf("sendgrid api key must be provided")
		}
	case MailProviderPostmark:
		if m.PostmarkServerToken == "" {
			return fmt.Errorf("postmark server token must be provided")
		}
	case MailProviderLog:
		return nil
	default:
		return fmt.Errorf("unsupported mail provider %q", m.Provider)
	}

	if m.From == "" || m.To == "" {
		return fmt.Errorf("mail sender and recipient must be provided")
	}
	return nil
}

// LoadForm reads the form controller configuration. An empty destination is allowed here and
// reported by the controller when a submission is attempted.
func LoadForm() (FormConfig, error) {
	v := newViper()

	timeout, err := parseDuration(v, "form.timeout")
	if err != nil {
		return FormConfig{}, err
	}

	return FormConfig{
		Destination:    strings.TrimSpace(v.GetString("form.destination")),
		BaseURL:        strings.TrimRight(strings.TrimSpace(v.GetString("form.base_url")), "/"),
		Timeout:        timeout,
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
		LogLevel:       v.GetString("log.level"),
		LogFormat:      v.GetString("log.format"),
	}, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	duration, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return duration, nil
}

func splitList(input string) []string {
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
