package contactform

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultRelayBaseURL   = "https://formsubmit.co"
	DefaultBannerTTL      = 5 * time.Second
	DefaultSuccessMessage = "Thank you! Your message has been sent successfully."
	DefaultErrorMessage   = "Sorry, there was an error sending your message. Please try again."
	subjectPrefix         = "Portfolio Contact: "
)

// ErrMissingDestination is returned before any network call when no relay destination is set.
var ErrMissingDestination = errors.New("contactform: relay destination is not configured")

// ErrRelayRejected means the relay answered but reported success:false.
var ErrRelayRejected = errors.New("contactform: relay reported failure")

// TransportError wraps every way the AJAX relay call can fail.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("contactform: relay responded %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("contactform: relay request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Config is injected at construction. RelayDestination is the per-deployment identifier
// appended to the relay URL.
type Config struct {
	RelayDestination string
	AllowedOrigins   []string

	RelayBaseURL   string
	BannerTTL      time.Duration
	SuccessMessage string
	ErrorMessage   string
	HTTPClient     *http.Client
}

func (c Config) withDefaults() Config {
	c.RelayDestination = strings.TrimSpace(c.RelayDestination)
	c.RelayBaseURL = strings.TrimRight(strings.TrimSpace(c.RelayBaseURL), "/")
	if c.RelayBaseURL == "" {
		c.RelayBaseURL = DefaultRelayBaseURL
	}
	if c.BannerTTL <= 0 {
		c.BannerTTL = DefaultBannerTTL
	}
	if c.SuccessMessage == "" {
		c.SuccessMessage = DefaultSuccessMessage
	}
	if c.ErrorMessage == "" {
		c.ErrorMessage = DefaultErrorMessage
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	return c
}
