package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

var (
	// ErrInvalidConfig indicates a sender could not be constructed from its configuration.
	ErrInvalidConfig = errors.New("mailer: invalid config")
	// ErrInvalidMessage indicates a message is missing required envelope data.
	ErrInvalidMessage = errors.New("mailer: invalid message")
	// ErrSendFailed indicates the provider did not accept the message.
	ErrSendFailed = errors.New("mailer: send failed")
)

// Sender delivers a single transactional email.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Address is an email address with an optional display name.
type Address struct {
	Email string
	Name  string
}

// String renders the address in RFC 5322 form.
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return (&mail.Address{Name: a.Name, Address: a.Email}).String()
}

// Message is a provider-agnostic HTML email.
type Message struct {
	From     Address
	To       Address
	ReplyTo  Address
	Subject  string
	HTMLBody string
	Tag      string
}

// Validate checks the envelope fields every provider needs.
func (m Message) Validate() error {
	switch {
	case strings.TrimSpace(m.From.Email) == "":
		return fmt.Errorf("%w: sender address is required", ErrInvalidMessage)
	case strings.TrimSpace(m.To.Email) == "":
		return fmt.Errorf("%w: recipient address is required", ErrInvalidMessage)
	case strings.TrimSpace(m.Subject) == "":
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	case strings.TrimSpace(m.HTMLBody) == "":
		return fmt.Errorf("%w: html body is required", ErrInvalidMessage)
	}
	return nil
}

// UpstreamError carries the provider's rejection. Body is meant for logs only.
// StatusCode is the HTTP status when the provider exposes it; Code is the provider's own error code.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Code       int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error code %d: %s", e.Provider, e.Code, e.Body)
	}
	return fmt.Sprintf("%s error %d: %s", e.Provider, e.StatusCode, e.Body)
}

// Unwrap lets callers match any upstream rejection with errors.Is(err, ErrSendFailed).
func (e *UpstreamError) Unwrap() error {
	return ErrSendFailed
}
