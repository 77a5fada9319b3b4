package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendGridEndpoint = "/v3/mail/send"

// SendGridConfig configures the SendGrid v3 sender.
type SendGridConfig struct {
	APIKey string
	// Host overrides https://api.sendgrid.com, mainly for tests.
	Host       string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// SendGridSender posts mail to the SendGrid v3 API with a bearer credential.
type SendGridSender struct {
	apiKey string
	host   string
	client *rest.Client
}

// NewSendGridSender validates cfg and builds a sender.
func NewSendGridSender(cfg SendGridConfig) (*SendGridSender, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: sendgrid api key is required", ErrInvalidConfig)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &SendGridSender{
		apiKey: cfg.APIKey,
		host:   cfg.Host,
		client: &rest.Client{HTTPClient: httpClient},
	}, nil
}

// Send implements Sender.
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	personalization := sgmail.NewPersonalization()
	personalization.AddTos(sgmail.NewEmail(msg.To.Name, msg.To.Email))
	personalization.Subject = msg.Subject

	v3 := sgmail.NewV3Mail()
	v3.SetFrom(sgmail.NewEmail(msg.From.Name, msg.From.Email))
	v3.AddPersonalizations(personalization)
	if msg.ReplyTo.Email != "" {
		v3.SetReplyTo(sgmail.NewEmail(msg.ReplyTo.Name, msg.ReplyTo.Email))
	}
	v3.AddContent(sgmail.NewContent("text/html", msg.HTMLBody))
	if msg.Tag != "" {
		v3.AddCategories(msg.Tag)
	}

	request := sendgrid.GetRequest(s.apiKey, sendGridEndpoint, s.host)
	request.Method = rest.Post
	request.Body = sgmail.GetRequestBody(v3)

	response, err := s.client.SendWithContext(ctx, request)
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &UpstreamError{Provider: "sendgrid", StatusCode: response.StatusCode, Body: response.Body}
	}
	return nil
}
