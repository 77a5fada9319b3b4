package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mrz1836/postmark"
)

// PostmarkConfig configures the Postmark sender. Only the server token is needed to send.
type PostmarkConfig struct {
	ServerToken  string
	AccountToken string
	// BaseURL overrides https://api.postmarkapp.com, mainly for tests.
	BaseURL    string
	HTTPClient *http.Client
}

// PostmarkSender delivers mail through Postmark's transactional API.
type PostmarkSender struct {
	client *postmark.Client
}

// NewPostmarkSender validates cfg and builds a sender.
func NewPostmarkSender(cfg PostmarkConfig) (*PostmarkSender, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: postmark server token is required", ErrInvalidConfig)
	}

	client := postmark.NewClient(cfg.ServerToken, cfg.AccountToken)
	if cfg.HTTPClient != nil {
		client.HTTPClient = cfg.HTTPClient
	}
	if baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); baseURL != "" {
		client.BaseURL = baseURL
	}
	return &PostmarkSender{client: client}, nil
}

// Send implements Sender.
func (p *PostmarkSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	email := postmark.Email{
		From:     msg.From.String(),
		To:       msg.To.String(),
		Subject:  msg.Subject,
		Tag:      msg.Tag,
		HTMLBody: msg.HTMLBody,
	}
	if msg.ReplyTo.Email != "" {
		email.ReplyTo = msg.ReplyTo.String()
	}

	resp, err := p.client.SendEmail(ctx, email)
	if resp.ErrorCode != 0 {
		return &UpstreamError{Provider: "postmark", Code: int(resp.ErrorCode), Body: resp.Message}
	}
	var apiErr postmark.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Provider: "postmark", Code: int(apiErr.ErrorCode), Body: apiErr.Message}
	}
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}
