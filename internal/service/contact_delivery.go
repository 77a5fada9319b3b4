package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/noah-isme/folio-contact/internal/contact"
	"github.com/noah-isme/folio-contact/internal/middleware"
	"github.com/noah-isme/folio-contact/pkg/mailer"
)

// LogContactDelivery is a basic provider that logs submissions instead of emailing them.
type LogContactDelivery struct {
	logger zerolog.Logger
}

// NewLogContactDelivery constructs a logging provider.
func NewLogContactDelivery(logger zerolog.Logger) *LogContactDelivery {
	return &LogContactDelivery{logger: logger.With().Str("component", "contact_delivery").Logger()}
}

// Deliver logs the submission and returns nil to indicate success.
func (l *LogContactDelivery) Deliver(ctx context.Context, submission contact.Submission) error {
	l.logger.Info().
		Str("correlation_id", middleware.CorrelationIDFromContext(ctx)).
		Str("email", maskEmail(submission.Email)).
		Str("subject", submission.Subject).
		Int("message_length", len(submission.Message)).
		Msg("contact submission delivered to log")
	return nil
}

// EmailEnvelope holds the fixed addressing of relayed messages.
type EmailEnvelope struct {
	From          mailer.Address
	To            mailer.Address
	SubjectPrefix string
	Tag           string
}

// EmailContactDelivery renders a submission as HTML and hands it to a mailer.Sender.
type EmailContactDelivery struct {
	sender   mailer.Sender
	envelope EmailEnvelope
}

// NewEmailContactDelivery constructs an email-backed delivery.
func NewEmailContactDelivery(sender mailer.Sender, envelope EmailEnvelope) *EmailContactDelivery {
	if envelope.SubjectPrefix == "" {
		envelope.SubjectPrefix = DefaultSubjectPrefix
	}
	return &EmailContactDelivery{sender: sender, envelope: envelope}
}

// Deliver sends one email. The submitter becomes the reply-to address.
func (d *EmailContactDelivery) Deliver(ctx context.Context, submission contact.Submission) error {
	body, err := RenderContactEmail(submission)
	if err != nil {
		return fmt.Errorf("render contact email: %w", err)
	}

	return d.sender.Send(ctx, mailer.Message{
		From:     d.envelope.From,
		To:       d.envelope.To,
		ReplyTo:  mailer.Address{Email: submission.Email, Name: submission.Name},
		Subject:  d.envelope.SubjectPrefix + submission.Subject,
		HTMLBody: body,
		Tag:      d.envelope.Tag,
	})
}
