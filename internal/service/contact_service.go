package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/folio-contact/internal/contact"
	"github.com/noah-isme/folio-contact/internal/dto"
	"github.com/noah-isme/folio-contact/internal/observability"
)

var (
	// ErrContactSpam indicates the honeypot field was filled.
	ErrContactSpam = errors.New("contact submission flagged as spam")
	// ErrContactDelivery indicates the email provider did not accept the message.
	ErrContactDelivery = errors.New("contact delivery failed")
)

// ContactDelivery defines a transport to deliver contact messages.
type ContactDelivery interface {
	Deliver(ctx context.Context, submission contact.Submission) error
}

// ContactService exposes the contact relay workflow.
type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest) (dto.ContactResponse, error)
}

type contactService struct {
	validator *contact.Validator
	delivery  ContactDelivery
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewContactService constructs a contact relay service.
func NewContactService(validator *contact.Validator, delivery ContactDelivery, logger zerolog.Logger) ContactService {
	if validator == nil {
		validator = contact.NewValidator()
	}
	return &contactService{
		validator: validator,
		delivery:  delivery,
		logger:    logger.With().Str("component", "contact_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/folio-contact/internal/service/contact"),
	}
}

// Submit relays one submission. Spam returns ErrContactSpam before anything else is checked,
// an invalid field returns *contact.ValidationError, and a provider failure returns an error
// wrapping ErrContactDelivery.
func (s *contactService) Submit(ctx context.Context, req dto.ContactRequest) (dto.ContactResponse, error) {
	ctx, span := s.tracer.Start(ctx, "contact.submit")
	defer span.End()

	submission := req.Submission()
	if submission.IsSpam() {
		span.SetStatus(codes.Error, "honeypot tripped")
		observability.ContactSubmissions().WithLabelValues("spam").Inc()
		s.logger.Info().Str("correlation_id", req.CorrelationID).Msg("honeypot tripped, dropping submission")
		return dto.ContactResponse{Status: "dropped"}, ErrContactSpam
	}

	submission = submission.Normalize().WithDefaultSubject()
	if invalid := s.validator.First(contact.RelayRules, submission); invalid != nil {
		span.SetStatus(codes.Error, "validation failed")
		span.SetAttributes(attribute.String("contact.invalid_field", invalid.Field))
		observability.ContactSubmissions().WithLabelValues("invalid").Inc()
		return dto.ContactResponse{}, invalid
	}

	referenceID := uuid.NewString()
	span.SetAttributes(attribute.String("contact.reference_id", referenceID))
	logger := s.logger.With().
		Str("reference_id", referenceID).
		Str("correlation_id", req.CorrelationID).
		Str("email", maskEmail(submission.Email)).
		Logger()

	if err := s.delivery.Deliver(ctx, submission); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delivery failed")
		observability.ContactSubmissions().WithLabelValues("error").Inc()
		logger.Error().Err(err).Msg("contact delivery failed")
		return dto.ContactResponse{ReferenceID: referenceID, Status: "failed"}, errors.Join(ErrContactDelivery, err)
	}

	observability.ContactSubmissions().WithLabelValues("sent").Inc()
	logger.Info().Msg("contact submission relayed")
	span.SetStatus(codes.Ok, "delivered")

	return dto.ContactResponse{ReferenceID: referenceID, Status: "sent"}, nil
}
