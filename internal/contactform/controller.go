package contactform

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/folio-contact/internal/contact"
)

// Result reports how a submission attempt ended.
type Result int

const (
	// ResultInvalid means local validation failed and nothing was sent.
	ResultInvalid Result = iota
	// ResultSent means the relay acknowledged the submission.
	ResultSent
	// ResultFallback means the relay call failed and the native submission was handed off.
	ResultFallback
	// ResultFailed means no path delivered the submission.
	ResultFailed
)

func (r Result) String() string {
	switch r {
	case ResultInvalid:
		return "invalid"
	case ResultSent:
		return "sent"
	case ResultFallback:
		return "fallback"
	default:
		return "failed"
	}
}

// Controller drives a contact form page: local validation, relay submission, fallback and
// transient feedback banners.
type Controller struct {
	cfg       Config
	page      Page
	relay     *RelayClient
	validator *contact.Validator
	logger    zerolog.Logger

	mu     sync.Mutex
	timers map[BannerKind]*time.Timer
	closed bool
}

// New binds a controller to page and registers its submit, blur and input handlers.
func New(cfg Config, page Page, logger zerolog.Logger) *Controller {
	cfg = cfg.withDefaults()
	c := &Controller{
		cfg:       cfg,
		page:      page,
		relay:     NewRelayClient(cfg),
		validator: contact.NewValidator(),
		logger:    logger.With().Str("component", "contactform").Logger(),
		timers:    make(map[BannerKind]*time.Timer),
	}

	page.OnSubmit(func(ctx context.Context, fields Fields) {
		_, _ = c.HandleSubmit(ctx, fields)
	})
	page.OnBlur(c.HandleBlur)
	page.OnInput(c.HandleInput)
	return c
}

// Validate checks fields against the form rules and returns one message per failing field.
func (c *Controller) Validate(fields Fields) (bool, contact.FieldErrors) {
	errs := c.validator.Validate(contact.FormRules, fields.submission())
	return len(errs) == 0, errs
}

// Submit sends fields to the AJAX relay.
func (c *Controller) Submit(ctx context.Context, fields Fields) (Outcome, error) {
	return c.relay.Submit(ctx, fields)
}

// HandleSubmit runs the whole submission flow against the page. ResultInvalid comes with the
// contact.FieldErrors shown inline; ResultFailed with the delivery error.
func (c *Controller) HandleSubmit(ctx context.Context, raw Fields) (Result, error) {
	c.page.ClearFieldErrors()

	fields := raw.Sanitized()
	if ok, errs := c.Validate(fields); !ok {
		for _, field := range []string{contact.FieldName, contact.FieldEmail, contact.FieldSubject, contact.FieldMessage} {
			if msg, found := errs[field]; found {
				c.page.SetFieldError(field, msg)
			}
		}
		return ResultInvalid, errs
	}

	c.page.SetLoading(true)
	defer c.page.SetLoading(false)

	_, err := c.Submit(ctx, fields)
	if err == nil {
		c.page.ResetFields()
		c.showBanner(BannerSuccess, c.cfg.SuccessMessage)
		c.logger.Info().Msg("contact form sent")
		return ResultSent, nil
	}

	if errors.Is(err, ErrMissingDestination) {
		c.logger.Error().Err(err).Msg("contact form not configured")
		c.showBanner(BannerError, c.cfg.ErrorMessage)
		return ResultFailed, err
	}

	c.logger.Warn().Err(err).Msg("relay submission failed, falling back to native submit")
	if fallbackErr := c.submitNative(ctx, fields); fallbackErr != nil {
		c.logger.Error().Err(fallbackErr).Msg("native submission failed")
		c.showBanner(BannerError, c.cfg.ErrorMessage)
		return ResultFailed, errors.Join(err, fallbackErr)
	}
	return ResultFallback, nil
}

func (c *Controller) submitNative(ctx context.Context, fields Fields) error {
	action, err := c.relay.ActionURL()
	if err != nil {
		return err
	}
	return c.page.SubmitNative(ctx, action, c.relay.Payload(fields))
}

// HandleBlur validates a single field and sets or clears its inline error.
func (c *Controller) HandleBlur(field, value string) {
	msg := c.validator.ValidateField(contact.FormRules, field, contact.SanitizeInput(value))
	if msg == "" {
		c.page.SetFieldError(field, "")
		return
	}
	c.page.SetFieldError(field, msg)
}

// HandleInput clears the inline error of the field being edited.
func (c *Controller) HandleInput(field string) {
	c.page.SetFieldError(field, "")
}

// OriginAllowed reports whether origin is in the configured allow-list.
func (c *Controller) OriginAllowed(origin string) bool {
	for _, allowed := range c.cfg.AllowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}

// Close stops pending banner timers. Banners already shown stay on the page.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for kind, timer := range c.timers {
		timer.Stop()
		delete(c.timers, kind)
	}
}

func (c *Controller) showBanner(kind BannerKind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if previous, ok := c.timers[kind]; ok {
		previous.Stop()
	}
	c.page.ShowBanner(Banner{Kind: kind, Message: message})
	if c.closed {
		delete(c.timers, kind)
		return
	}

	var timer *time.Timer
	timer = time.AfterFunc(c.cfg.BannerTTL, func() {
		c.mu.Lock()
		current, ok := c.timers[kind]
		if !ok || current != timer {
			c.mu.Unlock()
			return
		}
		delete(c.timers, kind)
		c.mu.Unlock()
		c.page.RemoveBanner(kind)
	})
	c.timers[kind] = timer
}
