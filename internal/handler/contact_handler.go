package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/folio-contact/internal/contact"
	"github.com/noah-isme/folio-contact/internal/dto"
	"github.com/noah-isme/folio-contact/internal/middleware"
	"github.com/noah-isme/folio-contact/internal/service"
	"github.com/noah-isme/folio-contact/internal/utils"
)

const (
	msgUnsupportedContentType = "Unsupported Content-Type"
	msgInvalidPayload         = "Invalid payload"
	msgSendFailed             = "Email send failed"
)

// ContactHandler is the relay endpoint: it accepts one contact submission per request.
type ContactHandler struct {
	service service.ContactService
	logger  zerolog.Logger
}

// NewContactHandler constructs a contact handler.
func NewContactHandler(service service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger.With().Str("component", "contact_handler").Logger(),
	}
}

// Register wires the relay routes. POST submits, OPTIONS answers preflight, anything else is 405.
func (h *ContactHandler) Register(router fiber.Router) {
	router.Options("/", h.preflight)
	router.Post("/", h.submit)
	router.All("/", h.methodNotAllowed)
}

func (h *ContactHandler) preflight(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ContactHandler) methodNotAllowed(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, "POST, OPTIONS")
	return c.Status(fiber.StatusMethodNotAllowed).SendString("Method Not Allowed")
}

func (h *ContactHandler) submit(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	if !acceptedContentType(c.Get(fiber.HeaderContentType)) {
		return utils.SendError(c, fiber.StatusUnsupportedMediaType, msgUnsupportedContentType)
	}

	var payload dto.ContactRequest
	if err := c.BodyParser(&payload); err != nil {
		logger.Debug().Err(err).Msg("failed to parse contact payload")
		return utils.SendError(c, fiber.StatusBadRequest, msgInvalidPayload)
	}
	payload.IPAddress = clientIP(c)
	payload.CorrelationID = middleware.GetCorrelationID(c)

	if _, err := h.service.Submit(c.UserContext(), payload); err != nil {
		var invalid *contact.ValidationError
		switch {
		case errors.Is(err, service.ErrContactSpam):
			// Bots are told the message went through.
			return utils.SendSuccess(c, nil)
		case errors.As(err, &invalid):
			return utils.SendError(c, fiber.StatusBadRequest, invalid.Message)
		default:
			logger.Error().Err(err).Msg("failed to relay contact submission")
			return utils.SendError(c, fiber.StatusInternalServerError, msgSendFailed)
		}
	}

	return utils.SendSuccess(c, nil)
}

func acceptedContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, fiber.MIMEApplicationJSON) || strings.Contains(contentType, "form")
}
