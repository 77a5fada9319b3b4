package handler

import (
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/folio-contact/internal/middleware"
)

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// clientIP prefers the address reported by the edge proxy over the socket peer.
func clientIP(c *fiber.Ctx) string {
	if forwarded := strings.TrimSpace(c.Get("CF-Connecting-IP")); forwarded != "" {
		if ip := net.ParseIP(forwarded); ip != nil {
			return ip.String()
		}
	}
	return c.IP()
}
