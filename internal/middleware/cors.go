package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig lists the origins allowed to read relay responses.
type CORSConfig struct {
	AllowedOrigins []string
	// DefaultOrigin is sent when the request origin is not allow-listed.
	DefaultOrigin string
}

// CORS always sets Access-Control-Allow-Origin. Allow-listed origins are reflected; any other
// origin receives DefaultOrigin and is left for the browser to reject. Requests are never
// refused here.
func CORS(cfg CORSConfig) fiber.Handler {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	defaultOrigin := strings.TrimSpace(cfg.DefaultOrigin)
	if defaultOrigin == "" && len(cfg.AllowedOrigins) > 0 {
		defaultOrigin = strings.TrimSpace(cfg.AllowedOrigins[0])
	}

	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		allowOrigin := defaultOrigin
		if _, ok := allowed[origin]; ok {
			allowOrigin = origin
		}

		c.Set(fiber.HeaderAccessControlAllowOrigin, allowOrigin)
		c.Set(fiber.HeaderVary, fiber.HeaderOrigin)
		c.Set(fiber.HeaderAccessControlAllowMethods, "POST,OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, fiber.HeaderContentType)
		return c.Next()
	}
}
