package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// HeaderCorrelationID is echoed on every relay response.
	HeaderCorrelationID = "X-Correlation-ID"

	correlationLocal    = "correlation_id"
	maxCorrelationIDLen = 128
)

type correlationIDKey struct{}

// incomingIDHeaders are checked in order; Cf-Ray is set by the edge proxy in front of the relay.
var incomingIDHeaders = []string{HeaderCorrelationID, fiber.HeaderXRequestID, "Cf-Ray"}

// CorrelationID tags each request with an identifier taken from the caller or the edge proxy,
// or a fresh UUID. The value is exposed through Locals, the user context and the response header.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := incomingCorrelationID(c)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(correlationLocal, id)
		c.Set(HeaderCorrelationID, id)
		c.SetUserContext(context.WithValue(c.UserContext(), correlationIDKey{}, id))

		return c.Next()
	}
}

func incomingCorrelationID(c *fiber.Ctx) string {
	for _, header := range incomingIDHeaders {
		value := strings.TrimSpace(c.Get(header))
		if value == "" || len(value) > maxCorrelationIDLen || strings.ContainsAny(value, "\r\n\t ") {
			continue
		}
		return value
	}
	return ""
}

// CorrelationIDFromContext returns the identifier stored by CorrelationID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// GetCorrelationID returns the correlation identifier bound to the active request.
func GetCorrelationID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals(correlationLocal).(string); ok {
		return id
	}
	return CorrelationIDFromContext(c.UserContext())
}
