package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/folio-contact/internal/config"
	"github.com/noah-isme/folio-contact/internal/handler"
	"github.com/noah-isme/folio-contact/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ContactHandler *handler.ContactHandler
	// MetricsEnabled mounts the Prometheus scrape endpoint at /metrics.
	MetricsEnabled bool
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.MetricsEnabled {
		app.Get("/metrics", observability.MetricsHandler())
	}

	if deps.ContactHandler != nil {
		deps.ContactHandler.Register(api.Group("/contact"))
		// The static site posts to the bare origin, so the relay also answers at the root.
		deps.ContactHandler.Register(app)
	}
}
