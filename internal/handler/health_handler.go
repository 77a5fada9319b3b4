package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/folio-contact/internal/config"
	"github.com/noah-isme/folio-contact/internal/utils"
)

// HealthResponse is the data of GET /api/v1/health.
type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Service      string    `json:"service"`
	Environment  string    `json:"environment"`
	MailProvider string    `json:"mail_provider,omitempty"`
}

// HealthCheck reports liveness and which mail provider the relay forwards to.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendSuccess(c, HealthResponse{
			Status:       "ok",
			Timestamp:    time.Now().UTC(),
			Service:      cfg.AppName,
			Environment:  cfg.AppEnv,
			MailProvider: cfg.Mail.Provider,
		})
	}
}
