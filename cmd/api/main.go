package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/folio-contact/internal/config"
	"github.com/noah-isme/folio-contact/internal/contact"
	"github.com/noah-isme/folio-contact/internal/handler"
	"github.com/noah-isme/folio-contact/internal/logger"
	"github.com/noah-isme/folio-contact/internal/middleware"
	"github.com/noah-isme/folio-contact/internal/router"
	"github.com/noah-isme/folio-contact/internal/service"
	"github.com/noah-isme/folio-contact/pkg/mailer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat).With().Str("app", cfg.AppName).Logger()

	delivery, err := newDelivery(cfg.Mail, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to configure mail provider")
	}

	contactService := service.NewContactService(contact.NewValidator(), delivery, appLogger)
	contactHandler := handler.NewContactHandler(contactService, appLogger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    cfg.BodyLimit,
	})

	middleware.Register(app, middleware.Config{
		Logger:     &appLogger,
		AccessLogs: cfg.AccessLogs,
		CORS: middleware.CORSConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			DefaultOrigin:  cfg.DefaultOrigin,
		},
	})
	router.Register(app, cfg, router.Dependencies{
		ContactHandler: contactHandler,
		MetricsEnabled: cfg.MetricsEnabled,
	})

	go func() {
		appLogger.Info().Str("addr", cfg.HTTPAddress()).Str("provider", cfg.Mail.Provider).Msg("relay listening")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func newDelivery(cfg config.MailConfig, appLogger zerolog.Logger) (service.ContactDelivery, error) {
	envelope := service.EmailEnvelope{
		From: mailer.Address{Email: cfg.From, Name: cfg.FromName},
		To:   mailer.Address{Email: cfg.To},
		Tag:  cfg.Tag,
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Provider {
	case config.MailProviderSendGrid:
		sender, err := mailer.NewSendGridSender(mailer.SendGridConfig{
			APIKey:     cfg.SendGridAPIKey,
			Host:       cfg.SendGridHost,
			Timeout:    cfg.Timeout,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, err
		}
		return service.NewEmailContactDelivery(sender, envelope), nil
	case config.MailProviderPostmark:
		sender, err := mailer.NewPostmarkSender(mailer.PostmarkConfig{
			ServerToken:  cfg.PostmarkServerToken,
			AccountToken: cfg.PostmarkAccountToken,
			BaseURL:      cfg.PostmarkBaseURL,
			HTTPClient:   httpClient,
		})
		if err != nil {
			return nil, err
		}
		return service.NewEmailContactDelivery(sender, envelope), nil
	case config.MailProviderLog:
		return service.NewLogContactDelivery(appLogger), nil
	default:
		return nil, fmt.Errorf("unsupported mail provider %q", cfg.Provider)
	}
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
