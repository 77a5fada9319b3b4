package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/folio-contact/internal/config"
	"github.com/noah-isme/folio-contact/internal/contact"
	"github.com/noah-isme/folio-contact/internal/contactform"
	"github.com/noah-isme/folio-contact/internal/logger"
)

type formFlags struct {
	name        string
	email       string
	subject     string
	message     string
	destination string
	baseURL     string
	timeout     time.Duration
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out, logOut io.Writer) *cobra.Command {
	flags := &formFlags{}

	rootCmd := &cobra.Command{
		Use:           "contactctl",
		Short:         "Submit and check portfolio contact form entries",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Validate and submit a contact form entry through the form relay",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd.Context(), out, logOut, flags)
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a contact form entry without sending it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(out, flags)
		},
	}

	for _, cmd := range []*cobra.Command{sendCmd, validateCmd} {
		cmd.Flags().StringVar(&flags.name, "name", "", "sender name")
		cmd.Flags().StringVar(&flags.email, "email", "", "sender email address")
		cmd.Flags().StringVar(&flags.subject, "subject", "", "message subject")
		cmd.Flags().StringVar(&flags.message, "message", "", "message body")
	}
	sendCmd.Flags().StringVar(&flags.destination, "destination", "", "form relay destination (overrides RELAY_FORM_DESTINATION)")
	sendCmd.Flags().StringVar(&flags.baseURL, "base-url", "", "form relay base URL (overrides RELAY_FORM_BASE_URL)")
	sendCmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "relay request timeout (overrides RELAY_FORM_TIMEOUT)")

	rootCmd.AddCommand(sendCmd, validateCmd)
	return rootCmd
}

func (f *formFlags) fields() contactform.Fields {
	return contactform.Fields{Name: f.name, Email: f.email, Subject: f.subject, Message: f.message}
}

func runValidate(out io.Writer, flags *formFlags) error {
	fields := flags.fields().Sanitized()
	errs := contact.NewValidator().Validate(contact.FormRules, contact.Submission{
		Name:    fields.Name,
		Email:   fields.Email,
		Subject: fields.Subject,
		Message: fields.Message,
	}.Normalize())
	if len(errs) == 0 {
		fmt.Fprintln(out, "ok")
		return nil
	}

	for _, field := range []string{contact.FieldName, contact.FieldEmail, contact.FieldSubject, contact.FieldMessage} {
		if msg, ok := errs[field]; ok {
			fmt.Fprintf(out, "  %s: %s\n", field, msg)
		}
	}
	return fmt.Errorf("%d invalid field(s)", len(errs))
}

func runSend(ctx context.Context, out, logOut io.Writer, flags *formFlags) error {
	cfg, err := config.LoadForm()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flags.destination != "" {
		cfg.Destination = flags.destination
	}
	if flags.baseURL != "" {
		cfg.BaseURL = strings.TrimRight(flags.baseURL, "/")
	}
	if flags.timeout > 0 {
		cfg.Timeout = flags.timeout
	}
	if ctx == nil {
		ctx = context.Background()
	}

	log := logger.NewWithWriter(logOut, cfg.LogLevel, "text")
	httpClient := &http.Client{Timeout: cfg.Timeout}

	page := newTerminalPage(out, contactform.NewNativePoster(httpClient))
	ctrl := contactform.New(contactform.Config{
		RelayDestination: cfg.Destination,
		AllowedOrigins:   cfg.AllowedOrigins,
		RelayBaseURL:     cfg.BaseURL,
		HTTPClient:       httpClient,
	}, page, log)
	defer ctrl.Close()

	page.Submit(ctx, flags.fields())

	banner, nativeSent, fieldErrors := page.outcome()
	switch {
	case fieldErrors > 0:
		return fmt.Errorf("%d invalid field(s)", fieldErrors)
	case nativeSent:
		fmt.Fprintln(out, "form posted directly to the relay")
		return nil
	case banner != nil && banner.Kind == contactform.BannerSuccess:
		return nil
	case cfg.Destination == "":
		return contactform.ErrMissingDestination
	default:
		return errors.New("submission failed")
	}
}
