package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/noah-isme/folio-contact/internal/contactform"
)

// terminalPage renders the form controller's feedback as lines of text.
type terminalPage struct {
	mu     sync.Mutex
	out    io.Writer
	native *contactform.NativePoster

	submit func(ctx context.Context, fields contactform.Fields)

	fieldErrors map[string]string
	banner      *contactform.Banner
	nativeSent  bool
}

func newTerminalPage(out io.Writer, native *contactform.NativePoster) *terminalPage {
	return &terminalPage{out: out, native: native, fieldErrors: map[string]string{}}
}

func (p *terminalPage) OnSubmit(handler func(ctx context.Context, fields contactform.Fields)) {
	p.submit = handler
}

// A one-shot terminal submission has no blur or input events.
func (p *terminalPage) OnBlur(func(field, value string)) {}

func (p *terminalPage) OnInput(func(field string)) {}

// Submit plays the page's submit event into the registered handler.
func (p *terminalPage) Submit(ctx context.Context, fields contactform.Fields) {
	if p.submit != nil {
		p.submit(ctx, fields)
	}
}

func (p *terminalPage) SetLoading(loading bool) {
	if loading {
		p.printf("sending...\n")
	}
}

func (p *terminalPage) SetFieldError(field, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if message == "" {
		delete(p.fieldErrors, field)
		return
	}
	p.fieldErrors[field] = message
	fmt.Fprintf(p.out, "  %s: %s\n", field, message)
}

func (p *terminalPage) ClearFieldErrors() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fieldErrors = map[string]string{}
}

func (p *terminalPage) ResetFields() {}

func (p *terminalPage) ShowBanner(banner contactform.Banner) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.banner = &banner
	fmt.Fprintf(p.out, "[%s] %s\n", banner.Kind, banner.Message)
}

func (p *terminalPage) RemoveBanner(contactform.BannerKind) {}

func (p *terminalPage) SubmitNative(ctx context.Context, action string, values url.Values) error {
	p.printf("relay unavailable, posting form to %s\n", action)
	err := p.native.Post(ctx, action, values)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.nativeSent = err == nil
	return err
}

// outcome summarises what the page showed after a submission.
func (p *terminalPage) outcome() (banner *contactform.Banner, nativeSent bool, fieldErrors int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.banner, p.nativeSent, len(p.fieldErrors)
}

func (p *terminalPage) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, format, args...)
}
