package contactform

import (
	"context"
	"net/url"

	"github.com/noah-isme/folio-contact/internal/contact"
)

// Fields are the raw values typed into the contact form.
type Fields struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Sanitized applies SanitizeInput to every field.
func (f Fields) Sanitized() Fields {
	return Fields{
		Name:    contact.SanitizeInput(f.Name),
		Email:   contact.SanitizeInput(f.Email),
		Subject: contact.SanitizeInput(f.Subject),
		Message: contact.SanitizeInput(f.Message),
	}
}

func (f Fields) submission() contact.Submission {
	return contact.Submission{
		Name:    f.Name,
		Email:   f.Email,
		Subject: f.Subject,
		Message: f.Message,
	}.Normalize()
}

// BannerKind identifies one of the two transient form banners.
type BannerKind int

const (
	BannerSuccess BannerKind = iota
	BannerError
)

func (k BannerKind) String() string {
	if k == BannerError {
		return "error"
	}
	return "success"
}

// Banner is a transient message shown above the form.
type Banner struct {
	Kind    BannerKind
	Message string
}

// Page is everything the controller needs from the hosting view. Banner removal may be
// called from a timer goroutine, so implementations must be safe for concurrent use.
type Page interface {
	OnSubmit(handler func(ctx context.Context, fields Fields))
	OnBlur(handler func(field, value string))
	OnInput(handler func(field string))

	SetLoading(loading bool)
	SetFieldError(field, message string)
	ClearFieldErrors()
	ResetFields()
	ShowBanner(banner Banner)
	RemoveBanner(kind BannerKind)

	// SubmitNative performs the page-navigating form POST used as the fallback path.
	SubmitNative(ctx context.Context, action string, values url.Values) error
}
