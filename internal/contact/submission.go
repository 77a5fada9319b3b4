package contact

import (
	"strings"
	"unicode/utf8"
)

// Field names shared by the relay payload, the form controller and error maps.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// Upper bounds applied before validation, counted in runes.
const (
	MaxNameLength    = 120
	MaxEmailLength   = 180
	MaxSubjectLength = 180
	MaxMessageLength = 4000
)

// DefaultSubject replaces an empty subject on the relay.
const DefaultSubject = "No Subject"

// Submission is a single contact form entry. It lives for one request and is never stored.
type Submission struct {
	Name     string
	Email    string
	Subject  string
	Message  string
	Honeypot string
	SourceIP string
}

// IsSpam reports whether the hidden honeypot field was filled in. Humans never see the field,
// so any content, whitespace included, marks a bot.
func (s Submission) IsSpam() bool {
	return s.Honeypot != ""
}

// Normalize trims every text field and truncates it to its bound.
func (s Submission) Normalize() Submission {
	s.Name = Bound(s.Name, MaxNameLength)
	s.Email = Bound(s.Email, MaxEmailLength)
	s.Subject = Bound(s.Subject, MaxSubjectLength)
	s.Message = Bound(s.Message, MaxMessageLength)
	s.SourceIP = strings.TrimSpace(s.SourceIP)
	return s
}

// WithDefaultSubject fills an empty subject with DefaultSubject.
func (s Submission) WithDefaultSubject() Submission {
	if s.Subject == "" {
		s.Subject = DefaultSubject
	}
	return s
}

// Value returns the submission text for one of the Field* names.
func (s Submission) Value(field string) string {
	switch field {
	case FieldName:
		return s.Name
	case FieldEmail:
		return s.Email
	case FieldSubject:
		return s.Subject
	case FieldMessage:
		return s.Message
	default:
		return ""
	}
}

// Bound trims surrounding whitespace and keeps at most max runes.
func Bound(value string, max int) string {
	value = strings.TrimSpace(value)
	if max <= 0 || utf8.RuneCountInString(value) <= max {
		return value
	}
	runes := []rune(value)
	return string(runes[:max])
}
