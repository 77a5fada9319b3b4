package dto

import (
	"encoding/json"
	"strconv"

	"github.com/noah-isme/folio-contact/internal/contact"
)

// ContactRequest is the relay payload, accepted as JSON or as form fields.
type ContactRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Subject  string `json:"subject" form:"subject"`
	Message  string `json:"message" form:"message"`
	Honey    string `json:"_honey" form:"_honey"`
	HoneyAlt string `json:"honey" form:"honey"`

	IPAddress     string `json:"-" form:"-"`
	CorrelationID string `json:"-" form:"-"`
}

// UnmarshalJSON accepts a honeypot of any JSON type so bots sending numbers or booleans are
// still caught instead of failing to parse.
func (r *ContactRequest) UnmarshalJSON(data []byte) error {
	type plain ContactRequest
	var raw struct {
		plain
		Honey    json.RawMessage `json:"_honey"`
		HoneyAlt json.RawMessage `json:"honey"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = ContactRequest(raw.plain)
	r.Honey = honeypotValue(raw.Honey)
	r.HoneyAlt = honeypotValue(raw.HoneyAlt)
	return nil
}

// honeypotValue flattens a raw JSON value. null, false, 0 and "" count as empty.
func honeypotValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return ""
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return string(raw)
	}
}

// Honeypot returns whichever honeypot field was filled in. Whitespace counts as filled.
func (r ContactRequest) Honeypot() string {
	if r.Honey != "" {
		return r.Honey
	}
	return r.HoneyAlt
}

// Submission converts the payload into the domain entity without normalising it.
func (r ContactRequest) Submission() contact.Submission {
	return contact.Submission{
		Name:     r.Name,
		Email:    r.Email,
		Subject:  r.Subject,
		Message:  r.Message,
		Honeypot: r.Honeypot(),
		SourceIP: r.IPAddress,
	}
}

// ContactResponse reports how the relay handled an accepted submission.
type ContactResponse struct {
	ReferenceID string `json:"reference_id"`
	Status      string `json:"status"`
}
