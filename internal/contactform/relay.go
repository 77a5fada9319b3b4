package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Outcome is the relay's JSON acknowledgement.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// UnmarshalJSON accepts success as a boolean or as the strings "true"/"false".
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var raw struct {
		Success json.RawMessage `json:"success"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	o.Message = raw.Message
	o.Success = false
	if len(raw.Success) == 0 {
		return nil
	}

	var asBool bool
	if err := json.Unmarshal(raw.Success, &asBool); err == nil {
		o.Success = asBool
		return nil
	}
	var asString string
	if err := json.Unmarshal(raw.Success, &asString); err != nil {
		return fmt.Errorf("success field: %w", err)
	}
	o.Success = strings.EqualFold(strings.TrimSpace(asString), "true")
	return nil
}

// RelayClient talks to the third-party AJAX form relay.
type RelayClient struct {
	baseURL     string
	destination string
	client      *http.Client
}

// NewRelayClient builds a client from cfg, applying defaults.
func NewRelayClient(cfg Config) *RelayClient {
	cfg = cfg.withDefaults()
	return &RelayClient{
		baseURL:     cfg.RelayBaseURL,
		destination: cfg.RelayDestination,
		client:      cfg.HTTPClient,
	}
}

// AjaxURL is the JSON-answering endpoint used for in-page submission.
func (r *RelayClient) AjaxURL() (string, error) {
	if r.destination == "" {
		return "", ErrMissingDestination
	}
	return r.baseURL + "/ajax/" + url.PathEscape(r.destination), nil
}

// ActionURL is the page-navigating endpoint used by the fallback submission.
func (r *RelayClient) ActionURL() (string, error) {
	if r.destination == "" {
		return "", ErrMissingDestination
	}
	return r.baseURL + "/" + url.PathEscape(r.destination), nil
}

// Payload renders the form-encoded body the relay expects.
func (r *RelayClient) Payload(fields Fields) url.Values {
	values := url.Values{}
	values.Set("name", fields.Name)
	values.Set("email", fields.Email)
	values.Set("_subject", subjectPrefix+fields.Subject)
	values.Set("message", fields.Message)
	values.Set("_captcha", "false")
	return values
}

// Submit posts fields to the AJAX endpoint. A missing destination fails with
// ErrMissingDestination before any request; every other failure is a *TransportError.
func (r *RelayClient) Submit(ctx context.Context, fields Fields) (Outcome, error) {
	endpoint, err := r.AjaxURL()
	if err != nil {
		return Outcome{}, err
	}

	body := r.Payload(fields).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(body))
	if err != nil {
		return Outcome{}, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Outcome{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Outcome{}, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var outcome Outcome
	if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		return Outcome{}, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if !outcome.Success {
		return outcome, &TransportError{StatusCode: resp.StatusCode, Err: ErrRelayRejected}
	}
	return outcome, nil
}
