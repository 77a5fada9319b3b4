package contactform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// NativePoster performs the fallback submission outside a browser: a plain form POST to the
// action URL, following redirects like a navigating page would.
type NativePoster struct {
	client *http.Client
}

// NewNativePoster returns a poster using client, or http.DefaultClient when nil.
func NewNativePoster(client *http.Client) *NativePoster {
	if client == nil {
		client = http.DefaultClient
	}
	return &NativePoster{client: client}
}

// Post sends values to action and treats any final non-2xx status as a failure.
func (n *NativePoster) Post(ctx context.Context, action string, values url.Values) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, action, strings.NewReader(values.Encode()))
	if err != nil {
		return &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")

	resp, err := n.client.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return nil
}
