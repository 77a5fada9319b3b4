package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/folio-contact/internal/contactform"
)

func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out, io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func formArgs(command string) []string {
	return []string{
		command,
		"--name", "Jane Doe",
		"--email", "jane@example.com",
		"--subject", "Hello there",
		"--message", "I would like to talk about a project.",
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := executeCmd(t, formArgs("validate")...)
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	out, err = executeCmd(t, "validate", "--name", "J", "--email", "nope", "--subject", "Hello there", "--message", "1234567890")
	require.ErrorContains(t, err, "2 invalid field(s)")
	assert.Contains(t, out, "name: Name must be at least 2 characters long")
	assert.Contains(t, out, "email: Please enter a valid email address")
}

func TestSendCommandUsesRelay(t *testing.T) {
	var form url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		form = r.PostForm
		assert.Equal(t, "/ajax/abc123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":"true"}`))
	}))
	defer server.Close()

	args := append(formArgs("send"), "--destination", "abc123", "--base-url", server.URL)
	out, err := executeCmd(t, args...)
	require.NoError(t, err)

	assert.Contains(t, out, "[success] Thank you! Your message has been sent successfully.")
	assert.Equal(t, "Portfolio Contact: Hello there", form.Get("_subject"))
}

func TestSendCommandFallsBackToNativePost(t *testing.T) {
	var nativePath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ajax/abc123" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		nativePath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	args := append(formArgs("send"), "--destination", "abc123", "--base-url", server.URL)
	out, err := executeCmd(t, args...)
	require.NoError(t, err)

	assert.Equal(t, "/abc123", nativePath)
	assert.Contains(t, out, "form posted directly to the relay")
	assert.NotContains(t, out, "[success]")
}

func TestSendCommandRequiresDestination(t *testing.T) {
	t.Setenv("RELAY_FORM_DESTINATION", "")

	out, err := executeCmd(t, formArgs("send")...)
	require.Error(t, err)
	assert.Contains(t, out, "[error]")
}

func TestSendCommandReportsInvalidFieldsWithoutPosting(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	out, err := executeCmd(t, "send", "--name", "J", "--email", "jane@example.com", "--subject", "Hello there",
		"--message", "I would like to talk about a project.", "--destination", "abc123", "--base-url", server.URL)
	require.ErrorContains(t, err, "1 invalid field(s)")
	assert.Contains(t, out, "name: Name must be at least 2 characters long")
	assert.Zero(t, calls)
}

func TestTerminalPageSubmitRunsRegisteredHandler(t *testing.T) {
	var out bytes.Buffer
	page := newTerminalPage(&out, nil)
	page.Submit(context.Background(), contactform.Fields{})

	var got contactform.Fields
	page.OnSubmit(func(_ context.Context, fields contactform.Fields) { got = fields })
	page.Submit(context.Background(), contactform.Fields{Name: "Jane Doe"})
	assert.Equal(t, "Jane Doe", got.Name)
}
