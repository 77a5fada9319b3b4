package service

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/noah-isme/folio-contact/internal/contact"
)

// DefaultSubjectPrefix is prepended to every relayed subject line.
const DefaultSubjectPrefix = "Portfolio Contact: "

var contactEmailTemplate = template.Must(template.New("contact_email").Parse(`<h2>New Portfolio Message</h2>
<p><b>Name:</b> {{.Name}}</p>
<p><b>Email:</b> {{.Email}}</p>
<p><b>Subject:</b> {{.Subject}}</p>
<p><b>Message:</b><br>{{.Message}}</p>
<hr><p><small>IP: {{.SourceIP}}</small></p>
`))

// emailPolicy admits only the markup the template itself produces.
var emailPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h2", "p", "b", "br", "hr", "small")
	return p
}()

type contactEmailView struct {
	Name     string
	Email    string
	Subject  string
	Message  template.HTML
	SourceIP string
}

// RenderContactEmail builds the HTML body for a submission. Every user supplied value is
// escaped; message line breaks become <br>. The rendered body is then filtered through an
// element allow-list, so nothing outside the template's own markup reaches the mail provider.
func RenderContactEmail(submission contact.Submission) (string, error) {
	lines := strings.Split(strings.ReplaceAll(submission.Message, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = template.HTMLEscapeString(line)
	}

	view := contactEmailView{
		Name:     submission.Name,
		Email:    submission.Email,
		Subject:  submission.Subject,
		Message:  template.HTML(strings.Join(lines, "<br>")),
		SourceIP: submission.SourceIP,
	}

	var buf bytes.Buffer
	if err := contactEmailTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return emailPolicy.Sanitize(buf.String()), nil
}
