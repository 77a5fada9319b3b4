package contact_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/folio-contact/internal/contact"
)

func validSubmission() contact.Submission {
	return contact.Submission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Hello there",
		Message: "This is a test message.",
	}
}

func TestValidatorNameTooShort(t *testing.T) {
	v := contact.NewValidator()
	sub := validSubmission()
	sub.Name = " J "
	sub = sub.Normalize()

	for _, rules := range []contact.Rules{contact.RelayRules, contact.FormRules} {
		errs := v.Validate(rules, sub)
		require.Contains(t, errs, contact.FieldName)
		require.Len(t, errs, 1)
	}

	first := v.First(contact.RelayRules, sub)
	require.NotNil(t, first)
	assert.Equal(t, contact.FieldName, first.Field)
	assert.Equal(t, "Invalid name", first.Message)

	assert.Equal(t, "Name must be at least 2 characters long", v.Validate(contact.FormRules, sub)[contact.FieldName])
}

func TestValidatorEmailShape(t *testing.T) {
	v := contact.NewValidator()

	cases := []struct {
		email string
		valid bool
	}{
		{email: "a@b.co", valid: true},
		{email: "jane@example.com", valid: true},
		{email: "not-an-email", valid: false},
		{email: "missing@tld", valid: false},
		{email: "two words@example.com", valid: false},
		{email: "a\u00a0b@c.de", valid: false},
		{email: "jane@exa\u2003mple.com", valid: false},
		{email: "", valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			sub := validSubmission()
			sub.Email = tc.email
			first := v.First(contact.RelayRules, sub.Normalize())
			if tc.valid {
				assert.Nil(t, first)
				return
			}
			require.NotNil(t, first)
			assert.Equal(t, contact.FieldEmail, first.Field)
			assert.Equal(t, "Invalid email", first.Message)
		})
	}
}

func TestValidatorMessageBoundary(t *testing.T) {
	v := contact.NewValidator()

	sub := validSubmission()
	sub.Message = "123456789"
	first := v.First(contact.RelayRules, sub.Normalize())
	require.NotNil(t, first)
	assert.Equal(t, contact.FieldMessage, first.Field)

	sub.Message = "1234567890"
	assert.Nil(t, v.First(contact.RelayRules, sub.Normalize()))
	assert.Empty(t, v.Validate(contact.FormRules, sub.Normalize()))
}

func TestValidatorFirstFailingFieldWins(t *testing.T) {
	v := contact.NewValidator()
	sub := contact.Submission{Name: "x", Email: "bad", Message: "short"}

	first := v.First(contact.RelayRules, sub.Normalize())
	require.NotNil(t, first)
	assert.Equal(t, contact.FieldName, first.Field)

	errs := v.Validate(contact.FormRules, sub.Normalize())
	assert.Len(t, errs, 4)
	assert.Contains(t, errs.Error(), "email: Please enter a valid email address")
}

func TestValidatorSubjectRulesDiffer(t *testing.T) {
	v := contact.NewValidator()
	sub := validSubmission()
	sub.Subject = ""

	assert.Nil(t, v.First(contact.RelayRules, sub.Normalize().WithDefaultSubject()))
	assert.Equal(t, "Subject must be at least 5 characters long", v.Validate(contact.FormRules, sub.Normalize())[contact.FieldSubject])
}

func TestValidateField(t *testing.T) {
	v := contact.NewValidator()

	assert.Equal(t, "Please enter a valid email address", v.ValidateField(contact.FormRules, contact.FieldEmail, "nope"))
	assert.Empty(t, v.ValidateField(contact.FormRules, contact.FieldEmail, "a@b.co"))
	assert.Empty(t, v.ValidateField(contact.FormRules, "phone", ""))
}

func TestNormalizeTruncatesInRunes(t *testing.T) {
	sub := contact.Submission{
		Name:    "  " + strings.Repeat("é", 200) + "  ",
		Email:   strings.Repeat("a", 300) + "@example.com",
		Subject: strings.Repeat("s", 500),
		Message: strings.Repeat("m", 5000),
	}.Normalize()

	assert.Equal(t, contact.MaxNameLength, len([]rune(sub.Name)))
	assert.Equal(t, contact.MaxEmailLength, len([]rune(sub.Email)))
	assert.Equal(t, contact.MaxSubjectLength, len([]rune(sub.Subject)))
	assert.Equal(t, contact.MaxMessageLength, len([]rune(sub.Message)))
}

func TestWithDefaultSubject(t *testing.T) {
	sub := contact.Submission{Subject: "   "}.Normalize().WithDefaultSubject()
	assert.Equal(t, contact.DefaultSubject, sub.Subject)

	sub = contact.Submission{Subject: "Hi"}.Normalize().WithDefaultSubject()
	assert.Equal(t, "Hi", sub.Subject)
}

func TestIsSpam(t *testing.T) {
	assert.False(t, contact.Submission{}.IsSpam())
	assert.True(t, contact.Submission{Honeypot: "bot"}.IsSpam())
	assert.True(t, contact.Submission{Honeypot: "   "}.IsSpam())
}

func TestSanitizeInput(t *testing.T) {
	cases := map[string]string{
		"  Hello <b>world</b> ":             "Hello bworld/b",
		"I need x<y and z>w for my project": "I need xy and zw for my project",
		"<hello world how are you>":         "hello world how are you",
		"Tom & Jerry":                       "Tom & Jerry",
		"Tom &amp; Jerry":                   "Tom &amp; Jerry",
		"   ":                               "",
		"< padded >":                        "padded",
	}
	for input, want := range cases {
		assert.Equal(t, want, contact.SanitizeInput(input), input)
	}
}

func TestSanitizedMessageStillValidates(t *testing.T) {
	sub := validSubmission()
	sub.Message = contact.SanitizeInput("<hello world how are you>")
	assert.Nil(t, contact.NewValidator().First(contact.FormRules, sub.Normalize()))
}
