package contact

import (
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern is local@domain.tld where no part holds whitespace. Unicode spaces and the BOM
// count as whitespace too.
var emailPattern = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]+$`)

// Rules selects which rule set a submission is checked against.
type Rules int

const (
	// RelayRules are enforced by the relay endpoint. Failures short-circuit in field order.
	RelayRules Rules = iota
	// FormRules are enforced by the form controller before anything is sent.
	FormRules
)

type fieldRule struct {
	field   string
	tag     string
	message string
}

var relayRuleSet = []fieldRule{
	{field: FieldName, tag: "required,min=2,max=120", message: "Invalid name"},
	{field: FieldEmail, tag: "required,max=180,emailshape", message: "Invalid email"},
	{field: FieldSubject, tag: "max=180", message: "Invalid subject"},
	{field: FieldMessage, tag: "required,min=10,max=4000", message: "Invalid message"},
}

var formRuleSet = []fieldRule{
	{field: FieldName, tag: "required,min=2,max=120", message: "Name must be at least 2 characters long"},
	{field: FieldEmail, tag: "required,max=180,emailshape", message: "Please enter a valid email address"},
	{field: FieldSubject, tag: "required,min=5,max=180", message: "Subject must be at least 5 characters long"},
	{field: FieldMessage, tag: "required,min=10,max=4000", message: "Message must be at least 10 characters long"},
}

func (r Rules) set() []fieldRule {
	if r == FormRules {
		return formRuleSet
	}
	return relayRuleSet
}

// ValidationError describes the first failing field of a submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// FieldErrors maps a field name to its human readable error message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+f[field])
	}
	return strings.Join(parts, "; ")
}

// Validator checks submissions against a rule set using go-playground/validator tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator constructs a Validator with the emailshape rule registered.
func NewValidator() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = validate.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: validate}
}

// Validate returns one message per failing field. The result is empty when the submission is valid.
func (v *Validator) Validate(rules Rules, s Submission) FieldErrors {
	errs := FieldErrors{}
	for _, rule := range rules.set() {
		if v.validate.Var(s.Value(rule.field), rule.tag) != nil {
			errs[rule.field] = rule.message
		}
	}
	return errs
}

// First returns the first failing field in name, email, subject, message order, or nil.
func (v *Validator) First(rules Rules, s Submission) *ValidationError {
	for _, rule := range rules.set() {
		if v.validate.Var(s.Value(rule.field), rule.tag) != nil {
			return &ValidationError{Field: rule.field, Message: rule.message}
		}
	}
	return nil
}

// ValidateField checks a single value and returns its error message, or "" when it passes.
// Unknown fields always pass.
func (v *Validator) ValidateField(rules Rules, field, value string) string {
	for _, rule := range rules.set() {
		if rule.field != field {
			continue
		}
		if v.validate.Var(value, rule.tag) != nil {
			return rule.message
		}
		return ""
	}
	return ""
}

// IsEmailShape reports whether value looks like local@domain.tld.
func IsEmailShape(value string) bool {
	return emailPattern.MatchString(value)
}
