// Package apply validates the job application form. Submissions are only
// acknowledged locally; nothing is sent to the provider.
package apply

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"job-finder/internal/model"
)

const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldContact      = "contact"
	FieldHiringReason = "hiring_reason"

	ContactDigits = 11
)

const (
	MsgNameRequired    = "Name is required"
	MsgEmailRequired   = "Email is required"
	MsgEmailInvalid    = "Invalid email format"
	MsgContactRequired = "Contact number is required"
	MsgContactInvalid  = "Invalid contact number (should be 11 digits)"
	MsgFieldRequired   = "This field is required"
)

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	contactPattern = regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, ContactDigits))
)

// Fields lists form fields in display order.
var Fields = []string{FieldName, FieldEmail, FieldContact, FieldHiringReason}

type Application struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Contact      string `json:"contact"`
	HiringReason string `json:"hiring_reason"`
}

// ValidationErrors maps a field to its first failing rule.
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid application: " + strings.Join(parts, "; ")
}

// Validate checks every field and returns all failures at once. Values
// are compared after trimming surrounding whitespace.
func Validate(a Application) error {
	errs := ValidationErrors{}

	if strings.TrimSpace(a.Name) == "" {
		errs[FieldName] = MsgNameRequired
	}

	email := strings.TrimSpace(a.Email)
	switch {
	case email == "":
		errs[FieldEmail] = MsgEmailRequired
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = MsgEmailInvalid
	}

	contact := strings.TrimSpace(a.Contact)
	switch {
	case contact == "":
		errs[FieldContact] = MsgContactRequired
	case !contactPattern.MatchString(contact):
		errs[FieldContact] = MsgContactInvalid
	}

	if strings.TrimSpace(a.HiringReason) == "" {
		errs[FieldHiringReason] = MsgFieldRequired
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Submit validates the form and returns the acknowledgment shown to the
// user.
func Submit(job model.Job, a Application) (string, error) {
	if err := Validate(a); err != nil {
		return "", err
	}
	return Acknowledgment(job), nil
}

func Acknowledgment(job model.Job) string {
	return fmt.Sprintf("Application for %s at %s submitted!", job.Title, job.CompanyName)
}
