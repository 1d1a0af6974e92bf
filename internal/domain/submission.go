package domain

import (
	"io"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxNameLength is the maximum length of a submitter name in characters.
const MaxNameLength = 255

// EmailFieldKeys lists the form fields consulted, in priority order, when
// extracting the submitter's email address from form answers.
var EmailFieldKeys = []string{"email", "email1", "Email", "E-mail", "E-Mail", "e-mail", "mail"}

// NameFieldKeys lists the form fields consulted, in priority order, when
// extracting the submitter's name from form answers.
var NameFieldKeys = []string{"name", "Name", "full_name", "fullName", "student_name", "Schueler_Name"}

// Submission is a persisted registration as stored. Name and Email may be
// missing or malformed; use CompleteFrom to obtain a checked variant.
type Submission struct {
	ID          int64
	FormKey     string
	FormVersion string
	Name        *string
	Email       *string
	Status      Status
	Data        FormData
	Metadata    FormData
	PDFConfig   *PDFConfig
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	Deleted     bool
}

// CompleteSubmission is a submission whose name and email are guaranteed
// to be non-blank and the email syntactically valid.
type CompleteSubmission struct {
	Submission
	Name  string
	Email string
}

// CompleteFrom converts a raw submission into its complete variant.
// It fails with a *ValidationError naming every missing or invalid field.
func CompleteFrom(s Submission) (CompleteSubmission, error) {
	var errs []FieldError

	name := trimPtr(s.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	} else if utf8.RuneCountInString(name) > MaxNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "max 255 characters"})
	}

	email := trimPtr(s.Email)
	if email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "required"})
	} else if !IsValidEmail(email) {
		errs = append(errs, FieldError{Field: "email", Message: "invalid email address"})
	}

	if len(errs) > 0 {
		return CompleteSubmission{}, NewValidationErrors(errs)
	}

	return CompleteSubmission{Submission: s, Name: name, Email: email}, nil
}

// IsValidEmail reports whether s is a single bare RFC 5322 address
// (no display name, no angle brackets).
func IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s
}

// NewSubmission holds the fields needed to insert a submission.
type NewSubmission struct {
	FormKey     string
	FormVersion string
	Name        *string
	Email       *string
	Data        FormData
	Metadata    FormData
	PDFConfig   *PDFConfig
	Attachments []Attachment
}

// Attachment is a file relayed to object storage during intake.
type Attachment struct {
	Field       string
	Filename    string
	ObjectKey   string
	URL         string
	ContentType string
	Size        int64
}

// Upload is a file received with a submission, not yet stored.
type Upload struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// SubmissionFilter narrows submission listings.
type SubmissionFilter struct {
	FormKey    string
	Status     *Status
	ActiveOnly bool
	Limit      int
	Offset     int
}

func trimPtr(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// StringPtrOrNil returns a pointer to the trimmed value, or nil if blank.
func StringPtrOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
